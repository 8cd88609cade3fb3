package logger

import (
	"log"
	"os"
)

var (
	infoLogger  *log.Logger
	warnLogger  *log.Logger
	errorLogger *log.Logger
	debugLogger *log.Logger
	debug       bool
)

func init() {
	flags := log.Ldate | log.Ltime | log.Lshortfile
	infoLogger = log.New(os.Stdout, "INFO: ", flags)
	warnLogger = log.New(os.Stdout, "WARN: ", flags)
	errorLogger = log.New(os.Stderr, "ERROR: ", flags)
	debugLogger = log.New(os.Stdout, "DEBUG: ", flags)
	debug = os.Getenv("LOG_DEBUG") != ""
}

func Info(msg string, v ...interface{}) {
	infoLogger.Printf(msg, v...)
}

func Warn(msg string, v ...interface{}) {
	warnLogger.Printf(msg, v...)
}

// Error appends err to the formatted message when it is non-nil.
func Error(msg string, err error, v ...interface{}) {
	if err != nil {
		errorLogger.Printf(msg+": %v", append(v, err)...)
	} else {
		errorLogger.Printf(msg, v...)
	}
}

// Debug logs only when LOG_DEBUG is set in the environment.
func Debug(msg string, v ...interface{}) {
	if debug {
		debugLogger.Printf(msg, v...)
	}
}

func Fatal(msg string, err error) {
	if err != nil {
		errorLogger.Fatalf(msg+": %v", err)
	}
	errorLogger.Fatal(msg)
}
