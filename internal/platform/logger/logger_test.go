package logger

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDebug(t *testing.T) {
	var buf bytes.Buffer
	oldLogger, oldDebug := debugLogger, debug
	defer func() {
		debugLogger, debug = oldLogger, oldDebug
	}()
	debugLogger = log.New(&buf, "DEBUG: ", 0)

	t.Run("Suppressed when the debug gate is off", func(t *testing.T) {
		buf.Reset()
		debug = false

		Debug("query took %dms", 12)

		assert.Empty(t, buf.String())
	})

	t.Run("Emitted when the debug gate is on", func(t *testing.T) {
		buf.Reset()
		debug = true

		Debug("query took %dms", 12)

		assert.Contains(t, buf.String(), "DEBUG: query took 12ms")
	})
}
