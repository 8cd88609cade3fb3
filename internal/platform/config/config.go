package config

import (
	"os"
	"strconv"
	"time"
)

type ServerConfig struct {
	Port string
}

// DynamoConfig holds the connection settings for the document store.
// Endpoint is only set for local development (dynamodb-local); in AWS the
// SDK default resolver is used.
type DynamoConfig struct {
	Region   string
	Endpoint string
}

func LoadDynamoConfig() DynamoConfig {
	return DynamoConfig{
		Region:   GetEnv("AWS_REGION", "us-east-1"),
		Endpoint: GetEnv("DYNAMODB_ENDPOINT", ""),
	}
}

type RedisConfig struct {
	Addr string
}

func LoadRedisConfig() RedisConfig {
	return RedisConfig{
		Addr: GetEnv("REDIS_ADDR", "127.0.0.1:6379"),
	}
}

// AuthConfig carries the facade's shared-secret tokens and the JWT signing
// key. ReadToken grants read-only access, AdminToken full access; both are
// checked before falling back to JWT verification.
type AuthConfig struct {
	ReadToken  string
	AdminToken string
	JWTSecret  string
}

func LoadAuthConfig() AuthConfig {
	return AuthConfig{
		ReadToken:  GetEnv("API_READ_TOKEN", ""),
		AdminToken: GetEnv("API_ADMIN_TOKEN", ""),
		JWTSecret:  GetEnv("JWT_SECRET_KEY", "shopper-cart-dev-secret"),
	}
}

// EmailConfig holds the EmailJS identifiers for the order confirmation
// template.
type EmailConfig struct {
	BaseURL    string
	ServiceID  string
	TemplateID string
	PublicKey  string
}

func LoadEmailConfig() EmailConfig {
	return EmailConfig{
		BaseURL:    GetEnv("EMAILJS_BASE_URL", "https://api.emailjs.com"),
		ServiceID:  GetEnv("EMAILJS_SERVICE_ID", ""),
		TemplateID: GetEnv("EMAILJS_TEMPLATE_ID", ""),
		PublicKey:  GetEnv("EMAILJS_PUBLIC_KEY", ""),
	}
}

type CartConfig struct {
	// Entries older than MaxAge are removed by the sweeper.
	MaxAge    time.Duration
	SweepSpec string
}

func LoadCartConfig() CartConfig {
	hours := GetEnvAsInt("CART_MAX_AGE_HOURS", 72)
	return CartConfig{
		MaxAge:    time.Duration(hours) * time.Hour,
		SweepSpec: GetEnv("CART_SWEEP_SPEC", "0 0 * * * *"),
	}
}

func LoadServerConfig(defaultPort string) ServerConfig {
	port := defaultPort
	if envPort := os.Getenv("SERVER_PORT"); envPort != "" {
		port = envPort
	}
	return ServerConfig{Port: ":" + port}
}

func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func GetEnvAsInt(key string, fallback int) int {
	strValue := GetEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
