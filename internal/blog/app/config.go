package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	TokenSecret string        // Required: shared secret for signing access tokens
	Issuer      string        // Optional: issuer claim for tokens (default: inklet-blog)
	TokenTTL    time.Duration // Optional: access token lifetime (default: 1h)

	DatabaseFile  string // Optional: path to SQLite database file (default: ./blog.db)
	AdminUsername string // Optional: username for the seeded admin (default: admin)
	AdminPassword string // Optional: password for the seeded admin (generated when empty)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	cfg := Config{
		TokenSecret:         os.Getenv("BLOG_TOKEN_SECRET"),
		Issuer:              getEnvOrDefault("BLOG_ISSUER", "inklet-blog"),
		TokenTTL:            getEnvDurationOrDefault("BLOG_TOKEN_TTL", time.Hour),
		DatabaseFile:        getEnvOrDefault("BLOG_DATABASE_FILE", "blog.db"),
		AdminUsername:       getEnvOrDefault("BLOG_ADMIN_USERNAME", "admin"),
		AdminPassword:       os.Getenv("BLOG_ADMIN_PASSWORD"),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Duration syntax first (e.g. "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Fall back to integer minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
