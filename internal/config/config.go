package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL      string
	ServerPort       string
	FrontendURL      string
	TokenSecret      string
	TokenTTLHours    int
	RedisURL         string
	RateLimit        string
	RabbitMQURL      string
	RabbitMQPrefetch int
	EnableHSTS       bool
	ServerDebugMode  bool
	WorkerDebugMode  bool
	OTELEnabled      bool
	OTELEndpoint     string
}

// Load reads configuration from environment variables. RABBITMQ_URL is
// optional: without it the server runs with notifications disabled.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		ServerPort:       getEnv("SERVER_PORT", "8080"),
		FrontendURL:      getEnv("FRONTEND_URL", "http://localhost:3000"),
		TokenSecret:      getEnv("TOKEN_SECRET", ""),
		TokenTTLHours:    getEnvInt("TOKEN_TTL_HOURS", 168),
		RedisURL:         getEnv("REDIS_URL", "redis://localhost:6379/0"),
		RateLimit:        getEnv("RATE_LIMIT", "10-S"),
		RabbitMQURL:      getEnv("RABBITMQ_URL", ""),
		RabbitMQPrefetch: getEnvInt("RABBITMQ_PREFETCH", 1),
		EnableHSTS:       getEnvBool("ENABLE_HSTS", false),
		ServerDebugMode:  getEnvBool("SERVER_DEBUG_MODE", false),
		WorkerDebugMode:  getEnvBool("WORKER_DEBUG_MODE", false),
		OTELEnabled:      getEnvBool("OTEL_ENABLED", false),
		OTELEndpoint:     getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if cfg.TokenSecret == "" {
		return nil, fmt.Errorf("TOKEN_SECRET is required for signing auth tokens")
	}

	if cfg.TokenTTLHours <= 0 {
		return nil, fmt.Errorf("TOKEN_TTL_HOURS must be positive, got %d", cfg.TokenTTLHours)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
