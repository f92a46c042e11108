package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Database DatabaseConfig
	API      APIConfig
	Auth     AuthConfig
	Webhook  WebhookConfig
	Dispatch DispatchConfig
}

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// APIConfig holds API server configuration
type APIConfig struct {
	Port int
}

// AuthConfig holds token signing configuration
type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// WebhookConfig holds inbound webhook configuration.
// Secret may be empty; the webhook handler then rejects every call
// as misconfigured instead of failing at startup.
type WebhookConfig struct {
	Secret string
}

// DispatchConfig holds delivery simulation configuration
type DispatchConfig struct {
	MinDelay    time.Duration
	MaxDelay    time.Duration
	FailureRate float64
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	apiPort, err := strconv.Atoi(getEnv("API_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid API_PORT: %w", err)
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	tokenTTL, err := time.ParseDuration(getEnv("JWT_EXPIRES_IN", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRES_IN: %w", err)
	}

	minDelayMs, err := strconv.Atoi(getEnv("DISPATCH_MIN_DELAY_MS", "1000"))
	if err != nil {
		return nil, fmt.Errorf("invalid DISPATCH_MIN_DELAY_MS: %w", err)
	}

	maxDelayMs, err := strconv.Atoi(getEnv("DISPATCH_MAX_DELAY_MS", "6000"))
	if err != nil {
		return nil, fmt.Errorf("invalid DISPATCH_MAX_DELAY_MS: %w", err)
	}

	failureRate, err := strconv.ParseFloat(getEnv("DISPATCH_FAILURE_RATE", "0.1"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid DISPATCH_FAILURE_RATE: %w", err)
	}
	if failureRate < 0 || failureRate > 1 {
		return nil, fmt.Errorf("DISPATCH_FAILURE_RATE must be between 0 and 1")
	}

	if maxDelayMs < minDelayMs {
		return nil, fmt.Errorf("DISPATCH_MAX_DELAY_MS must be >= DISPATCH_MIN_DELAY_MS")
	}

	return &Config{
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     dbPort,
			User:     getEnv("DB_USER", "campaigns"),
			Password: getEnv("DB_PASSWORD", "campaigns"),
			DBName:   getEnv("DB_NAME", "campaigns"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		API: APIConfig{
			Port: apiPort,
		},
		Auth: AuthConfig{
			JWTSecret: jwtSecret,
			TokenTTL:  tokenTTL,
		},
		Webhook: WebhookConfig{
			Secret: os.Getenv("WEBHOOK_SECRET"),
		},
		Dispatch: DispatchConfig{
			MinDelay:    time.Duration(minDelayMs) * time.Millisecond,
			MaxDelay:    time.Duration(maxDelayMs) * time.Millisecond,
			FailureRate: failureRate,
		},
	}, nil
}

// DSN returns the database connection string
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
