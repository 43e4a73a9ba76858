package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Router    RouterConfig
	Remote    RemoteConfig
	Quota     QuotaConfig
	Templates TemplateConfig
}

// RouterConfig holds the confidence thresholds for escalation routing.
type RouterConfig struct {
	AcceptThreshold   float64
	EscalateThreshold float64
}

// RemoteConfig holds the remote extraction service configuration.
type RemoteConfig struct {
	Endpoint     string
	APIKey       string
	Timeout      time.Duration
	MaxTextBytes int
}

// QuotaConfig holds the usage-quota store configuration.
type QuotaConfig struct {
	Driver       string // "pgx" or "sqlite"
	DSN          string
	MonthlyLimit int
}

// TemplateConfig holds the recurring-template store configuration.
type TemplateConfig struct {
	Path string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Router: RouterConfig{
			AcceptThreshold:   getEnvAsFloat64("ROUTER_ACCEPT_THRESHOLD", 0.85),
			EscalateThreshold: getEnvAsFloat64("ROUTER_ESCALATE_THRESHOLD", 0.60),
		},
		Remote: RemoteConfig{
			Endpoint:     getEnv("REMOTE_EXTRACT_URL", ""),
			APIKey:       getEnv("REMOTE_EXTRACT_API_KEY", ""),
			Timeout:      getEnvAsDuration("REMOTE_EXTRACT_TIMEOUT", 30*time.Second),
			MaxTextBytes: getEnvAsInt("REMOTE_EXTRACT_MAX_TEXT_BYTES", 64*1024),
		},
		Quota: QuotaConfig{
			Driver:       getEnv("QUOTA_DB_DRIVER", "sqlite"),
			DSN:          getEnv("QUOTA_DB_DSN", ""),
			MonthlyLimit: getEnvAsInt("QUOTA_MONTHLY_LIMIT", 10),
		},
		Templates: TemplateConfig{
			Path: getEnv("TEMPLATE_DB_PATH", "./templates.db"),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat64(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration.
func (c *Config) Validate() error {
	if c.Router.AcceptThreshold < c.Router.EscalateThreshold {
		return NewAppError("CONFIG_ERROR", "ROUTER_ACCEPT_THRESHOLD must be >= ROUTER_ESCALATE_THRESHOLD", ErrInvalidInput)
	}
	if c.Router.AcceptThreshold > 1 || c.Router.EscalateThreshold < 0 {
		return NewAppError("CONFIG_ERROR", "router thresholds must lie in [0,1]", ErrInvalidInput)
	}
	if c.Remote.Endpoint != "" && c.Remote.APIKey == "" {
		return NewAppError("CONFIG_ERROR", "REMOTE_EXTRACT_API_KEY is required when REMOTE_EXTRACT_URL is set", ErrInvalidInput)
	}
	if c.Quota.MonthlyLimit <= 0 {
		return NewAppError("CONFIG_ERROR", "QUOTA_MONTHLY_LIMIT must be positive", ErrInvalidInput)
	}
	return nil
}
