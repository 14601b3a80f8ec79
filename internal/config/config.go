package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port     string
	Env      string
	LogLevel string

	// Store
	DatabaseURL    string
	UseMemoryStore bool
	StoreTimeout   time.Duration

	// Request gate
	AllowedOrigins []string
	MaxBodyBytes   int64

	// Operator diagnostics
	AdminToken string

	// SendGrid notification settings
	SendGridAPIKey string
	NotifyFrom     string
	NotifyFromName string
	NotifyTo       string
	NotifyTimeout  time.Duration
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:           getEnv("PORT", "8080"),
		Env:            getEnv("ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		UseMemoryStore: getEnvAsBool("USE_MEMORY_STORE", false),
		StoreTimeout:   getEnvAsDuration("STORE_TIMEOUT", 5*time.Second),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "")),
		MaxBodyBytes:   getEnvAsInt64("MAX_BODY_BYTES", 256<<10),
		AdminToken:     getEnv("ADMIN_TOKEN", ""),
		SendGridAPIKey: getEnv("SENDGRID_API_KEY", ""),
		NotifyFrom:     getEnv("LEAD_NOTIFY_FROM", ""),
		NotifyFromName: getEnv("LEAD_NOTIFY_FROM_NAME", "Lead Intake"),
		NotifyTo:       getEnv("LEAD_NOTIFY_TO", ""),
		NotifyTimeout:  getEnvAsDuration("NOTIFY_TIMEOUT", 10*time.Second),
	}
}

// Validate checks that the configuration is usable. The process must refuse
// to start without a reachable store configuration.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" && !c.UseMemoryStore {
		return fmt.Errorf("config: DATABASE_URL is required (set USE_MEMORY_STORE=true to run without Postgres)")
	}
	if c.SendGridAPIKey != "" && (c.NotifyFrom == "" || c.NotifyTo == "") {
		return fmt.Errorf("config: LEAD_NOTIFY_FROM and LEAD_NOTIFY_TO are required when SENDGRID_API_KEY is set")
	}
	if c.IsProduction() && c.NotifyTo != "" && c.SendGridAPIKey == "" {
		return fmt.Errorf("config: SENDGRID_API_KEY is required in production when LEAD_NOTIFY_TO is set")
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("config: MAX_BODY_BYTES must be positive")
	}
	return nil
}

// IsProduction reports whether the service runs with the production profile.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func splitList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
