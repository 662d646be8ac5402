package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// ErrWebhookURLRequired is returned by Validate when no submission target is
// configured and demo mode is off.
var ErrWebhookURLRequired = errors.New("config: WEBHOOK_URL is required unless DEMO_MODE is enabled")

// Config holds application configuration
type Config struct {
	Port     string
	Env      string
	LogLevel string

	// WebhookURL is the fixed endpoint that receives validated submissions.
	WebhookURL string
	// WebhookTimeout bounds one outbound submission. Zero means no timeout,
	// matching the form's original behavior of waiting as long as the
	// endpoint takes.
	WebhookTimeout time.Duration

	AllowedOrigins []string

	RateLimitRPS   int
	RateLimitBurst int

	// DemoMode mounts the local demo webhook receiver and, when WebhookURL
	// is unset, points submissions at it.
	DemoMode bool
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:           getEnv("PORT", "8080"),
		Env:            getEnv("ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		WebhookURL:     getEnv("WEBHOOK_URL", ""),
		WebhookTimeout: getEnvAsDuration("WEBHOOK_TIMEOUT", 0),
		AllowedOrigins: getEnvAsSlice("ALLOWED_ORIGINS", []string{"*"}),
		RateLimitRPS:   getEnvAsInt("RATE_LIMIT_RPS", 5),
		RateLimitBurst: getEnvAsInt("RATE_LIMIT_BURST", 10),
		DemoMode:       getEnvAsBool("DEMO_MODE", false),
	}
}

// Validate reports configuration that cannot run: a gateway without a
// submission target has nowhere to send the form.
func (c *Config) Validate() error {
	if c.WebhookURL == "" && !c.DemoMode {
		return ErrWebhookURLRequired
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
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

// getEnvAsSlice splits a comma-separated environment variable, trimming
// whitespace and dropping empty entries.
func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
