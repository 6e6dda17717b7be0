package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env         string
	HTTPAddr    string
	DatabaseURL string

	CORSAllowAll bool
	CORSOrigins  []string

	JWTSecret      string
	AccessTokenTTL time.Duration

	// First operator account, created at startup when the operators table is
	// empty. Optional; leave unset after the initial deployment.
	BootstrapOperatorEmail    string
	BootstrapOperatorName     string
	BootstrapOperatorPassword string

	// Address registry (BAG) settings. The base URL is configurable so tests
	// and staging can point at a stub server.
	RegistryBaseURL string
	RegistryAPIKey  string

	// Notification sink settings.
	WebhookEnabled bool
	WebhookURL     string
	WebhookSecret  string

	RedisURL         string
	QueueName        string
	QueueConcurrency int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:4200"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	webhookURL := getEnv("WEBHOOK_URL", "")
	webhookEnabled := strings.EqualFold(getEnv("WEBHOOK_ENABLED", "true"), "true")

	cfg := &Config{
		Env:              getEnv("APP_ENV", "development"),
		HTTPAddr:         getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		CORSAllowAll:     corsAllowAll,
		CORSOrigins:      corsOrigins,
		JWTSecret:        getEnv("JWT_SECRET", ""),
		AccessTokenTTL:   mustDuration(getEnv("JWT_ACCESS_TTL", "8h"), 8*time.Hour),

		BootstrapOperatorEmail:    getEnv("BOOTSTRAP_OPERATOR_EMAIL", ""),
		BootstrapOperatorName:     getEnv("BOOTSTRAP_OPERATOR_NAME", "Beheerder"),
		BootstrapOperatorPassword: getEnv("BOOTSTRAP_OPERATOR_PASSWORD", ""),

		RegistryBaseURL:  getEnv("BAG_API_BASE_URL", "https://api.bag.kadaster.nl/lvbag/individuelebevragingen/v2"),
		RegistryAPIKey:   getEnv("BAG_API_KEY", ""),
		WebhookEnabled:   webhookEnabled && webhookURL != "",
		WebhookURL:       webhookURL,
		WebhookSecret:    getEnv("WEBHOOK_SECRET", ""),
		RedisURL:         getEnv("REDIS_URL", ""),
		QueueName:        getEnv("ASYNQ_QUEUE", "default"),
		QueueConcurrency: mustInt(getEnv("ASYNQ_CONCURRENCY", "10"), 10),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if webhookEnabled && webhookURL != "" && cfg.WebhookSecret == "" {
		return nil, fmt.Errorf("WEBHOOK_SECRET is required when WEBHOOK_URL is set")
	}

	return cfg, nil
}

// Interface accessors for the platform layer.

func (c *Config) GetDatabaseURL() string           { return c.DatabaseURL }
func (c *Config) GetRegistryBaseURL() string       { return c.RegistryBaseURL }
func (c *Config) GetRegistryAPIKey() string        { return c.RegistryAPIKey }
func (c *Config) IsRegistryEnabled() bool          { return c.RegistryAPIKey != "" }
func (c *Config) GetJWTSecret() string             { return c.JWTSecret }
func (c *Config) GetAccessTokenTTL() time.Duration { return c.AccessTokenTTL }
func (c *Config) GetRedisURL() string              { return c.RedisURL }
func (c *Config) GetQueueName() string             { return c.QueueName }
func (c *Config) GetConcurrency() int              { return c.QueueConcurrency }
func (c *Config) GetWebhookURL() string            { return c.WebhookURL }
func (c *Config) GetWebhookSecret() string         { return c.WebhookSecret }
func (c *Config) IsWebhookEnabled() bool           { return c.WebhookEnabled }

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func mustInt(value string, fallback int) int {
	var n int
	if _, err := fmt.Sscanf(value, "%d", &n); err != nil || n < 1 {
		return fallback
	}
	return n
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
