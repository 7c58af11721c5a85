package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration values for the application
type Config struct {
	Port           string
	AllowedOrigins []string
	LogLevel       string
	Environment    string

	GitHubToken       string
	GitHubAPIURL      string
	ReadmeFetchDelay  time.Duration // pause between README filename attempts
	ProjectStagger    time.Duration // start offset per repository index, 0 disables
	EnrichConcurrency int           // 0 means uncapped

	IPInfoToken string
	IPInfoURL   string

	DatabaseURL       string
	DatabaseAdminURL  string // privileged credentials for analytics reads
	VisitorQueryLimit int

	RedisURL        string
	ProjectCacheTTL time.Duration

	SupabaseJWTSecret string
	AdminEmails       []string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Port:              getEnv("PORT", "8080"),
		AllowedOrigins:    parseList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		Environment:       getEnv("ENVIRONMENT", "production"),
		GitHubToken:       getEnv("GITHUB_TOKEN", ""),
		GitHubAPIURL:      strings.TrimRight(getEnv("GITHUB_API_URL", "https://api.github.com"), "/"),
		ReadmeFetchDelay:  getDurationEnv("README_FETCH_DELAY", 100*time.Millisecond),
		ProjectStagger:    getDurationEnv("PROJECT_STAGGER", 0),
		EnrichConcurrency: getIntEnv("ENRICH_CONCURRENCY", 0),
		IPInfoToken:       getEnv("IPINFO_TOKEN", ""),
		IPInfoURL:         strings.TrimRight(getEnv("IPINFO_URL", "https://ipinfo.io"), "/"),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		DatabaseAdminURL:  getEnv("DATABASE_ADMIN_URL", getEnv("DATABASE_URL", "")), // Falls back to the ordinary client
		VisitorQueryLimit: getIntEnv("VISITOR_QUERY_LIMIT", 1000),
		RedisURL:          getEnv("REDIS_URL", ""),
		ProjectCacheTTL:   getDurationEnv("PROJECT_CACHE_TTL", 10*time.Minute),
		SupabaseJWTSecret: getEnv("SUPABASE_JWT_SECRET", ""),
		AdminEmails:       parseList(strings.ToLower(getEnv("ADMIN_EMAILS", ""))),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the settings that have no usable default.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}
	if c.VisitorQueryLimit <= 0 {
		return fmt.Errorf("VISITOR_QUERY_LIMIT must be positive, got %d", c.VisitorQueryLimit)
	}
	return nil
}

// getEnv gets an environment variable with a fallback value
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getIntEnv gets an integer environment variable with a fallback value
func getIntEnv(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

// getDurationEnv accepts Go duration strings ("250ms", "10m").
func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil && parsed >= 0 {
			return parsed
		}
	}
	return fallback
}

// parseList parses a comma-separated list into a slice
func parseList(values string) []string {
	if values == "" {
		return []string{}
	}

	parts := strings.Split(values, ",")
	result := make([]string, 0, len(parts))

	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
