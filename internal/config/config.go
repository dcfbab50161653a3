package config

import (
	"fmt"
	"os"
	"strings"
)

// Theme store backends.
const (
	ThemeStoreCookie   = "cookie"
	ThemeStoreRedis    = "redis"
	ThemeStoreDatabase = "database"
)

type Config struct {
	// Database
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string
	DatabaseURL string

	// Redis
	RedisURL string

	// Server
	Port        string
	Environment string
	LogLevel    string

	// CORS
	CORSOrigins []string

	// Rate Limiting
	RateLimitRequests int
	RateLimitWindow   int
	RateLimitBurst    int

	// Theme preference
	ThemeStore        string
	ThemeCookieMaxAge int

	// Features
	EnableMetrics bool
	EnableLive    bool
	EnableCache   bool

	// Content
	ContentDir             string
	ContentRefreshInterval int

	// Maintenance
	PreferenceRetentionDays int

	// Site Meta
	SiteName    string
	SiteTagline string
	SiteURL     string
	SiteLogo    string
}

func New() *Config {
	c := &Config{
		// Database
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "altaviva"),
		DBPassword: getEnv("DB_PASSWORD", "altaviva"),
		DBName:     getEnv("DB_NAME", "altaviva"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		// Redis
		RedisURL: getEnv("REDIS_URL", "localhost:6379"),

		// Server
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "debug"),

		// CORS
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "http://localhost:8080")),

		// Rate Limiting
		RateLimitRequests: getEnvAsInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   getEnvAsInt("RATE_LIMIT_WINDOW", 60),
		RateLimitBurst:    getEnvAsInt("RATE_LIMIT_BURST", 0),

		// Theme preference
		ThemeStore:        strings.ToLower(getEnv("THEME_STORE", ThemeStoreCookie)),
		ThemeCookieMaxAge: getEnvAsInt("THEME_COOKIE_MAX_AGE", 365*24*60*60),

		// Features
		EnableMetrics: getEnvAsBool("ENABLE_METRICS", true),
		EnableLive:    getEnvAsBool("LIVE_ENABLED", true),
		EnableCache:   getEnvAsBool("ENABLE_CACHE", false),

		// Content
		ContentDir:             getEnv("CONTENT_DIR", ""),
		ContentRefreshInterval: getEnvAsInt("CONTENT_REFRESH_INTERVAL", 300),

		// Maintenance
		PreferenceRetentionDays: getEnvAsInt("PREFERENCE_RETENTION_DAYS", 365),

		// Site Meta
		SiteName:    getEnv("SITE_NAME", "Altaviva Turismo"),
		SiteTagline: getEnv("SITE_TAGLINE", "Sua viagem dos sonhos"),
		SiteURL:     getEnv("SITE_URL", "http://localhost:8080"),
		SiteLogo:    getEnv("SITE_LOGO", "/static/img/logo.svg"),
	}

	// Build DSN
	c.DatabaseURL = fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode,
	)

	return c
}

// Validate reports configuration values the application cannot start with.
func (c *Config) Validate() error {
	switch c.ThemeStore {
	case ThemeStoreCookie, ThemeStoreRedis, ThemeStoreDatabase:
	default:
		return fmt.Errorf("unsupported THEME_STORE %q", c.ThemeStore)
	}
	if strings.TrimSpace(c.Port) == "" {
		return fmt.Errorf("PORT is required")
	}
	if c.ContentRefreshInterval < 0 {
		return fmt.Errorf("CONTENT_REFRESH_INTERVAL must not be negative")
	}
	if c.PreferenceRetentionDays < 0 {
		return fmt.Errorf("PREFERENCE_RETENTION_DAYS must not be negative")
	}
	return nil
}

// NeedsRedis reports whether any enabled component talks to Redis.
func (c *Config) NeedsRedis() bool {
	return c.ThemeStore == ThemeStoreRedis || c.EnableCache
}

func (c *Config) NeedsDatabase() bool {
	return c.ThemeStore == ThemeStoreDatabase
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	var value int
	_, err := fmt.Sscanf(valueStr, "%d", &value)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	return valueStr == "true" || valueStr == "1"
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
