package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds application configuration
type Config struct {
	DatabaseURL string
	JWTSecret   string
	Port        string
	Environment string

	// Matching configuration
	MinMatchScore       int
	MaxMatchesPerEntity int
	MatchWorkers        int

	// Email notification configuration
	AWSRegion         string
	EmailFrom         string
	NotificationEmail string
	NotifyThreshold   int

	// Security configuration
	AllowedOrigins string
	MaxRequestSize int64
}

// New creates a new configuration instance from environment variables
func New() *Config {
	return &Config{
		DatabaseURL: getEnv("DATABASE_URL", ""),
		JWTSecret:   getEnv("JWT_SECRET", ""),
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENV", "development"),

		MinMatchScore:       getEnvAsInt("MIN_MATCH_SCORE", 40),
		MaxMatchesPerEntity: getEnvAsInt("MAX_MATCHES_PER_ENTITY", 25),
		MatchWorkers:        getEnvAsInt("MATCH_WORKERS", 5),

		AWSRegion:         getEnv("AWS_REGION", "us-east-1"),
		EmailFrom:         getEnv("EMAIL_FROM", ""),
		NotificationEmail: getEnv("NOTIFICATION_EMAIL", ""),
		NotifyThreshold:   getEnvAsInt("NOTIFY_THRESHOLD", 80),

		AllowedOrigins: getEnv("ALLOWED_ORIGINS", ""),
		MaxRequestSize: getEnvAsInt64("MAX_REQUEST_SIZE", 10*1024*1024), // 10MB default
	}
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// HasEmailNotifications returns true if the SES notifier is configured
func (c *Config) HasEmailNotifications() bool {
	return c.EmailFrom != "" && c.NotificationEmail != ""
}

// GetAllowedOrigins returns a slice of allowed CORS origins
func (c *Config) GetAllowedOrigins() []string {
	if c.AllowedOrigins == "" {
		return []string{}
	}
	return strings.Split(c.AllowedOrigins, ",")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
