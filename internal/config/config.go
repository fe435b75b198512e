package config

import (
	"os"
	"time"
)

// Config holds application configuration
type Config struct {
	ServerPort      string
	DatabaseType    string // sqlite (default), postgres, mysql
	DatabasePath    string // sqlite file path
	DatabaseURL     string // postgres/mysql connection string
	MigrationsPath  string
	SessionDuration time.Duration

	CSRFSecret       string
	ResetTokenSecret string
	ResetTokenTTL    time.Duration

	GoogleClientID       string
	GoogleClientSecret   string
	OAuthRedirectBaseURL string

	AWSRegion    string
	SESFromEmail string
	SESFromName  string
	AppBaseURL   string

	// Timezone resolves calendar days for streaks, heatmaps and goal
	// windows. Defaults to the server's local zone.
	Timezone *time.Location
}

// Load reads configuration from environment variables with sensible defaults
func Load() *Config {
	return &Config{
		ServerPort:      getEnv("PORT", "8080"),
		DatabaseType:    getEnv("DB_TYPE", "sqlite"),
		DatabasePath:    getEnv("DB_PATH", "./sessionlog.db"),
		DatabaseURL:     getEnv("DB_URL", ""),
		MigrationsPath:  getEnv("MIGRATIONS_PATH", "./migrations"),
		SessionDuration: 24 * time.Hour,

		CSRFSecret:       getEnv("CSRF_SECRET", "dev-insecure-csrf-secret"),
		ResetTokenSecret: getEnv("RESET_TOKEN_SECRET", "dev-insecure-reset-secret"),
		ResetTokenTTL:    1 * time.Hour,

		GoogleClientID:       getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret:   getEnv("GOOGLE_CLIENT_SECRET", ""),
		OAuthRedirectBaseURL: getEnv("OAUTH_REDIRECT_BASE_URL", ""),

		AWSRegion:    getEnv("AWS_REGION", "us-east-1"),
		SESFromEmail: getEnv("SES_FROM_EMAIL", ""),
		SESFromName:  getEnv("SES_FROM_NAME", "SessionLog"),
		AppBaseURL:   getEnv("APP_BASE_URL", "http://localhost:8080"),

		Timezone: loadTimezone(),
	}
}

// loadTimezone parses the TIMEZONE env var, falling back to local time
func loadTimezone() *time.Location {
	name := os.Getenv("TIMEZONE")
	if name == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.Local
	}
	return loc
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
