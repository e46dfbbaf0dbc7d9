package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the environment-driven application settings
type Config struct {
	Port            string
	Env             string
	PostgresConnStr string
	JWTSecret       string

	LogLevel string
	LogFile  string

	DefaultPageSize int
	MaxPageSize     int

	TrendingWindow        time.Duration
	NotificationRetention time.Duration
	SweepSchedule         string // cron expression for the notification retention sweep
}

// Load reads the configuration from environment variables
func Load() *Config {
	return &Config{
		Port:            getEnv("PORT", "8080"),
		Env:             getEnv("ENV", "development"),
		PostgresConnStr: getEnv("POSTGRES_CONN_STR", ""),
		JWTSecret:       getEnv("JWT_SECRET", ""),

		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogFile:  getEnv("LOG_FILE", ""),

		DefaultPageSize: getEnvInt("DEFAULT_PAGE_SIZE", 10),
		MaxPageSize:     getEnvInt("MAX_PAGE_SIZE", 100),

		TrendingWindow:        time.Duration(getEnvInt("TRENDING_WINDOW_DAYS", 7)) * 24 * time.Hour,
		NotificationRetention: time.Duration(getEnvInt("NOTIFICATION_RETENTION_DAYS", 30)) * 24 * time.Hour,
		SweepSchedule:         getEnv("NOTIFICATION_SWEEP_SCHEDULE", "0 2 * * *"), // daily at 02:00
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
