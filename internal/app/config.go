package app

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Env       string // Environment (dev, staging, prod) (default: dev)
	LogLevel  string // Log level (debug, info, warn, error) (default: info)
	LogFormat string // Log format (json, text) (default: json)
	Port      int    // HTTP server port (default: 8080)

	DBDriver     string // Database driver (sqlite, postgres) (default: sqlite)
	DatabaseFile string // Path to SQLite database file (default: ./portfolio.db)
	DatabaseURL  string // Postgres DSN, required when DBDriver is postgres

	PepperFile string // Path to file containing pepper for password hashing (default: ./pepper)
	UploadDir  string // Directory uploaded media is stored in (default: ./uploads)

	SessionDuration time.Duration // Lifetime of issued sessions (default: 24h)
	StoreTimeout    time.Duration // Per-call store deadline (default: 5s)

	CORSAllowedOrigins []string // Exact-match origin allow-list, comma separated

	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Expired-session sweep interval (default: 1h)

	AdminUsername string // Bootstrap admin username (default: admin)
	AdminEmail    string // Bootstrap admin email
	AdminPassword string // Bootstrap admin password (default: admin123, change it)
}

func LoadConfig() Config {
	return Config{
		Env:       getEnvOrDefault("ENV", "dev"),
		LogLevel:  getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "json"),
		Port:      getEnvIntOrDefault("PORT", 8080),

		DBDriver:     getEnvOrDefault("DB_DRIVER", "sqlite"),
		DatabaseFile: getEnvOrDefault("DATABASE_FILE", "portfolio.db"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),

		PepperFile: getEnvOrDefault("PEPPER_FILE", "pepper"),
		UploadDir:  getEnvOrDefault("UPLOAD_DIR", "uploads"),

		SessionDuration: getEnvDurationOrDefault("SESSION_DURATION", 24*time.Hour),
		StoreTimeout:    getEnvDurationOrDefault("STORE_TIMEOUT", 5*time.Second),

		CORSAllowedOrigins: splitCommaList(os.Getenv("CORS_ALLOWED_ORIGINS")),

		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),

		AdminUsername: getEnvOrDefault("ADMIN_USERNAME", "admin"),
		AdminEmail:    getEnvOrDefault("ADMIN_EMAIL", "admin@asteca2.com"),
		AdminPassword: getEnvOrDefault("ADMIN_PASSWORD", "admin123"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Parse as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are read as minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}

func splitCommaList(value string) []string {
	if value == "" {
		return nil
	}

	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
