package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"tradedesk/internal/database"
)

// Store backends.
const (
	StoreSQL    = "sql"
	StoreMemory = "memory"
)

// Session backends.
const (
	SessionMemory = "memory"
	SessionRedis  = "redis"
)

// Config holds application configuration
type Config struct {
	// Server
	Env  string
	Port string

	// Persistence
	Database     database.Config
	StoreBackend string

	// Sessions
	SessionSecret    string
	SessionTTL       time.Duration
	SessionBackend   string
	SessionSweepSpec string
	SecureCookies    bool
	RedisAddr        string
	RedisPassword    string
	RedisDB          int

	// Credentials
	BcryptCost             int
	BootstrapAdminUsername string
	BootstrapAdminPassword string

	// Observability
	MetricsAPIKey string
	LogFile       string
	LogMaxSizeMB  int
	LogMaxAgeDays int
	LogMaxBackups int
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// Get values from environment variables with defaults
	config := &Config{
		// Server
		Env:  getEnv("ENV", "development"),
		Port: getEnv("PORT", "8080"),

		// Persistence
		Database: database.Config{
			Driver:     getEnv("DB_DRIVER", database.DriverPostgres),
			Host:       getEnv("DB_HOST", "localhost"),
			Port:       getEnv("DB_PORT", "5432"),
			User:       getEnv("DB_USER", "tradedesk"),
			Password:   getEnv("DB_PASSWORD", "tradedesk"),
			DBName:     getEnv("DB_NAME", "tradedesk"),
			SSLMode:    getEnv("DB_SSLMODE", "disable"),
			SQLitePath: getEnv("SQLITE_PATH", "tradedesk.db"),
		},
		StoreBackend: getEnv("STORE_BACKEND", StoreSQL),

		// Sessions
		SessionSecret:    getEnv("SESSION_SECRET", "fallback-secret-key-for-dev-only"),
		SessionBackend:   getEnv("SESSION_BACKEND", SessionMemory),
		SessionSweepSpec: getEnv("SESSION_SWEEP_SPEC", "@every 5m"),
		SecureCookies:    getEnv("SECURE_COOKIES", "false") == "true",
		RedisAddr:        getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:    getEnv("REDIS_PASSWORD", ""),

		// Credentials
		BootstrapAdminUsername: getEnv("BOOTSTRAP_ADMIN_USERNAME", ""),
		BootstrapAdminPassword: getEnv("BOOTSTRAP_ADMIN_PASSWORD", ""),

		// Observability
		MetricsAPIKey: getEnv("METRICS_API_KEY", ""),
		LogFile:       getEnv("LOG_FILE", ""),
	}

	// Parse session lifetime
	ttlStr := getEnv("SESSION_TTL", "30m")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil || ttl <= 0 {
		log.Printf("Warning: invalid SESSION_TTL value '%s', falling back to 30m\n", ttlStr)
		ttl = 30 * time.Minute
	}
	config.SessionTTL = ttl

	config.RedisDB = getEnvInt("REDIS_DB", 0)
	config.BcryptCost = getEnvInt("BCRYPT_COST", 10)
	config.LogMaxSizeMB = getEnvInt("LOG_MAX_SIZE_MB", 100)
	config.LogMaxAgeDays = getEnvInt("LOG_MAX_AGE_DAYS", 28)
	config.LogMaxBackups = getEnvInt("LOG_MAX_BACKUPS", 5)

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt is getEnv for integers; unparsable values fall back to the default.
func getEnvInt(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("Warning: invalid %s value '%s', falling back to %d\n", key, raw, defaultValue)
		return defaultValue
	}
	return v
}
