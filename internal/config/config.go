package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// defaultDatabaseURL is the development fallback used when DATABASE_URL
// is not set. Production deployments must always set DATABASE_URL.
const defaultDatabaseURL = "file:data/locallibrary.db"

type Config struct {
	DatabaseURL string
	RedisURL    string
	TokenSecret string
	ServerPort  string
	Environment string
	AuditPath   string

	// Login attempt limiting
	LoginLimitMaxAttempts int
	LoginLimitWindow      time.Duration
}

func Load() *Config {
	// Try to load .env file, but don't fail if it doesn't exist
	// (containers pass environment variables directly)
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file loaded")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		databaseURL = defaultDatabaseURL
	}

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = ":8080"
	}

	auditPath := os.Getenv("AUDIT_PATH")
	if auditPath == "" {
		auditPath = "data/audit.log"
	}

	cfg := &Config{
		DatabaseURL: databaseURL,
		RedisURL:    os.Getenv("REDIS_URL"),
		TokenSecret: os.Getenv("TOKEN_SECRET"),
		ServerPort:  serverPort,
		Environment: os.Getenv("ENVIRONMENT"),
		AuditPath:   auditPath,

		LoginLimitMaxAttempts: getEnvAsInt("LOGIN_LIMIT_MAX_ATTEMPTS", 10),
		LoginLimitWindow:      getEnvAsDuration("LOGIN_LIMIT_WINDOW", "1m"),
	}

	return cfg
}

// IsProduction reports whether the app runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnvAsInt retrieves environment variable as int with default value
func getEnvAsInt(key string, defaultVal int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		log.Printf("Invalid %s value, using default: %d", key, defaultVal)
		return defaultVal
	}
	return val
}

// getEnvAsDuration retrieves environment variable as duration with default value
func getEnvAsDuration(key string, defaultVal string) time.Duration {
	valStr := os.Getenv(key)
	if valStr == "" {
		valStr = defaultVal
	}
	duration, err := time.ParseDuration(valStr)
	if err != nil {
		log.Printf("Invalid %s value, using default: %s", key, defaultVal)
		duration, _ = time.ParseDuration(defaultVal)
	}
	return duration
}
