// Package config loads the application configuration from the environment.
package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds the application configuration.
type Config struct {
	// Server
	Port string

	// Database. When DBHost is set, postgres is used; otherwise a local
	// sqlite database in DataDir.
	DataDir    string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Sessions
	JWTSecret string
	JWTExpiry time.Duration
}

// Load reads the configuration from a .env file (if present) and the
// environment. Environment variables take precedence over the file.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, using environment only")
	}

	config := Config{
		Port:       getEnv("PORT", "8080"),
		DataDir:    getEnv("DATA_DIR", "data"),
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "centsible"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     getEnv("DB_NAME", "centsible"),
		JWTSecret:  getEnv("JWT_SECRET", "insecure-dev-secret"),
	}

	expiry := getEnv("JWT_EXPIRY", "24h")
	duration, err := time.ParseDuration(expiry)
	if err != nil {
		log.Warn().Str("value", expiry).Msg("invalid JWT_EXPIRY, falling back to 24h")
		duration = 24 * time.Hour
	}
	config.JWTExpiry = duration

	return config
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}

	return fallback
}
