// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"rarebit-ledger/pkg/blob"
	"rarebit-ledger/pkg/db"
)

// AppConfig holds all application-wide configurations.
type AppConfig struct {
	ServerPort         string
	CORSAllowedOrigins []string
	DB                 db.Config
	Cloudinary         blob.Config
}

// LoadConfig loads configuration from a .env file (when present) and the
// environment. It returns an AppConfig instance or an error if any required
// variable is invalid.
func LoadConfig() (*AppConfig, error) {
	// A missing .env file is fine; the environment may carry everything.
	_ = godotenv.Load()

	serverPort := getEnv("SERVER_PORT", "8080")

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	corsOrigins := []string{}
	if raw := getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"); raw != "" {
		for _, origin := range strings.Split(raw, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				corsOrigins = append(corsOrigins, origin)
			}
		}
	}

	return &AppConfig{
		ServerPort:         serverPort,
		CORSAllowedOrigins: corsOrigins,
		DB: db.Config{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     dbPort,
			User:     getEnv("DB_USER", "user"),
			Password: getEnv("DB_PASSWORD", "password"),
			DBName:   getEnv("DB_NAME", "rarebitdb"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Cloudinary: blob.Config{
			CloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
			APIKey:    os.Getenv("CLOUDINARY_API_KEY"),
			APISecret: os.Getenv("CLOUDINARY_API_SECRET"),
		},
	}, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
