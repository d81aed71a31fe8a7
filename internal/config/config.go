package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds every runtime setting the server reads from the environment.
// Call godotenv.Load before Load when running from a .env file.
type Config struct {
	DatabaseURL    string
	ServerPort     string
	JWTSecret      string
	AllowedOrigins string // comma-separated; empty disables CORS
	MigrateOnStart bool

	// SMTP settings for low-stock notification mail. Notifications are
	// disabled when SMTPHost is empty.
	SMTPHost       string
	SMTPPort       int
	SMTPUser       string
	SMTPPassword   string
	LowStockEmailTo string
}

func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		ServerPort:      getEnv("SERVER_PORT", "4000"),
		JWTSecret:       getEnv("JWT_SECRET", "your_jwt_secret"),
		AllowedOrigins:  os.Getenv("ALLOWED_ORIGINS"),
		SMTPHost:        os.Getenv("SMTP_HOST"),
		SMTPUser:        os.Getenv("SMTP_USER"),
		SMTPPassword:    os.Getenv("SMTP_PASSWORD"),
		LowStockEmailTo: os.Getenv("LOW_STOCK_EMAIL_TO"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable not set")
	}

	cfg.MigrateOnStart = os.Getenv("MIGRATE_ON_START") == "true"

	port := getEnv("SMTP_PORT", "587")
	p, err := strconv.Atoi(port)
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT %q: %w", port, err)
	}
	cfg.SMTPPort = p

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
