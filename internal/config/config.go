package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURI    string
	Port           string
	AIAPIKey       string
	AIBaseURL      string
	AIModel        string
	TelegramToken  string
	TelegramChatID int64
	CheckInterval  time.Duration
	UploadDir      string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// .env file is optional in production
	}

	cfg := &Config{
		DatabaseURI:   os.Getenv("DATABASE_URI"),
		Port:          getEnvOrDefault("PORT", "9000"),
		AIAPIKey:      os.Getenv("AI_API_KEY"),
		AIBaseURL:     getEnvOrDefault("AI_BASE_URL", "https://api.openai.com/v1"),
		AIModel:       getEnvOrDefault("AI_MODEL", "gpt-4o"),
		TelegramToken: os.Getenv("TELEGRAM_TOKEN"),
		UploadDir:     getEnvOrDefault("UPLOAD_DIR", "uploads"),
		CheckInterval: time.Second,
	}

	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		chatID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_CHAT_ID %q: %w", v, err)
		}
		cfg.TelegramChatID = chatID
	}

	if v := os.Getenv("CHECK_INTERVAL"); v != "" {
		interval, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid CHECK_INTERVAL %q: %w", v, err)
		}
		if interval <= 0 {
			return nil, fmt.Errorf("CHECK_INTERVAL must be positive, got %s", interval)
		}
		cfg.CheckInterval = interval
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
