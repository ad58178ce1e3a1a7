package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config is the application configuration, read from the environment.
type Config struct {
	TelegramToken   string
	GeminiAPIKey    string // optional: absence degrades chat, not startup
	GeminiModel     string
	GeminiMaxTokens int32
	AdminPassword   string
	ChatDBPath      string // empty means in-memory conversation history
	MaxContextSize  int
	CatalogSchema   string // "short" or "full"
}

// Load reads the configuration, picking up a .env file when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	config := &Config{
		TelegramToken:   os.Getenv("TELEGRAM_BOT_TOKEN"),
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		GeminiModel:     "gemini-2.0-flash-exp",
		GeminiMaxTokens: 2048,
		AdminPassword:   os.Getenv("ADMIN_PASSWORD"),
		ChatDBPath:      os.Getenv("CHAT_DB_PATH"),
		MaxContextSize:  20,
		CatalogSchema:   "short",
	}

	if model := os.Getenv("GEMINI_MODEL"); model != "" {
		config.GeminiModel = model
	}

	if raw := os.Getenv("GEMINI_MAX_TOKENS"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("GEMINI_MAX_TOKENS is not a number: %v", err)
		}
		config.GeminiMaxTokens = int32(parsed)
	}

	if raw := os.Getenv("MAX_CONTEXT_SIZE"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("MAX_CONTEXT_SIZE is not a number: %v", err)
		}
		config.MaxContextSize = parsed
	}

	if schema := os.Getenv("CATALOG_SCHEMA"); schema != "" {
		if schema != "short" && schema != "full" {
			return nil, fmt.Errorf("CATALOG_SCHEMA must be \"short\" or \"full\", got %q", schema)
		}
		config.CatalogSchema = schema
	}

	if config.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable is empty")
	}
	if config.AdminPassword == "" {
		return nil, fmt.Errorf("ADMIN_PASSWORD environment variable is empty")
	}

	return config, nil
}
