package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	BotToken     string
	StaffChatID  int64
	DatabaseURL  string
	DatabasePath string
	Port         string
	GoEnv        string
	LogLevel     string
}

var config *Config

// Load loads the configuration from environment variables
// It automatically determines which .env file to load based on GO_ENV
func Load() (*Config, error) {
	// Determine which environment file to load
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// Try to load environment-specific file first
	envFile := fmt.Sprintf(".env.%s", env)
	if err := godotenv.Load(envFile); err != nil {
		// If environment-specific file doesn't exist, try .env
		if err := godotenv.Load(); err != nil {
			// In production, environment variables are set directly
			// so it's okay if .env files don't exist
			log.Printf("No .env file found, using system environment variables")
		}
	} else {
		log.Printf("Loaded configuration from %s", envFile)
	}

	staffChatID, err := parseStaffChatID(getEnv("STAFF_CHAT_ID", ""))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		BotToken:     getEnv("BOT_TOKEN", ""),
		StaffChatID:  staffChatID,
		DatabaseURL:  getEnv("DATABASE_URL", ""),
		DatabasePath: getEnv("DATABASE_PATH", "bot.db"),
		Port:         getEnv("PORT", "8080"),
		GoEnv:        env,
		LogLevel:     getEnv("LOG_LEVEL", "info"),
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	config = cfg
	return cfg, nil
}

// Validate checks that all required configuration values are set.
// The bot cannot accept a single update without these, so missing
// values are fatal at startup.
func (c *Config) Validate() error {
	if c.BotToken == "" {
		return fmt.Errorf("BOT_TOKEN is required")
	}
	if c.StaffChatID == 0 {
		return fmt.Errorf("STAFF_CHAT_ID is required")
	}
	return nil
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.GoEnv == "production"
}

// IsTest returns true if the application is running in test mode
func (c *Config) IsTest() bool {
	return c.GoEnv == "test"
}

// GetConfig returns the loaded configuration
func GetConfig() *Config {
	return config
}

// SetConfig replaces the loaded configuration (used by tests)
func SetConfig(c *Config) {
	config = c
}

// parseStaffChatID converts the STAFF_CHAT_ID env value to a chat id.
// An empty value is reported by Validate; a non-numeric one fails here.
func parseStaffChatID(raw string) (int64, error) {
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("STAFF_CHAT_ID must be an integer chat id: %w", err)
	}
	return id, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
