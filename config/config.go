package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Default endpoints for the supported generative-AI providers. Each one can
// be overridden through the environment, which is also how tests point the
// adapters at local fake servers.
const (
	DefaultGeminiAPIURL    = "https://generativelanguage.googleapis.com/v1beta/models/gemini-pro:generateContent"
	DefaultOpenAIAPIURL    = "https://api.openai.com/v1/chat/completions"
	DefaultAnthropicAPIURL = "https://api.anthropic.com/v1/messages"
)

// Config holds all configuration for the application.
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret string

	// Generative-AI provider credentials and endpoints
	GeminiAPIKey    string
	GeminiAPIURL    string
	OpenAIAPIKey    string
	OpenAIAPIURL    string
	AnthropicAPIKey string
	AnthropicAPIURL string
}

// LoadConfig builds a Config from the environment. A .env file in the working
// directory is merged in first when present; real environment variables win.
func LoadConfig() (*Config, error) {
	// Ignore a missing .env; containerized deployments set the environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		ServerHost: getEnv("SERVER_HOST", "0.0.0.0"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     getEnv("DB_NAME", "mealforge"),
		DBSSLMode:  getEnv("DB_SSL_MODE", "disable"),

		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisURL:      os.Getenv("REDIS_URL"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		GeminiAPIURL:    getEnv("GEMINI_API_URL", DefaultGeminiAPIURL),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		OpenAIAPIURL:    getEnv("OPENAI_API_URL", DefaultOpenAIAPIURL),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		AnthropicAPIURL: getEnv("ANTHROPIC_API_URL", DefaultAnthropicAPIURL),
	}

	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		db, err := strconv.Atoi(dbStr)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB value %q: %w", dbStr, err)
		}
		cfg.RedisDB = db
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
