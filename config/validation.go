package config

import (
	"fmt"
	"strconv"
)

// ValidateConfig checks that the loaded configuration is usable. The default
// provider must be configured; the alternates are optional and requests for
// them fall back to the default at selection time.
func ValidateConfig(cfg *Config) error {
	if _, err := strconv.Atoi(cfg.ServerPort); err != nil {
		return fmt.Errorf("SERVER_PORT must be numeric, got %q", cfg.ServerPort)
	}

	if cfg.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}

	if cfg.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required (default meal-plan provider)")
	}

	return nil
}
