package config

import (
	"fmt"
	"os"
	"strings"
)

// Parse modes for loading ledger files. Lenient drops rows with unparseable
// dates and keeps going; strict fails the whole load.
const (
	ParseModeLenient = "lenient"
	ParseModeStrict  = "strict"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Port string
	Env  string

	// Data directory holding per-user ledger and settings files
	DataDir string

	// Path to the YAML credentials file
	UsersFile string

	// JWT configuration
	JWTSecret string

	// Ledger parse mode: lenient or strict
	ParseMode string

	// Comma-separated list of allowed CORS origins
	AllowedOrigins []string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:      getEnv("PORT", "8080"),
		Env:       getEnv("ENV", "development"),
		DataDir:   getEnv("DATA_DIR", "data"),
		UsersFile: getEnv("USERS_FILE", "users.yaml"),
		JWTSecret: getEnv("JWT_SECRET", ""),
		ParseMode: getEnv("PARSE_MODE", ParseModeLenient),
	}

	origins := getEnv("ALLOWED_ORIGINS", "http://localhost:5173")
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures all required configuration is present
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}

	if len(c.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters long")
	}

	if c.UsersFile == "" {
		return fmt.Errorf("USERS_FILE is required")
	}

	if c.ParseMode != ParseModeLenient && c.ParseMode != ParseModeStrict {
		return fmt.Errorf("PARSE_MODE must be %q or %q", ParseModeLenient, ParseModeStrict)
	}

	return nil
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
