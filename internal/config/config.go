package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds process-level settings read from the environment.
// The application-level settings (autosave cadence, sync peer, queue limit)
// live in the store as a singleton record, not here.
type Config struct {
	Addr        string
	DBPath      string
	LogLevel    string
	AllowOrigin string
}

// Load reads configuration from a .env file (if present) and environment
// variables, applying defaults when values are missing.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:        envOr("ADDR", ":8080"),
		DBPath:      envOr("DB_PATH", "fhmp.db"),
		LogLevel:    envOr("LOG_LEVEL", "INFO"),
		AllowOrigin: envOr("ALLOW_ORIGIN", "*"),
	}
}

// Validate checks the configuration and reports every problem found.
func (c Config) Validate() error {
	var problems []string

	if c.Addr == "" {
		problems = append(problems, "ADDR cannot be empty")
	}
	if c.DBPath == "" {
		problems = append(problems, "DB_PATH cannot be empty")
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "ERROR":
	default:
		problems = append(problems, fmt.Sprintf("LOG_LEVEL must be one of DEBUG, INFO, WARN, ERROR; got %q", c.LogLevel))
	}
	if c.AllowOrigin == "" {
		problems = append(problems, "ALLOW_ORIGIN cannot be empty")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
