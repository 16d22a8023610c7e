package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds defaults for the CLI flags. Flags always win over these.
type Config struct {
	DBPath   string
	LogLevel string
	BaseURL  string
	Timeout  time.Duration
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the tool still runs when .env is absent.
	_ = godotenv.Load()

	return Config{
		DBPath:   envOr("DUELRANK_DB", filepath.Join(userHome(), ".duelrank", "ladder.db")),
		LogLevel: envOr("DUELRANK_LOG_LEVEL", "warn"),
		BaseURL:  envOr("DUELRANK_BASE_URL", ""),
		Timeout:  time.Duration(envIntOr("DUELRANK_TIMEOUT", 30)) * time.Second,
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil && i > 0 {
			return i
		}
	}
	return def
}

func userHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
