package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DBPath   string
	Port     int
	LogLevel slog.Level
	// CORSOrigins lists the origins allowed to call the JSON API. Empty
	// disables cross-origin access.
	CORSOrigins []string
}

// Load reads configuration from the environment, after loading a .env file if
// one is present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}

	cfg := &Config{
		DBPath:   "namecup.db",
		Port:     8080,
		LogLevel: slog.LevelInfo,
	}

	if v := os.Getenv("NAMECUP_DB_PATH"); v != "" {
		cfg.DBPath = v
	}

	if v := os.Getenv("NAMECUP_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid NAMECUP_PORT: %w", err)
		}
		if port <= 0 || port > 65535 {
			return nil, fmt.Errorf("NAMECUP_PORT must be between 1 and 65535, got %d", port)
		}
		cfg.Port = port
	}

	if v := os.Getenv("NAMECUP_LOG_LEVEL"); v != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(strings.ToUpper(v))); err != nil {
			return nil, fmt.Errorf("invalid NAMECUP_LOG_LEVEL: %w", err)
		}
	}

	if v := os.Getenv("NAMECUP_CORS_ORIGINS"); v != "" {
		for _, origin := range strings.Split(v, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, origin)
			}
		}
	}

	return cfg, nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
