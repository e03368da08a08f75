// Package config loads settings from flags and the environment, flags taking
// the defaults and environment variables overriding them. A .env file in the
// working directory is honored when present.
package config

import (
	"flag"
	"fmt"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Server holds the API binary's settings.
type Server struct {
	Addr         string `env:"RUN_ADDRESS"`
	DatabaseURL  string `env:"DATABASE_URL"`
	RedisAddr    string `env:"REDIS_ADDR"`
	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

// LoadServer parses server settings. An empty DatabaseURL selects the
// in-memory store.
func LoadServer() (*Server, error) {
	_ = godotenv.Load()

	cfg := &Server{}
	flag.StringVar(&cfg.Addr, "a", ":8080", "listen address")
	flag.StringVar(&cfg.DatabaseURL, "d", "", "postgres connection string (empty = in-memory)")
	flag.StringVar(&cfg.RedisAddr, "r", "localhost:6379", "redis address for sessions")
	flag.StringVar(&cfg.OTLPEndpoint, "o", "", "OTLP trace endpoint (empty = tracing off)")
	flag.Parse()

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// Workspace holds the client binary's settings.
type Workspace struct {
	APIBaseURL string `env:"SNACKSHOP_API_URL"`
	ThemeFile  string `env:"SNACKSHOP_THEME_FILE"`
}

// LoadWorkspace parses workspace client settings.
func LoadWorkspace() (*Workspace, error) {
	_ = godotenv.Load()

	cfg := &Workspace{}
	flag.StringVar(&cfg.APIBaseURL, "u", "http://localhost:8080", "snack-shop API base URL")
	flag.StringVar(&cfg.ThemeFile, "t", ".snackshop-theme", "file persisting the theme preference")
	flag.Parse()

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}
