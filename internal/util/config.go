package util

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config holds runtime settings and flags.
type Config struct {
	DSN          string `env:"BUDGETHERO_DATABASE_URL"`
	DataDir      string `env:"BUDGETHERO_DATA_DIR" envDefault:".budgethero"`
	Seed         string `env:"BUDGETHERO_SEED"`
	Theme        string `env:"BUDGETHERO_THEME" envDefault:"catppuccin"`
	Premium      bool   `env:"BUDGETHERO_PREMIUM"`
	AuthSecret   string `env:"BUDGETHERO_AUTH_SECRET"`
	LogFile      string `env:"BUDGETHERO_LOG_FILE"`
	OTELEndpoint string `env:"BUDGETHERO_OTEL_ENDPOINT"`
	RulesVersion string `env:"-"`
}

// LoadConfig reads BUDGETHERO_* variables.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.DSN = strings.TrimSpace(cfg.DSN)
	cfg.Seed = strings.TrimSpace(cfg.Seed)
	cfg.Theme = strings.ToLower(strings.TrimSpace(cfg.Theme))
	if strings.TrimSpace(cfg.DataDir) == "" {
		cfg.DataDir = ".budgethero"
	}
	return cfg, nil
}

func (c Config) LocalDBPath() string { return filepath.Join(c.DataDir, "progress.db") }

// LogPath defaults to a file in the data dir so the TUI keeps the terminal.
func (c Config) LogPath() string {
	if c.LogFile != "" {
		return c.LogFile
	}
	return filepath.Join(c.DataDir, "budgethero.log")
}

func (c Config) Online() bool { return c.DSN != "" }
