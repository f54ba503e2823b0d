package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// Config keeps runtime settings for the tracker.
type Config struct {
	DatabaseURL string `env:"DATABASE_URL, default=ecotracker.db"`
	SessionFile string `env:"SESSION_FILE, default=.ecotracker-session.json"`
	FactorsFile string `env:"EMISSION_FACTORS_FILE"`
	MaxBarWidth int    `env:"MAX_BAR_WIDTH, default=50"`
	LogLevel    string `env:"LOG_LEVEL, default=warn"`
	LogPretty   bool   `env:"LOG_PRETTY, default=true"`
}

// Load reads configuration from environment variables with sane defaults.
func Load(ctx context.Context) (Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return cfg, fmt.Errorf("process env: %w", err)
	}

	if cfg.MaxBarWidth <= 0 {
		return cfg, fmt.Errorf("MAX_BAR_WIDTH must be positive, got %d", cfg.MaxBarWidth)
	}

	return cfg, nil
}
