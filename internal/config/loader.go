package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if AUC_CONFIG is set
//  3. env (prefix AUC_)
func Load() (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("AUC_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// AUC_SWEEP_MIN -> sweep_min. Keys stay flat to match the koanf tags.
	envProvider := env.Provider("AUC_", ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), "auc_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that values are usable.
func (c *Config) Validate() error {
	switch {
	case c.Samples <= 0:
		return fmt.Errorf("%w: samples must be positive", ErrInvalidConfig)
	case c.Balance < 0 || c.Balance > 1:
		return fmt.Errorf("%w: balance must be within [0, 1]", ErrInvalidConfig)
	case c.Runs <= 0:
		return fmt.Errorf("%w: runs must be positive", ErrInvalidConfig)
	case c.SweepStep <= 0:
		return fmt.Errorf("%w: sweep_step must be positive", ErrInvalidConfig)
	case c.SweepMin >= c.SweepMax:
		return fmt.Errorf("%w: sweep_min must be below sweep_max", ErrInvalidConfig)
	case c.SparseRatio < 0 || c.SparseRatio > 1:
		return fmt.Errorf("%w: sparse_ratio must be within [0, 1]", ErrInvalidConfig)
	case c.PoolSize <= 0:
		return fmt.Errorf("%w: pool_size must be positive", ErrInvalidConfig)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("%w: log_level %q", ErrInvalidConfig, c.LogLevel)
	}
	return l, nil
}
