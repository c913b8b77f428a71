package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"

	"github.com/seanhalberthal/critpath/internal/domain"
)

// Config holds tool-wide settings.
type Config struct {
	// DBPath locates the SQLite database.
	DBPath string `toml:"db_path"`

	// WorkingHoursPerDay converts estimated hours into scheduling days.
	WorkingHoursPerDay float64 `toml:"working_hours_per_day"`

	// Color enables styled terminal output (still gated on a TTY).
	Color bool `toml:"color"`
}

// Load resolves configuration in priority order: defaults, then the user
// config file (~/.critpath/config.toml), then environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		WorkingHoursPerDay: domain.DefaultWorkingHoursPerDay,
		Color:              true,
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("finding home directory: %w", err)
	}
	cfg.DBPath = filepath.Join(home, ".critpath", "critpath.db")

	configFile := filepath.Join(home, ".critpath", "config.toml")
	if _, err := os.Stat(configFile); err == nil {
		if _, err := toml.DecodeFile(configFile, cfg); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", configFile, err)
		}
	}

	loadFromEnv(cfg)

	if cfg.WorkingHoursPerDay <= 0 {
		return nil, fmt.Errorf("working_hours_per_day must be positive, got %v", cfg.WorkingHoursPerDay)
	}
	return cfg, nil
}

func loadFromEnv(cfg *Config) {
	if v := os.Getenv("CRITPATH_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("CRITPATH_HOURS"); v != "" {
		if hours, err := strconv.ParseFloat(v, 64); err == nil && hours > 0 {
			cfg.WorkingHoursPerDay = hours
		}
	}
	if v := os.Getenv("NO_COLOR"); v != "" {
		cfg.Color = false
	}
}
