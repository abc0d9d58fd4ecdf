package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/julianstephens/lifestock/internal/constants"
	"github.com/julianstephens/lifestock/internal/utils"
)

type Config struct {
	// Database is a SQLite file path, a PostgreSQL connection string, or
	// "keyring" to read the connection string from LIFESTOCK_DB_CONNECTION or the OS keyring
	Database           string `koanf:"database"`
	KeyringProfile     string `koanf:"keyring_profile"`
	Timezone           string `koanf:"timezone"`
	Debug              bool   `koanf:"debug"`
	LogDir             string `koanf:"log_dir"`
	DefaultAdvanceDays int    `koanf:"default_advance_days"`
	DefaultDueTime     string `koanf:"default_due_time"` // HH:MM used when a due date has no time
}

// Load merges defaults, the YAML file at configPath (if it exists) and
// LIFESTOCK_* environment variables, in that order.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(NewDefaultProvider(), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath != "" {
		configPath = utils.ExpandPath(configPath)

		if _, err := os.Stat(configPath); err == nil {
			if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load config file: %w", err)
			}
		}
	}

	if err := k.Load(env.Provider(constants.EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, constants.EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.LogDir = utils.ExpandPath(cfg.LogDir)
	if !IsPostgres(cfg.Database) && !cfg.UsesKeyring() {
		cfg.Database = utils.ExpandPath(cfg.Database)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Database) == "" {
		return fmt.Errorf("database is required")
	}
	if !utils.ValidateTimezone(c.Timezone) {
		return fmt.Errorf("invalid timezone: %q", c.Timezone)
	}
	if c.DefaultAdvanceDays < 0 {
		return fmt.Errorf("default_advance_days cannot be negative")
	}
	if _, err := time.Parse(constants.TimeFormat, c.DefaultDueTime); err != nil {
		return fmt.Errorf("default_due_time must be HH:MM: %w", err)
	}
	return nil
}

// UsesKeyring reports whether the connection string must be resolved from the environment or keyring.
func (c *Config) UsesKeyring() bool {
	return c.Database == constants.DatabaseKeyring
}

// IsPostgres reports whether db is a PostgreSQL connection URL or a key=value
// DSN naming a host, rather than a SQLite file path.
func IsPostgres(db string) bool {
	return strings.HasPrefix(db, "postgres://") ||
		strings.HasPrefix(db, "postgresql://") ||
		strings.Contains(db, "host=")
}
