package config

import (
	"github.com/knadh/koanf/providers/confmap"

	"github.com/julianstephens/lifestock/internal/constants"
)

func DefaultConfig() map[string]interface{} {
	return map[string]interface{}{
		"database":             constants.DefaultDBPath,
		"timezone":             "", // empty defers to the timezone stored in settings
		"keyring_profile":      "",
		"debug":                false,
		"log_dir":              constants.DefaultConfigDir,
		"default_advance_days": constants.DefaultAdvanceDays,
		"default_due_time":     constants.DefaultDueTime,
	}
}

func NewDefaultProvider() *confmap.Confmap {
	return confmap.Provider(DefaultConfig(), ".")
}
