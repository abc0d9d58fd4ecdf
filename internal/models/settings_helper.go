package models

import (
	"fmt"

	"github.com/julianstephens/lifestock/internal/constants"
)

// MapToSettings converts a map of key-value pairs to a Settings struct.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := Settings{}

	for key, value := range data {
		switch key {
		case constants.SettingTimezone:
			settings.Timezone = value
		case constants.SettingDefaultAdvanceDays:
			if _, err := fmt.Sscanf(value, "%d", &settings.DefaultAdvanceDays); err != nil {
				return Settings{}, fmt.Errorf("parsing default_advance_days: %w", err)
			}
		}
	}
	return settings, nil
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingTimezone:           settings.Timezone,
		constants.SettingDefaultAdvanceDays: fmt.Sprintf("%d", settings.DefaultAdvanceDays),
	}
}

// ApplyDefaultSettings applies default values to missing settings.
func ApplyDefaultSettings(settings *Settings) {
	if settings.Timezone == "" {
		settings.Timezone = constants.DefaultTimezone
	}
	if settings.DefaultAdvanceDays == 0 {
		settings.DefaultAdvanceDays = constants.DefaultAdvanceDays
	}
}
