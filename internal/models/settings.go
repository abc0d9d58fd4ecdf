package models

// Settings represents application-wide settings
type Settings struct {
	Timezone           string `json:"timezone"`             // IANA timezone name (e.g. "Asia/Shanghai", or "Local" for system timezone)
	DefaultAdvanceDays int    `json:"default_advance_days"` // notice window applied to new reminders when none is given
}
