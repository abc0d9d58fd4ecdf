package constants

const (
	// Settings keys
	SettingTimezone           = "timezone"
	SettingDefaultAdvanceDays = "default_advance_days"

	// Default Settings Values
	DefaultTimezone    = "Local" // Use system local timezone by default
	DefaultAdvanceDays = 3
	DefaultLogDirName  = "logs"
)
