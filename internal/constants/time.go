package constants

const (
	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// DateTimeFormat combines DateFormat and TimeFormat for due instants entered on the CLI
	DateTimeFormat = "2006-01-02 15:04"

	// MonthFormat selects a calendar month (YYYY-MM)
	MonthFormat = "2006-01"

	// DefaultDueTime is the time of day given to a bare YYYY-MM-DD due date
	DefaultDueTime = "09:00"
)
