package constants

// ReminderKind represents whether a reminder fires once or repeats
type ReminderKind string

// RecurrenceUnit represents the calendar unit a recurring reminder advances by
type RecurrenceUnit string

// ItemKind represents the structure of a tracked item
type ItemKind string

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	AppName            = "lifestock"
	DefaultKeyringUser = "database-connection"
	DefaultConfigDir   = "~/.config/lifestock"
	DefaultConfigFile  = "~/.config/lifestock/config.yaml"
	DefaultDBPath      = "~/.config/lifestock/lifestock.db"
	EnvPrefix          = "LIFESTOCK_"
	EnvDBConnection    = "LIFESTOCK_DB_CONNECTION"
	DatabaseKeyring    = "keyring"
	Version            = "v0.3.0"

	// Reminder kinds
	ReminderOneTime   ReminderKind = "one_time"
	ReminderRecurring ReminderKind = "recurring"

	// Recurrence units
	UnitDay   RecurrenceUnit = "day"
	UnitWeek  RecurrenceUnit = "week"
	UnitMonth RecurrenceUnit = "month"
	UnitYear  RecurrenceUnit = "year"

	// Item kinds
	ItemKindStock ItemKind = "stock"
	ItemKindCard  ItemKind = "card"
	ItemKindPhone ItemKind = "phone"

	// Conflict Types
	ConflictDuplicateReminderID ConflictType = "duplicate_reminder_id"
	ConflictMissingItem         ConflictType = "missing_item"
	ConflictMissingDueDate      ConflictType = "missing_due_date"
	ConflictInvalidRecurrence   ConflictType = "invalid_recurrence"
	ConflictNextDueBeforeStart  ConflictType = "next_due_before_start"
	ConflictNegativeAdvanceDays ConflictType = "negative_advance_days"
	ConflictArchivedItem        ConflictType = "active_on_archived_item"
)
