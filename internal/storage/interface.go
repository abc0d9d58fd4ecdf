package storage

import (
	"errors"
	"time"

	"github.com/julianstephens/lifestock/internal/models"
)

type Settings = models.Settings

var (
	// ErrNotFound is returned when the requested row does not exist
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a reminder changed between read and write
	ErrConflict = errors.New("reminder was modified concurrently")
	// ErrNotInitialized is returned by Load when the store has never been initialized
	ErrNotInitialized = errors.New("storage not initialized")
)

// Completer computes the post-completion state of a reminder.
// *scheduler.Scheduler satisfies it.
type Completer interface {
	Complete(r models.Reminder, at time.Time, notes string) (models.Reminder, models.ReminderLog, error)
}

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error
	// Migrate applies pending schema migrations and returns how many ran.
	Migrate(logFn func(string)) (int, error)
	// SchemaVersion reports the applied and the newest available migration.
	SchemaVersion() (current, latest int, err error)

	// Settings
	GetSettings() (Settings, error)
	SaveSettings(Settings) error

	// Items
	AddItem(models.Item) error
	GetItem(id string) (models.Item, error)
	GetAllItems(includeArchived bool) ([]models.Item, error)
	UpdateItem(models.Item) error
	ArchiveItem(id string) error
	// DeleteItem removes the item together with its reminders and their logs.
	DeleteItem(id string) error
	SearchItems(query string) ([]models.Item, error)

	// Reminders
	AddReminder(models.Reminder) error
	GetReminder(id string) (models.Reminder, error)
	GetAllReminders() ([]models.Reminder, error)
	GetActiveReminders() ([]models.Reminder, error)
	GetRemindersForItem(itemID string) ([]models.Reminder, error)
	// UpdateReminder writes r if its Version still matches the stored row,
	// returning ErrConflict otherwise.
	UpdateReminder(r models.Reminder) error
	DeleteReminder(id string) error

	// Logs, newest first
	// AddReminderLog appends a log entry to an existing reminder.
	AddReminderLog(models.ReminderLog) error
	GetLogsForReminder(reminderID string) ([]models.ReminderLog, error)
	GetLogsForItem(itemID string) ([]models.ReminderLog, error)

	// CompleteReminder reads the reminder, applies c.Complete and persists the
	// updated reminder and the new log in one transaction. Either both writes
	// land or neither does.
	CompleteReminder(id string, at time.Time, notes string, c Completer) (models.Reminder, models.ReminderLog, error)

	// Utils
	GetConfigPath() string
}
