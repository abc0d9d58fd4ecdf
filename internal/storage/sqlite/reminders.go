package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/lifestock/internal/models"
	"github.com/julianstephens/lifestock/internal/storage"
)

const reminderColumns = `id, item_id, kind, title, description, due_date,
	recurrence_interval, recurrence_unit, start_date, next_due_date,
	advance_days, active, version, created_at, updated_at`

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	Exec(query string, args ...any) (sql.Result, error)
	QueryRow(query string, args ...any) *sql.Row
}

func scanReminder(row scanner) (models.Reminder, error) {
	var r models.Reminder
	var kind, unit, createdAt, updatedAt string
	var due, start, next sql.NullString

	if err := row.Scan(
		&r.ID, &r.ItemID, &kind, &r.Title, &r.Description, &due,
		&r.RecurrenceInterval, &unit, &start, &next,
		&r.AdvanceDays, &r.Active, &r.Version, &createdAt, &updatedAt,
	); err != nil {
		return models.Reminder{}, err
	}
	r.Kind = models.ReminderKind(kind)
	r.RecurrenceUnit = models.RecurrenceUnit(unit)

	var err error
	if r.DueDate, err = parseTimePtr("due_date", due); err != nil {
		return models.Reminder{}, err
	}
	if r.StartDate, err = parseTimePtr("start_date", start); err != nil {
		return models.Reminder{}, err
	}
	if r.NextDueDate, err = parseTimePtr("next_due_date", next); err != nil {
		return models.Reminder{}, err
	}
	if r.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return models.Reminder{}, err
	}
	if r.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
		return models.Reminder{}, err
	}
	return r, nil
}

func getReminder(q querier, id string) (models.Reminder, error) {
	r, err := scanReminder(q.QueryRow(`SELECT `+reminderColumns+` FROM reminders WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Reminder{}, fmt.Errorf("reminder %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return models.Reminder{}, fmt.Errorf("failed to get reminder: %w", err)
	}
	return r, nil
}

func (s *Store) queryReminders(query string, args ...any) ([]models.Reminder, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query reminders: %w", err)
	}
	defer rows.Close()

	var reminders []models.Reminder
	for rows.Next() {
		r, err := scanReminder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reminder: %w", err)
		}
		reminders = append(reminders, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reminders: %w", err)
	}
	return reminders, nil
}

func (s *Store) AddReminder(r models.Reminder) error {
	r.Normalize()
	if err := r.ValidateNew(); err != nil {
		return err
	}
	if _, err := s.GetItem(r.ItemID); err != nil {
		return err
	}

	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	if r.UpdatedAt.IsZero() {
		r.UpdatedAt = r.CreatedAt
	}
	if r.Version < 1 {
		r.Version = 1
	}

	_, err := s.db.Exec(`
		INSERT INTO reminders (`+reminderColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		r.ID, r.ItemID, string(r.Kind), r.Title, r.Description, formatTimePtr(r.DueDate),
		r.RecurrenceInterval, string(r.RecurrenceUnit), formatTimePtr(r.StartDate), formatTimePtr(r.NextDueDate),
		r.AdvanceDays, r.Active, r.Version, formatTime(r.CreatedAt), formatTime(r.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert reminder: %w", err)
	}
	return nil
}

func (s *Store) GetReminder(id string) (models.Reminder, error) {
	return getReminder(s.db, id)
}

func (s *Store) GetAllReminders() ([]models.Reminder, error) {
	return s.queryReminders(`SELECT ` + reminderColumns + ` FROM reminders ORDER BY created_at, id`)
}

func (s *Store) GetActiveReminders() ([]models.Reminder, error) {
	return s.queryReminders(`SELECT ` + reminderColumns + ` FROM reminders WHERE active = 1 ORDER BY created_at, id`)
}

func (s *Store) GetRemindersForItem(itemID string) ([]models.Reminder, error) {
	return s.queryReminders(`SELECT `+reminderColumns+` FROM reminders WHERE item_id = ? ORDER BY created_at, id`, itemID)
}

// writeReminder performs the version-checked update shared by UpdateReminder and CompleteReminder.
func writeReminder(q querier, r models.Reminder) error {
	result, err := q.Exec(`
		UPDATE reminders SET
			item_id = ?, kind = ?, title = ?, description = ?, due_date = ?,
			recurrence_interval = ?, recurrence_unit = ?, start_date = ?, next_due_date = ?,
			advance_days = ?, active = ?, updated_at = ?, version = version + 1
		WHERE id = ? AND version = ?
	`,
		r.ItemID, string(r.Kind), r.Title, r.Description, formatTimePtr(r.DueDate),
		r.RecurrenceInterval, string(r.RecurrenceUnit), formatTimePtr(r.StartDate), formatTimePtr(r.NextDueDate),
		r.AdvanceDays, r.Active, formatTime(r.UpdatedAt),
		r.ID, r.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to update reminder: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		if _, err := getReminder(q, r.ID); err != nil {
			return err
		}
		return fmt.Errorf("reminder %s at version %d: %w", r.ID, r.Version, storage.ErrConflict)
	}
	return nil
}

func (s *Store) UpdateReminder(r models.Reminder) error {
	if err := r.Validate(); err != nil {
		return err
	}
	r.UpdatedAt = time.Now()
	return writeReminder(s.db, r)
}

func (s *Store) DeleteReminder(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM reminder_logs WHERE reminder_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete reminder logs: %w", err)
	}
	result, err := tx.Exec(`DELETE FROM reminders WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete reminder: %w", err)
	}
	if err := requireRow(result, "reminder", id); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) CompleteReminder(id string, at time.Time, notes string, c storage.Completer) (models.Reminder, models.ReminderLog, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return models.Reminder{}, models.ReminderLog{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	current, err := getReminder(tx, id)
	if err != nil {
		return models.Reminder{}, models.ReminderLog{}, err
	}

	updated, entry, err := c.Complete(current, at, notes)
	if err != nil {
		return models.Reminder{}, models.ReminderLog{}, fmt.Errorf("complete reminder %s: %w", id, err)
	}

	if err := writeReminder(tx, updated); err != nil {
		return models.Reminder{}, models.ReminderLog{}, err
	}
	if err := insertLog(tx, entry); err != nil {
		return models.Reminder{}, models.ReminderLog{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.Reminder{}, models.ReminderLog{}, fmt.Errorf("failed to commit completion: %w", err)
	}

	updated.Version = current.Version + 1
	return updated, entry, nil
}
