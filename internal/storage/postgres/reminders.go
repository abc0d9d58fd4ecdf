package postgres

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
	var kind, unit string
	var due, start, next sql.NullTime

	if err := row.Scan(
		&r.ID, &r.ItemID, &kind, &r.Title, &r.Description, &due,
		&r.RecurrenceInterval, &unit, &start, &next,
		&r.AdvanceDays, &r.Active, &r.Version, &r.CreatedAt, &r.UpdatedAt,
	); err != nil {
		return models.Reminder{}, err
	}
	r.Kind = models.ReminderKind(kind)
	r.RecurrenceUnit = models.RecurrenceUnit(unit)
	r.DueDate = timePtr(due)
	r.StartDate = timePtr(start)
	r.NextDueDate = timePtr(next)
	return r, nil
}

// getReminder reads one reminder; forUpdate locks the row until the transaction ends.
func getReminder(q querier, id string, forUpdate bool) (models.Reminder, error) {
	query := `SELECT ` + reminderColumns + ` FROM reminders WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	r, err := scanReminder(q.QueryRow(query, id))
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
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`,
		r.ID, r.ItemID, string(r.Kind), r.Title, r.Description, nullTime(r.DueDate),
		r.RecurrenceInterval, string(r.RecurrenceUnit), nullTime(r.StartDate), nullTime(r.NextDueDate),
		r.AdvanceDays, r.Active, r.Version, r.CreatedAt, r.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert reminder: %w", err)
	}
	return nil
}

func (s *Store) GetReminder(id string) (models.Reminder, error) {
	return getReminder(s.db, id, false)
}

func (s *Store) GetAllReminders() ([]models.Reminder, error) {
	return s.queryReminders(`SELECT ` + reminderColumns + ` FROM reminders ORDER BY created_at, id`)
}

func (s *Store) GetActiveReminders() ([]models.Reminder, error) {
	return s.queryReminders(`SELECT ` + reminderColumns + ` FROM reminders WHERE active ORDER BY created_at, id`)
}

func (s *Store) GetRemindersForItem(itemID string) ([]models.Reminder, error) {
	return s.queryReminders(`SELECT `+reminderColumns+` FROM reminders WHERE item_id = $1 ORDER BY created_at, id`, itemID)
}

func writeReminder(q querier, r models.Reminder) error {
	result, err := q.Exec(`
		UPDATE reminders SET
			item_id = $1, kind = $2, title = $3, description = $4, due_date = $5,
			recurrence_interval = $6, recurrence_unit = $7, start_date = $8, next_due_date = $9,
			advance_days = $10, active = $11, updated_at = $12, version = version + 1
		WHERE id = $13 AND version = $14
	`,
		r.ItemID, string(r.Kind), r.Title, r.Description, nullTime(r.DueDate),
		r.RecurrenceInterval, string(r.RecurrenceUnit), nullTime(r.StartDate), nullTime(r.NextDueDate),
		r.AdvanceDays, r.Active, r.UpdatedAt,
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
		if _, err := getReminder(q, r.ID, false); err != nil {
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

// DeleteReminder relies on ON DELETE CASCADE for the reminder's logs.
func (s *Store) DeleteReminder(id string) error {
	result, err := s.db.Exec(`DELETE FROM reminders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete reminder: %w", err)
	}
	return requireRow(result, "reminder", id)
}

func (s *Store) CompleteReminder(id string, at time.Time, notes string, c storage.Completer) (models.Reminder, models.ReminderLog, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return models.Reminder{}, models.ReminderLog{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	current, err := getReminder(tx, id, true)
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
