package postgres

import (
	"fmt"

	"github.com/julianstephens/lifestock/internal/models"
)

func insertLog(q querier, l models.ReminderLog) error {
	createdAt := l.CreatedAt
	if createdAt.IsZero() {
		createdAt = l.CompletedAt
	}
	_, err := q.Exec(`
		INSERT INTO reminder_logs (id, reminder_id, completed_at, notes, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, l.ID, l.ReminderID, l.CompletedAt, l.Notes, createdAt)
	if err != nil {
		return fmt.Errorf("failed to insert reminder log: %w", err)
	}
	return nil
}

func (s *Store) AddReminderLog(l models.ReminderLog) error {
	if l.ID == "" || l.ReminderID == "" {
		return fmt.Errorf("reminder log requires an id and a reminder id")
	}
	if _, err := getReminder(s.db, l.ReminderID, false); err != nil {
		return err
	}
	return insertLog(s.db, l)
}

func (s *Store) queryLogs(query string, args ...any) ([]models.ReminderLog, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query reminder logs: %w", err)
	}
	defer rows.Close()

	var logs []models.ReminderLog
	for rows.Next() {
		var l models.ReminderLog
		if err := rows.Scan(&l.ID, &l.ReminderID, &l.CompletedAt, &l.Notes, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan reminder log: %w", err)
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reminder logs: %w", err)
	}
	return logs, nil
}

func (s *Store) GetLogsForReminder(reminderID string) ([]models.ReminderLog, error) {
	return s.queryLogs(`
		SELECT id, reminder_id, completed_at, notes, created_at
		FROM reminder_logs
		WHERE reminder_id = $1
		ORDER BY completed_at DESC, id DESC
	`, reminderID)
}

func (s *Store) GetLogsForItem(itemID string) ([]models.ReminderLog, error) {
	return s.queryLogs(`
		SELECT l.id, l.reminder_id, l.completed_at, l.notes, l.created_at
		FROM reminder_logs l
		JOIN reminders r ON r.id = l.reminder_id
		WHERE r.item_id = $1
		ORDER BY l.completed_at DESC, l.id DESC
	`, itemID)
}
