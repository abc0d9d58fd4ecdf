package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/lifestock/internal/models"
	"github.com/julianstephens/lifestock/internal/storage"
)

const itemColumns = `id, kind, name, icon, notes, expiry_date, details, archived, created_at, updated_at`

func scanItem(row scanner) (models.Item, error) {
	var item models.Item
	var kind, createdAt, updatedAt string
	var expiry sql.NullString
	var details string

	if err := row.Scan(
		&item.ID, &kind, &item.Name, &item.Icon, &item.Notes,
		&expiry, &details, &item.Archived, &createdAt, &updatedAt,
	); err != nil {
		return models.Item{}, err
	}
	item.Kind = models.ItemKind(kind)
	if err := storage.DecodeDetails(details, &item.Details); err != nil {
		return models.Item{}, err
	}

	var err error
	if item.ExpiryDate, err = parseTimePtr("expiry_date", expiry); err != nil {
		return models.Item{}, err
	}
	if item.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return models.Item{}, err
	}
	if item.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
		return models.Item{}, err
	}
	return item, nil
}

func (s *Store) queryItems(query string, args ...any) ([]models.Item, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	var items []models.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating items: %w", err)
	}
	return items, nil
}

func (s *Store) AddItem(item models.Item) error {
	if err := item.Validate(); err != nil {
		return err
	}
	now := time.Now()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	if item.UpdatedAt.IsZero() {
		item.UpdatedAt = item.CreatedAt
	}

	details, err := storage.EncodeDetails(item.Details)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(`
		INSERT INTO items (`+itemColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		item.ID, string(item.Kind), item.Name, item.Icon, item.Notes,
		formatTimePtr(item.ExpiryDate), details, item.Archived, formatTime(item.CreatedAt), formatTime(item.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert item: %w", err)
	}
	return nil
}

func (s *Store) GetItem(id string) (models.Item, error) {
	item, err := scanItem(s.db.QueryRow(`SELECT `+itemColumns+` FROM items WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Item{}, fmt.Errorf("item %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return models.Item{}, fmt.Errorf("failed to get item: %w", err)
	}
	return item, nil
}

func (s *Store) GetAllItems(includeArchived bool) ([]models.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items`
	if !includeArchived {
		query += ` WHERE archived = 0`
	}
	return s.queryItems(query + ` ORDER BY name COLLATE NOCASE, id`)
}

// SearchItems matches name, notes or free-text details case-insensitively.
// An empty query matches nothing.
func (s *Store) SearchItems(query string) ([]models.Item, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	pattern := "%" + query + "%"
	items, err := s.queryItems(`
		SELECT `+itemColumns+` FROM items
		WHERE name LIKE ? OR notes LIKE ? OR details LIKE ?
		ORDER BY name COLLATE NOCASE, id
	`, pattern, pattern, pattern)
	if err != nil {
		return nil, err
	}
	return storage.MatchingItems(items, query), nil
}

func (s *Store) UpdateItem(item models.Item) error {
	if err := item.Validate(); err != nil {
		return err
	}
	item.UpdatedAt = time.Now()

	details, err := storage.EncodeDetails(item.Details)
	if err != nil {
		return err
	}

	result, err := s.db.Exec(`
		UPDATE items SET
			kind = ?, name = ?, icon = ?, notes = ?, expiry_date = ?, details = ?, archived = ?, updated_at = ?
		WHERE id = ?
	`,
		string(item.Kind), item.Name, item.Icon, item.Notes,
		formatTimePtr(item.ExpiryDate), details, item.Archived, formatTime(item.UpdatedAt), item.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}
	return requireRow(result, "item", item.ID)
}

func (s *Store) ArchiveItem(id string) error {
	result, err := s.db.Exec(`UPDATE items SET archived = 1, updated_at = ? WHERE id = ?`, formatTime(time.Now()), id)
	if err != nil {
		return fmt.Errorf("failed to archive item: %w", err)
	}
	return requireRow(result, "item", id)
}

func (s *Store) DeleteItem(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		DELETE FROM reminder_logs
		WHERE reminder_id IN (SELECT id FROM reminders WHERE item_id = ?)
	`, id); err != nil {
		return fmt.Errorf("failed to delete item logs: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM reminders WHERE item_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete item reminders: %w", err)
	}
	result, err := tx.Exec(`DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	if err := requireRow(result, "item", id); err != nil {
		return err
	}
	return tx.Commit()
}

func requireRow(result sql.Result, kind, id string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, storage.ErrNotFound)
	}
	return nil
}
