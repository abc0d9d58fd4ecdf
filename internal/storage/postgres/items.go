package postgres

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

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func timePtr(n sql.NullTime) *time.Time {
	if !n.Valid {
		return nil
	}
	t := n.Time
	return &t
}

func scanItem(row scanner) (models.Item, error) {
	var item models.Item
	var kind string
	var expiry sql.NullTime
	var details string

	if err := row.Scan(
		&item.ID, &kind, &item.Name, &item.Icon, &item.Notes,
		&expiry, &details, &item.Archived, &item.CreatedAt, &item.UpdatedAt,
	); err != nil {
		return models.Item{}, err
	}
	item.Kind = models.ItemKind(kind)
	item.ExpiryDate = timePtr(expiry)
	if err := storage.DecodeDetails(details, &item.Details); err != nil {
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
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
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
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`,
		item.ID, string(item.Kind), item.Name, item.Icon, item.Notes,
		nullTime(item.ExpiryDate), details, item.Archived, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert item: %w", err)
	}
	return nil
}

func (s *Store) GetItem(id string) (models.Item, error) {
	item, err := scanItem(s.db.QueryRow(`SELECT `+itemColumns+` FROM items WHERE id = $1`, id))
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
		query += ` WHERE NOT archived`
	}
	return s.queryItems(query + ` ORDER BY lower(name), id`)
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
		WHERE name ILIKE $1 OR notes ILIKE $1 OR details ILIKE $1
		ORDER BY lower(name), id
	`, pattern)
	if err != nil {
		return nil, err
	}
	return storage.MatchingItems(items, query), nil
}

func (s *Store) UpdateItem(item models.Item) error {
	if err := item.Validate(); err != nil {
		return err
	}

	details, err := storage.EncodeDetails(item.Details)
	if err != nil {
		return err
	}

	result, err := s.db.Exec(`
		UPDATE items SET
			kind = $1, name = $2, icon = $3, notes = $4, expiry_date = $5, details = $6, archived = $7, updated_at = $8
		WHERE id = $9
	`,
		string(item.Kind), item.Name, item.Icon, item.Notes,
		nullTime(item.ExpiryDate), details, item.Archived, time.Now(), item.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}
	return requireRow(result, "item", item.ID)
}

func (s *Store) ArchiveItem(id string) error {
	result, err := s.db.Exec(`UPDATE items SET archived = TRUE, updated_at = $1 WHERE id = $2`, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to archive item: %w", err)
	}
	return requireRow(result, "item", id)
}

// DeleteItem relies on ON DELETE CASCADE for reminders and their logs.
func (s *Store) DeleteItem(id string) error {
	result, err := s.db.Exec(`DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	return requireRow(result, "item", id)
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
