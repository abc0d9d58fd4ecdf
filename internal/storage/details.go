package storage

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/lifestock/internal/models"
)

// EncodeDetails serializes item details for the details column.
func EncodeDetails(d models.ItemDetails) (string, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return "", fmt.Errorf("failed to encode item details: %w", err)
	}
	return string(data), nil
}

// DecodeDetails parses the details column. An empty column yields zero details.
func DecodeDetails(s string, d *models.ItemDetails) error {
	*d = models.ItemDetails{}
	if s == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(s), d); err != nil {
		return fmt.Errorf("failed to decode item details: %w", err)
	}
	return nil
}

// MatchingItems drops rows a LIKE over the raw details column let through
// only because the query hit a field name.
func MatchingItems(items []models.Item, query string) []models.Item {
	var out []models.Item
	for _, item := range items {
		if item.Matches(query) {
			out = append(out, item)
		}
	}
	return out
}
