package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/julianstephens/lifestock/internal/models"
)

// SnapshotVersion is bumped whenever the snapshot layout changes.
const SnapshotVersion = 1

// Snapshot is a point-in-time JSON export of everything a Provider holds.
type Snapshot struct {
	Version    int                             `json:"version"`
	ExportedAt time.Time                       `json:"exported_at"`
	Settings   Settings                        `json:"settings"`
	Items      []models.Item                   `json:"items"`
	Reminders  []models.Reminder               `json:"reminders"`
	Logs       map[string][]models.ReminderLog `json:"logs"` // reminder id -> logs, newest first
}

// Export reads the full contents of p.
func Export(p Provider, now time.Time) (Snapshot, error) {
	settings, err := p.GetSettings()
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to read settings: %w", err)
	}
	items, err := p.GetAllItems(true)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to read items: %w", err)
	}
	reminders, err := p.GetAllReminders()
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to read reminders: %w", err)
	}

	logs := make(map[string][]models.ReminderLog)
	for _, r := range reminders {
		entries, err := p.GetLogsForReminder(r.ID)
		if err != nil {
			return Snapshot{}, fmt.Errorf("failed to read logs for reminder %s: %w", r.ID, err)
		}
		if len(entries) > 0 {
			logs[r.ID] = entries
		}
	}

	return Snapshot{
		Version:    SnapshotVersion,
		ExportedAt: now,
		Settings:   settings,
		Items:      items,
		Reminders:  reminders,
		Logs:       logs,
	}, nil
}

// Import loads snap into p, which is expected to be freshly initialized.
// Rows keep their IDs, timestamps and versions.
func Import(p Provider, snap Snapshot) error {
	settings := snap.Settings
	models.ApplyDefaultSettings(&settings)
	if err := p.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to import settings: %w", err)
	}
	for _, item := range snap.Items {
		if err := p.AddItem(item); err != nil {
			return fmt.Errorf("failed to import item %s: %w", item.ID, err)
		}
	}
	for _, r := range snap.Reminders {
		if err := p.AddReminder(r); err != nil {
			return fmt.Errorf("failed to import reminder %s: %w", r.ID, err)
		}
	}
	for reminderID, entries := range snap.Logs {
		for _, l := range entries {
			if l.ReminderID == "" {
				l.ReminderID = reminderID
			}
			if err := p.AddReminderLog(l); err != nil {
				return fmt.Errorf("failed to import log %s: %w", l.ID, err)
			}
		}
	}
	return nil
}

// WriteSnapshot writes snap as indented JSON, replacing path atomically.
func WriteSnapshot(path string, snap Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}
	return nil
}

// ReadSnapshot loads a snapshot written by WriteSnapshot.
func ReadSnapshot(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("failed to parse snapshot: %w", err)
	}
	if snap.Version > SnapshotVersion {
		return Snapshot{}, fmt.Errorf("snapshot version %d is newer than supported version %d", snap.Version, SnapshotVersion)
	}
	if snap.Logs == nil {
		snap.Logs = make(map[string][]models.ReminderLog)
	}
	return snap, nil
}
