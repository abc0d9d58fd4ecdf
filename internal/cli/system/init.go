package system

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/lifestock/internal/cli"
	"github.com/julianstephens/lifestock/internal/constants"
	"github.com/julianstephens/lifestock/internal/storage"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting existing database before initialization."`
	Source string `help:"Source database path or connection string to copy data from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		dbPath := ctx.Store.GetConfigPath()
		// Don't delete if it's the source
		if c.Source != "" {
			if abs, err := filepath.Abs(dbPath); err == nil {
				dbPath = abs
			}
			if absSource, err := filepath.Abs(c.Source); err == nil && absSource == dbPath {
				return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
			}
		}
		if _, err := os.Stat(dbPath); err == nil {
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			ctx.Printf("Deleted existing database at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized lifestock storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		ctx.Printf("Copying data from: %s\n", c.Source)
		if err := c.copyData(ctx); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		ctx.Println("Migration completed successfully!")
		return nil
	}

	return seedSettings(ctx)
}

func (c *InitCmd) copyData(ctx *cli.Context) error {
	profile := ""
	if ctx.Config != nil {
		profile = ctx.Config.KeyringProfile
	}
	source, err := cli.OpenStore(c.Source, profile)
	if err != nil {
		return err
	}
	if err := source.Load(); err != nil {
		return fmt.Errorf("failed to load source database: %w", err)
	}
	defer source.Close()

	snap, err := storage.Export(source, ctx.Now())
	if err != nil {
		return err
	}
	if err := storage.Import(ctx.Store, snap); err != nil {
		return err
	}

	logs := 0
	for _, entries := range snap.Logs {
		logs += len(entries)
	}
	ctx.Printf("  Copied %d items, %d reminders, %d log entries\n", len(snap.Items), len(snap.Reminders), logs)
	return nil
}

// seedSettings copies config-file preferences into settings that are still at
// their built-in defaults, so re-running init never clobbers user changes.
func seedSettings(ctx *cli.Context) error {
	if ctx.Config == nil {
		return nil
	}
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	changed := false
	if settings.Timezone == constants.DefaultTimezone && ctx.Config.Timezone != "" && ctx.Config.Timezone != settings.Timezone {
		settings.Timezone = ctx.Config.Timezone
		changed = true
	}
	if settings.DefaultAdvanceDays == constants.DefaultAdvanceDays && ctx.Config.DefaultAdvanceDays != settings.DefaultAdvanceDays {
		settings.DefaultAdvanceDays = ctx.Config.DefaultAdvanceDays
		changed = true
	}
	if !changed {
		return nil
	}
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
