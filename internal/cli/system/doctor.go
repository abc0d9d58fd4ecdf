package system

import (
	"fmt"
	"time"

	"github.com/julianstephens/lifestock/internal/cli"
	"github.com/julianstephens/lifestock/internal/keyring"
	"github.com/julianstephens/lifestock/internal/storage/sqlite"
	"github.com/julianstephens/lifestock/internal/utils"
	"github.com/julianstephens/lifestock/internal/validation"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	dbReachable := false

	// Check 1: DB reachable
	if err := checkDBReachable(ctx); err != nil {
		ctx.Printf("❌ Database reachable: FAIL\n")
		ctx.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		ctx.Printf("✓ Database reachable: OK\n")
		dbReachable = true
	}

	dbChecks := []struct {
		name string
		fn   func(*cli.Context) error
	}{
		{"Schema version", checkSchemaVersion},
		{"Data validation", checkValidation},
		{"Settings", checkSettings},
		{"Log integrity", checkLogIntegrity},
	}
	for _, check := range dbChecks {
		if !dbReachable {
			ctx.Printf("⊘ %s: SKIPPED (database not reachable)\n", check.name)
			continue
		}
		if err := check.fn(ctx); err != nil {
			ctx.Printf("❌ %s: FAIL\n", check.name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			ctx.Printf("✓ %s: OK\n", check.name)
		}
	}

	// Unscheduled reminders are a warning only
	if dbReachable {
		if err := checkUnscheduled(ctx); err != nil {
			ctx.Printf("⚠ Scheduled reminders: WARNING\n")
			ctx.Printf("   %v\n", err)
		} else {
			ctx.Printf("✓ Scheduled reminders: OK\n")
		}
	}

	if err := checkClockTimezone(ctx); err != nil {
		ctx.Printf("❌ Clock/timezone: FAIL\n")
		ctx.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		ctx.Printf("✓ Clock/timezone: OK\n")
	}

	if ctx.Config != nil && ctx.Config.UsesKeyring() {
		if keyring.IsAvailable() {
			ctx.Printf("✓ Keyring: OK\n")
		} else {
			ctx.Printf("❌ Keyring: FAIL\n")
			ctx.Printf("   Error: %v\n", keyring.ErrKeyringUnavailable)
			hasError = true
		}
	} else {
		ctx.Printf("⊘ Keyring: SKIPPED (not configured)\n")
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	ctx.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	// For SQLite, also try a simple query
	if store, ok := ctx.Store.(*sqlite.Store); ok {
		db := store.GetDB()
		if db == nil {
			return fmt.Errorf("database connection is nil")
		}
		var result int
		if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	current, latest, err := ctx.Store.SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d (run 'lifestock migrate')", current, latest)
	}
	return nil
}

func checkValidation(ctx *cli.Context) error {
	items, err := ctx.Store.GetAllItems(true)
	if err != nil {
		return fmt.Errorf("failed to get items: %w", err)
	}
	reminders, err := ctx.Store.GetAllReminders()
	if err != nil {
		return fmt.Errorf("failed to get reminders: %w", err)
	}

	result := validation.New(validation.WithLocation(ctx.Location())).Validate(items, reminders)
	if result.HasConflicts() {
		return fmt.Errorf("%d conflict(s) found, run 'lifestock validate' for details", len(result.Conflicts))
	}
	return nil
}

func checkSettings(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if !utils.ValidateTimezone(settings.Timezone) {
		return fmt.Errorf("stored timezone %q is not a valid IANA name", settings.Timezone)
	}
	if settings.DefaultAdvanceDays < 0 {
		return fmt.Errorf("default advance days is negative: %d", settings.DefaultAdvanceDays)
	}
	return nil
}

func checkLogIntegrity(ctx *cli.Context) error {
	store, ok := ctx.Store.(*sqlite.Store)
	if !ok {
		return nil // PostgreSQL enforces the foreign key itself
	}

	var orphaned int
	err := store.GetDB().QueryRow(`
		SELECT COUNT(*)
		FROM reminder_logs l
		LEFT JOIN reminders r ON l.reminder_id = r.id
		WHERE r.id IS NULL
	`).Scan(&orphaned)
	if err != nil {
		return fmt.Errorf("failed to check orphaned reminder logs: %w", err)
	}
	if orphaned > 0 {
		return fmt.Errorf("found %d reminder logs referencing missing reminders", orphaned)
	}
	return nil
}

func checkUnscheduled(ctx *cli.Context) error {
	reminders, err := ctx.Store.GetActiveReminders()
	if err != nil {
		return fmt.Errorf("failed to get reminders: %w", err)
	}
	if n := len(ctx.Scheduler.Unscheduled(reminders)); n > 0 {
		return fmt.Errorf("%d active reminder(s) have no due date and will not appear in the timeline", n)
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := ctx.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}
