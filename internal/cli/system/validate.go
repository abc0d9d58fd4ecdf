package system

import (
	"fmt"
	"strings"

	"github.com/julianstephens/lifestock/internal/cli"
	"github.com/julianstephens/lifestock/internal/validation"
)

type ValidateCmd struct {
	Fix bool `help:"Automatically repair conflicts that have an unambiguous fix."`
}

func (c *ValidateCmd) Run(ctx *cli.Context) error {
	items, err := ctx.Store.GetAllItems(true)
	if err != nil {
		return fmt.Errorf("failed to get items: %w", err)
	}
	reminders, err := ctx.Store.GetAllReminders()
	if err != nil {
		return fmt.Errorf("failed to get reminders: %w", err)
	}

	result := validation.New(validation.WithLocation(ctx.Location())).Validate(items, reminders)
	ctx.Println(strings.TrimRight(result.FormatReport(), "\n"))
	if !result.HasConflicts() {
		return nil
	}

	if !c.Fix {
		ctx.Println("\nRun with --fix to repair what can be repaired automatically.")
		return fmt.Errorf("%d conflict(s) found", len(result.Conflicts))
	}

	actions := validation.AutoFix(result.Conflicts, reminders, ctx.Store.UpdateReminder)
	if len(actions) == 0 {
		ctx.Println("\nNo conflicts could be fixed automatically.")
		return fmt.Errorf("%d conflict(s) need manual attention", len(result.Conflicts))
	}

	ctx.Println("\nApplied fixes:")
	for _, action := range actions {
		ctx.Printf("  - %s\n", action.Action)
	}

	// Re-check so the exit status reflects what is left
	reminders, err = ctx.Store.GetAllReminders()
	if err != nil {
		return fmt.Errorf("failed to get reminders: %w", err)
	}
	remaining := validation.New(validation.WithLocation(ctx.Location())).Validate(items, reminders)
	if remaining.HasConflicts() {
		return fmt.Errorf("%d conflict(s) need manual attention", len(remaining.Conflicts))
	}
	ctx.Println("\nAll conflicts resolved.")
	return nil
}
