package reminders

import (
	"fmt"

	"github.com/julianstephens/lifestock/internal/cli"
	"github.com/julianstephens/lifestock/internal/models"
)

type ReminderShowCmd struct {
	ID string `arg:"" help:"Reminder ID."`
}

func (c *ReminderShowCmd) Run(ctx *cli.Context) error {
	r, err := ctx.Store.GetReminder(c.ID)
	if err != nil {
		return fmt.Errorf("failed to find reminder with ID %s: %w", c.ID, err)
	}
	item, err := ctx.Store.GetItem(r.ItemID)
	if err != nil {
		return fmt.Errorf("failed to find item for reminder: %w", err)
	}

	ctx.Printf("%s (%s)\n", r.Title, item.Name)
	ctx.Printf("  ID:           %s\n", r.ID)
	ctx.Printf("  Schedule:     %s\n", r.FormatRecurrence(ctx.Location()))
	if r.IsRecurring() && r.StartDate != nil {
		ctx.Printf("  Started:      %s\n", ctx.FormatInstant(*r.StartDate))
	}
	if target, ok := ctx.Scheduler.TargetInstant(r); ok {
		ctx.Printf("  Next due:     %s\n", ctx.FormatInstant(target))
	}
	ctx.Printf("  Status:       %s\n", statusLine(ctx, r))
	ctx.Printf("  Advance days: %d\n", r.AdvanceDays)
	if r.Description != "" {
		ctx.Printf("  Description:  %s\n", r.Description)
	}

	logs, err := ctx.Store.GetLogsForReminder(r.ID)
	if err != nil {
		return fmt.Errorf("failed to get logs: %w", err)
	}
	ctx.Printf("  Completions:  %d\n", len(logs))
	if len(logs) > 0 {
		ctx.Printf("  Last done:    %s\n", ctx.FormatInstant(logs[0].CompletedAt))
	}
	return nil
}

func statusLine(ctx *cli.Context, r models.Reminder) string {
	if !r.Active {
		return "inactive"
	}
	return ctx.Scheduler.StatusText(r, ctx.Now())
}

type ReminderLogsCmd struct {
	ID string `arg:"" help:"Reminder ID."`
}

func (c *ReminderLogsCmd) Run(ctx *cli.Context) error {
	r, err := ctx.Store.GetReminder(c.ID)
	if err != nil {
		return fmt.Errorf("failed to find reminder with ID %s: %w", c.ID, err)
	}
	logs, err := ctx.Store.GetLogsForReminder(r.ID)
	if err != nil {
		return fmt.Errorf("failed to get logs: %w", err)
	}
	if len(logs) == 0 {
		ctx.Printf("No completions recorded for %s\n", r.Title)
		return nil
	}

	ctx.Printf("Completions of %s:\n", r.Title)
	for _, l := range logs {
		line := "  " + ctx.FormatInstant(l.CompletedAt)
		if l.Notes != "" {
			line += " - " + l.Notes
		}
		ctx.Println(line)
	}
	return nil
}
