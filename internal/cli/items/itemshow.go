package items

import (
	"fmt"

	"github.com/julianstephens/lifestock/internal/cli"
)

type ItemShowCmd struct {
	ID   string `arg:"" help:"Item ID."`
	Logs int    `help:"Number of recent completions to show." default:"5"`
}

func (c *ItemShowCmd) Run(ctx *cli.Context) error {
	item, err := ctx.Store.GetItem(c.ID)
	if err != nil {
		return fmt.Errorf("failed to find item with ID %s: %w", c.ID, err)
	}

	ctx.Println(itemLine(ctx, item))
	ctx.Printf("  ID: %s\n", item.ID)
	for _, line := range detailLines(ctx, item) {
		ctx.Printf("  %s\n", line)
	}
	if item.Notes != "" {
		ctx.Printf("  Notes: %s\n", item.Notes)
	}

	reminders, err := ctx.Store.GetRemindersForItem(item.ID)
	if err != nil {
		return fmt.Errorf("failed to get reminders: %w", err)
	}
	now := ctx.Now()
	if len(reminders) == 0 {
		ctx.Println("\nNo reminders")
	} else {
		ctx.Println("\nReminders:")
		for _, r := range reminders {
			status := ctx.Scheduler.StatusText(r, now)
			if !r.Active {
				status = "inactive"
			}
			ctx.Printf("  %s - %s, %s (ID: %s)\n", r.Title, r.FormatRecurrence(ctx.Location()), status, r.ID)
		}
	}

	logs, err := ctx.Store.GetLogsForItem(item.ID)
	if err != nil {
		return fmt.Errorf("failed to get logs: %w", err)
	}
	if len(logs) > 0 && c.Logs > 0 {
		titles := make(map[string]string, len(reminders))
		for _, r := range reminders {
			titles[r.ID] = r.Title
		}
		ctx.Println("\nRecent completions:")
		for i, l := range logs {
			if i == c.Logs {
				ctx.Printf("  ... %d more\n", len(logs)-c.Logs)
				break
			}
			line := fmt.Sprintf("  %s  %s", ctx.FormatInstant(l.CompletedAt), titles[l.ReminderID])
			if l.Notes != "" {
				line += " - " + l.Notes
			}
			ctx.Println(line)
		}
	}
	return nil
}
