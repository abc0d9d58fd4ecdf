package reminders

import (
	"fmt"

	"github.com/julianstephens/lifestock/internal/cli"
	"github.com/julianstephens/lifestock/internal/logger"
)

type ReminderCompleteCmd struct {
	ID    string `arg:"" help:"Reminder ID to complete."`
	Notes string `short:"n" help:"Notes stored with the completion."`
	At    string `help:"When it was done (default: now)."`
	Yes   bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *ReminderCompleteCmd) Run(ctx *cli.Context) error {
	r, err := ctx.Store.GetReminder(c.ID)
	if err != nil {
		return fmt.Errorf("failed to find reminder with ID %s: %w", c.ID, err)
	}
	if !r.Active {
		return fmt.Errorf("reminder %q is inactive", r.Title)
	}

	at := ctx.Now()
	if c.At != "" {
		if at, err = ctx.ParseInstant(c.At); err != nil {
			return fmt.Errorf("invalid --at: %w", err)
		}
	}

	if !c.Yes {
		ok, err := ctx.Ask(fmt.Sprintf("Mark %q (%s) as done?", r.Title, ctx.Scheduler.StatusText(r, ctx.Now())))
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Cancelled.")
			return nil
		}
	}

	updated, entry, err := ctx.Store.CompleteReminder(r.ID, at, c.Notes, ctx.Scheduler)
	if err != nil {
		return fmt.Errorf("failed to complete reminder: %w", err)
	}
	logger.Info("Reminder completed", "reminder", updated.ID, "log", entry.ID, "version", updated.Version)

	if updated.IsRecurring() {
		next, _ := ctx.Scheduler.TargetInstant(updated)
		ctx.Printf("Completed %s. Next due %s (%s)\n",
			updated.Title, ctx.FormatInstant(next), ctx.Scheduler.StatusText(updated, ctx.Now()))
	} else {
		ctx.Printf("Completed %s.\n", updated.Title)
	}
	return nil
}
