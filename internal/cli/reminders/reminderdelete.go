package reminders

import (
	"fmt"

	"github.com/julianstephens/lifestock/internal/cli"
)

type ReminderDeleteCmd struct {
	ID  string `arg:"" help:"Reminder ID to delete."`
	Yes bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *ReminderDeleteCmd) Run(ctx *cli.Context) error {
	r, err := ctx.Store.GetReminder(c.ID)
	if err != nil {
		return fmt.Errorf("failed to find reminder with ID %s: %w", c.ID, err)
	}

	if !c.Yes {
		ok, err := ctx.Ask(fmt.Sprintf("Delete %q and its completion history?", r.Title))
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Cancelled.")
			return nil
		}
	}

	if err := ctx.Store.DeleteReminder(c.ID); err != nil {
		return fmt.Errorf("failed to delete reminder: %w", err)
	}

	ctx.Printf("Deleted reminder: %s (ID: %s)\n", r.Title, c.ID)
	return nil
}
