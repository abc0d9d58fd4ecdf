package reminders

import (
	"fmt"

	"github.com/julianstephens/lifestock/internal/cli"
	"github.com/julianstephens/lifestock/internal/models"
)

type ReminderListCmd struct {
	Item string `short:"i" help:"Only show reminders of this item ID."`
	All  bool   `help:"Include inactive reminders."`
}

func (c *ReminderListCmd) Run(ctx *cli.Context) error {
	var (
		reminders []models.Reminder
		err       error
	)
	switch {
	case c.Item != "":
		reminders, err = ctx.Store.GetRemindersForItem(c.Item)
	case c.All:
		reminders, err = ctx.Store.GetAllReminders()
	default:
		reminders, err = ctx.Store.GetActiveReminders()
	}
	if err != nil {
		return fmt.Errorf("failed to get reminders: %w", err)
	}

	names, err := itemNames(ctx)
	if err != nil {
		return err
	}

	now := ctx.Now()
	shown := 0
	for _, r := range reminders {
		if !c.All && !r.Active {
			continue
		}
		if shown == 0 {
			ctx.Println("Reminders:")
		}
		shown++

		status := ctx.Scheduler.StatusText(r, now)
		if !r.Active {
			status = "inactive"
		}
		ctx.Printf("  [%s] %s: %s - %s, %s (ID: %s)\n",
			r.Kind, names[r.ItemID], r.Title, r.FormatRecurrence(ctx.Location()), status, r.ID)
	}
	if shown == 0 {
		ctx.Println("No reminders found")
	}
	return nil
}

// itemNames maps item IDs to display names, archived items included.
func itemNames(ctx *cli.Context) (map[string]string, error) {
	items, err := ctx.Store.GetAllItems(true)
	if err != nil {
		return nil, fmt.Errorf("failed to get items: %w", err)
	}
	names := make(map[string]string, len(items))
	for _, item := range items {
		names[item.ID] = item.Name
	}
	return names, nil
}
