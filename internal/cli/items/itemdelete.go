package items

import (
	"fmt"

	"github.com/julianstephens/lifestock/internal/cli"
)

type ItemArchiveCmd struct {
	ID string `arg:"" help:"Item ID to archive."`
}

func (c *ItemArchiveCmd) Run(ctx *cli.Context) error {
	item, err := ctx.Store.GetItem(c.ID)
	if err != nil {
		return fmt.Errorf("failed to find item with ID %s: %w", c.ID, err)
	}
	if err := ctx.Store.ArchiveItem(c.ID); err != nil {
		return fmt.Errorf("failed to archive item: %w", err)
	}

	ctx.Printf("Archived item: %s (ID: %s)\n", item.Name, c.ID)

	reminders, err := ctx.Store.GetRemindersForItem(c.ID)
	if err != nil {
		return fmt.Errorf("failed to get reminders: %w", err)
	}
	active := 0
	for _, r := range reminders {
		if r.Active {
			active++
		}
	}
	if active > 0 {
		ctx.Printf("%d reminder(s) are still active; 'lifestock validate --fix' deactivates them.\n", active)
	}
	return nil
}

type ItemDeleteCmd struct {
	ID  string `arg:"" help:"Item ID to delete."`
	Yes bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *ItemDeleteCmd) Run(ctx *cli.Context) error {
	item, err := ctx.Store.GetItem(c.ID)
	if err != nil {
		return fmt.Errorf("failed to find item with ID %s: %w", c.ID, err)
	}

	if !c.Yes {
		ok, err := ctx.Ask(fmt.Sprintf("Delete %q with all its reminders and history?", item.Name))
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Cancelled.")
			return nil
		}
	}

	if err := ctx.Store.DeleteItem(c.ID); err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}

	ctx.Printf("Deleted item: %s (ID: %s)\n", item.Name, c.ID)
	return nil
}
