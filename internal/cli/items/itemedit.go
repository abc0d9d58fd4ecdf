package items

import (
	"fmt"

	"github.com/julianstephens/lifestock/internal/cli"
	"github.com/julianstephens/lifestock/internal/models"
)

type ItemEditCmd struct {
	ID        string  `arg:"" help:"Item ID to edit."`
	Name      *string `help:"New name."`
	Kind      *string `help:"New kind (stock|card|phone)."`
	Icon      *string `help:"New icon."`
	Notes     *string `help:"New notes."`
	Expiry    *string `help:"New expiry date; an empty value clears it."`
	Unarchive bool    `help:"Restore an archived item."`

	ClearDetails bool        `help:"Drop all kind-specific details before applying the detail flags."`
	Details      DetailFlags `embed:""`
}

func (c *ItemEditCmd) Run(ctx *cli.Context) error {
	item, err := ctx.Store.GetItem(c.ID)
	if err != nil {
		return fmt.Errorf("failed to find item with ID %s: %w", c.ID, err)
	}

	if c.Name != nil {
		item.Name = *c.Name
	}
	if c.Kind != nil {
		item.Kind = models.ItemKind(*c.Kind)
	}
	if c.Icon != nil {
		item.Icon = *c.Icon
	}
	if c.Notes != nil {
		item.Notes = *c.Notes
	}
	if c.Expiry != nil {
		if *c.Expiry == "" {
			item.ExpiryDate = nil
		} else {
			expiry, err := ctx.ParseInstant(*c.Expiry)
			if err != nil {
				return fmt.Errorf("invalid --expiry: %w", err)
			}
			item.ExpiryDate = &expiry
		}
	}
	if c.ClearDetails {
		item.Details = models.ItemDetails{}
	}
	if err := c.Details.apply(ctx, &item.Details); err != nil {
		return err
	}
	if c.Unarchive {
		item.Archived = false
	}

	if err := item.Validate(); err != nil {
		return fmt.Errorf("invalid item: %w", err)
	}
	if err := ctx.Store.UpdateItem(item); err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}

	ctx.Printf("Updated item: %s (ID: %s)\n", item.Name, item.ID)
	return nil
}
