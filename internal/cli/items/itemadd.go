package items

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/julianstephens/lifestock/internal/cli"
	"github.com/julianstephens/lifestock/internal/models"
)

type ItemAddCmd struct {
	Name   string `arg:"" help:"Item name."`
	Kind   string `short:"k" help:"Item kind (stock|card|phone)." enum:"stock,card,phone" default:"stock"`
	Icon   string `help:"Emoji or short label shown next to the name."`
	Notes  string `short:"n" help:"Free-form notes."`
	Expiry string `short:"x" help:"Expiry date (YYYY-MM-DD or YYYY-MM-DD HH:MM)."`

	Details DetailFlags `embed:""`
}

func (c *ItemAddCmd) Run(ctx *cli.Context) error {
	item := models.Item{
		ID:    uuid.New().String(),
		Kind:  models.ItemKind(c.Kind),
		Name:  strings.TrimSpace(c.Name),
		Icon:  c.Icon,
		Notes: c.Notes,
	}
	if c.Expiry != "" {
		expiry, err := ctx.ParseInstant(c.Expiry)
		if err != nil {
			return fmt.Errorf("invalid --expiry: %w", err)
		}
		item.ExpiryDate = &expiry
	}
	if err := c.Details.apply(ctx, &item.Details); err != nil {
		return err
	}

	if err := item.Validate(); err != nil {
		return fmt.Errorf("invalid item: %w", err)
	}
	if err := ctx.Store.AddItem(item); err != nil {
		return err
	}

	ctx.Printf("Added item: %s (ID: %s)\n", item.Name, item.ID)
	return nil
}
