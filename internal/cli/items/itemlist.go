package items

import (
	"fmt"

	"github.com/julianstephens/lifestock/internal/cli"
	"github.com/julianstephens/lifestock/internal/models"
)

type ItemListCmd struct {
	Archived bool `help:"Include archived items."`
}

func (c *ItemListCmd) Run(ctx *cli.Context) error {
	items, err := ctx.Store.GetAllItems(c.Archived)
	if err != nil {
		return fmt.Errorf("failed to get items: %w", err)
	}
	printItems(ctx, items)
	return nil
}

type ItemSearchCmd struct {
	Query string `arg:"" help:"Text to look for in item names, notes and details."`
}

func (c *ItemSearchCmd) Run(ctx *cli.Context) error {
	items, err := ctx.Store.SearchItems(c.Query)
	if err != nil {
		return fmt.Errorf("failed to search items: %w", err)
	}
	printItems(ctx, items)
	return nil
}

func printItems(ctx *cli.Context, items []models.Item) {
	if len(items) == 0 {
		ctx.Println("No items found")
		return
	}

	ctx.Println("Items:")
	for _, item := range items {
		ctx.Printf("  %s (ID: %s)\n", itemLine(ctx, item), item.ID)
	}
}

func itemLine(ctx *cli.Context, item models.Item) string {
	line := fmt.Sprintf("[%s] %s", item.Kind, item.Name)
	if item.Icon != "" {
		line = fmt.Sprintf("[%s] %s %s", item.Kind, item.Icon, item.Name)
	}
	if item.ExpiryDate != nil {
		line += fmt.Sprintf(" - expires %s", ctx.FormatInstant(*item.ExpiryDate))
	}
	if item.IsLowStock() {
		line += " (low stock)"
	}
	if item.Archived {
		line += " (archived)"
	}
	return line
}
