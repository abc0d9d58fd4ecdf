package views

import (
	"fmt"

	"github.com/julianstephens/lifestock/internal/cli"
	"github.com/julianstephens/lifestock/internal/logger"
	"github.com/julianstephens/lifestock/internal/models"
)

type TimelineCmd struct {
	Item string `short:"i" help:"Only show reminders of this item ID."`
}

func (c *TimelineCmd) Run(ctx *cli.Context) error {
	reminders, names, err := loadActive(ctx, c.Item)
	if err != nil {
		return err
	}

	for _, r := range ctx.Scheduler.Unscheduled(reminders) {
		logger.Warn("Reminder has no due date, left out of timeline", "reminder", r.ID, "title", r.Title)
	}

	now := ctx.Now()
	RenderTimeline(ctx.Writer(), ctx.Scheduler, ctx.Scheduler.GroupByBucket(reminders, now), names, now)
	return nil
}

// loadActive returns active reminders, optionally limited to one item, plus
// a lookup of item names.
func loadActive(ctx *cli.Context, itemID string) ([]models.Reminder, map[string]string, error) {
	reminders, err := ctx.Store.GetActiveReminders()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get reminders: %w", err)
	}
	if itemID != "" {
		if _, err := ctx.Store.GetItem(itemID); err != nil {
			return nil, nil, err
		}
		filtered := reminders[:0]
		for _, r := range reminders {
			if r.ItemID == itemID {
				filtered = append(filtered, r)
			}
		}
		reminders = filtered
	}

	items, err := ctx.Store.GetAllItems(true)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get items: %w", err)
	}
	names := make(map[string]string, len(items))
	for _, item := range items {
		names[item.ID] = item.Name
	}
	return reminders, names, nil
}
