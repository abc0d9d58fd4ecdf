package views

import (
	"fmt"
	"time"

	"github.com/julianstephens/lifestock/internal/cli"
	"github.com/julianstephens/lifestock/internal/scheduler"
)

type DueCmd struct {
	By   string `short:"b" help:"Include everything due up to the end of this day (YYYY-MM-DD, default: today)."`
	Item string `short:"i" help:"Only show reminders of this item ID."`
}

func (c *DueCmd) Run(ctx *cli.Context) error {
	now := ctx.Now()
	day := ctx.Scheduler.DateOf(now)
	if c.By != "" {
		d, err := scheduler.ParseDate(c.By)
		if err != nil {
			return err
		}
		day = d
	}
	cutoff := endOfDay(day, ctx.Location())

	reminders, names, err := loadActive(ctx, c.Item)
	if err != nil {
		return err
	}

	due := ctx.Scheduler.DueBy(reminders, cutoff)
	w := ctx.Writer()
	if len(due) == 0 {
		fmt.Fprintf(w, "Nothing due by %s\n", day)
		return nil
	}
	fmt.Fprintf(w, "Due by %s (%d):\n", day, len(due))
	RenderReminders(w, ctx.Scheduler, due, names, now)
	return nil
}

// endOfDay is the last instant of d in loc.
func endOfDay(d scheduler.Date, loc *time.Location) time.Time {
	return d.AddDays(1).Start(loc).Add(-time.Nanosecond)
}
