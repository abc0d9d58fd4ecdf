package views

import (
	"fmt"

	"github.com/julianstephens/lifestock/internal/cli"
	"github.com/julianstephens/lifestock/internal/scheduler"
	"github.com/julianstephens/lifestock/internal/utils"
)

type CalendarCmd struct {
	Month string `short:"m" help:"Month to show (YYYY-MM, default: this month or the month of --date)."`
	Date  string `short:"d" help:"Day whose reminders are listed (YYYY-MM-DD, default: today)."`
	Item  string `short:"i" help:"Only show reminders of this item ID."`
}

func (c *CalendarCmd) Run(ctx *cli.Context) error {
	now := ctx.Now()
	today := ctx.Scheduler.DateOf(now)

	selected := today
	if c.Date != "" {
		d, err := scheduler.ParseDate(c.Date)
		if err != nil {
			return err
		}
		selected = d
	}

	year, month := selected.Year, selected.Month
	if c.Month != "" {
		y, m, err := utils.ParseMonth(c.Month)
		if err != nil {
			return err
		}
		year, month = y, m
		if c.Date == "" && (today.Year != y || today.Month != m) {
			selected = scheduler.Date{Year: y, Month: m, Day: 1}
		}
	}

	reminders, names, err := loadActive(ctx, c.Item)
	if err != nil {
		return err
	}

	w := ctx.Writer()
	RenderCalendar(w, year, month, ctx.Scheduler.MarkedDates(reminders), today, selected)

	onDay := ctx.Scheduler.OnDate(reminders, selected)
	fmt.Fprintln(w)
	if len(onDay) == 0 {
		fmt.Fprintf(w, "Nothing due on %s\n", selected)
		return nil
	}
	fmt.Fprintf(w, "Due on %s:\n", selected)
	RenderReminders(w, ctx.Scheduler, onDay, names, now)
	return nil
}
