package views

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/julianstephens/lifestock/internal/constants"
	"github.com/julianstephens/lifestock/internal/models"
	"github.com/julianstephens/lifestock/internal/scheduler"
)

// RenderTimeline writes one section per bucket, most urgent first.
func RenderTimeline(w io.Writer, s *scheduler.Scheduler, groups []scheduler.Group, names map[string]string, now time.Time) {
	st := newStyles(w)
	if len(groups) == 0 {
		fmt.Fprintln(w, "Nothing scheduled.")
		return
	}

	for i, g := range groups {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s %s\n", st.header.Render(g.Bucket.Label()), st.dim.Render(fmt.Sprintf("(%d)", len(g.Reminders))))
		for _, r := range g.Reminders {
			fmt.Fprintln(w, reminderLine(st, s, r, names, now))
		}
	}
}

// RenderReminders writes one line per reminder.
func RenderReminders(w io.Writer, s *scheduler.Scheduler, reminders []models.Reminder, names map[string]string, now time.Time) {
	st := newStyles(w)
	for _, r := range reminders {
		fmt.Fprintln(w, reminderLine(st, s, r, names, now))
	}
}

func reminderLine(st styles, s *scheduler.Scheduler, r models.Reminder, names map[string]string, now time.Time) string {
	target, _ := s.TargetInstant(r)
	status := st.status[s.Status(target, now)].Render(s.StatusText(r, now))

	title := r.Title
	if name := names[r.ItemID]; name != "" {
		title = name + ": " + r.Title
	}
	return fmt.Sprintf("  %s  %s  %s  %s",
		target.In(s.Location()).Format(constants.DateTimeFormat), title, status, st.dim.Render(r.ID))
}

// RenderCalendar writes a month grid starting on Sunday. Days with a due
// reminder are marked with '*'; today is underlined and selected is highlighted.
func RenderCalendar(w io.Writer, year int, month time.Month, marked scheduler.DateSet, today, selected scheduler.Date) {
	st := newStyles(w)
	first := scheduler.Date{Year: year, Month: month, Day: 1}

	title := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Format("January 2006")
	fmt.Fprintln(w, st.header.Render(title))
	fmt.Fprintln(w, "Su  Mo  Tu  We  Th  Fr  Sa")

	weekday := int(first.Start(time.UTC).Weekday())
	var line strings.Builder
	line.WriteString(strings.Repeat("    ", weekday))

	days := scheduler.DaysIn(year, month)
	for day := 1; day <= days; day++ {
		d := scheduler.Date{Year: year, Month: month, Day: day}

		mark := " "
		if marked.Has(d) {
			mark = "*"
		}
		cell := fmt.Sprintf("%2d", day)
		switch {
		case d == selected:
			cell = st.selected.Render(cell)
		case marked.Has(d):
			cell = st.marked.Render(cell)
		}
		if d == today {
			cell = st.today.Render(cell)
		}
		line.WriteString(cell + mark)

		if (weekday+day)%7 == 0 || day == days {
			fmt.Fprintln(w, strings.TrimRight(line.String(), " "))
			line.Reset()
		} else {
			line.WriteString(" ")
		}
	}

	if n := len(marked.InMonth(year, month)); n > 0 {
		fmt.Fprintln(w, st.dim.Render(fmt.Sprintf("%d day(s) with reminders", n)))
	}
}
