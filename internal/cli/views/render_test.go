package views

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/lifestock/internal/models"
	"github.com/julianstephens/lifestock/internal/scheduler"
)

func ptr(t time.Time) *time.Time { return &t }

func oneTime(id, itemID string, due time.Time) models.Reminder {
	return models.Reminder{ID: id, ItemID: itemID, Kind: models.ReminderOneTime, Title: "Task " + id, DueDate: ptr(due), Active: true}
}

func TestRenderTimeline(t *testing.T) {
	s := scheduler.New(time.UTC)
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	reminders := []models.Reminder{
		oneTime("late", "i1", now.Add(-time.Hour)),
		oneTime("tmrw", "i1", now.AddDate(0, 0, 1)),
		oneTime("far", "i2", now.AddDate(2, 0, 0)),
	}
	names := map[string]string{"i1": "Water filter", "i2": "Passport"}

	var buf bytes.Buffer
	RenderTimeline(&buf, s, s.GroupByBucket(reminders, now), names, now)
	out := buf.String()

	order := []string{"Overdue (1)", "2024-03-10 11:00  Water filter: Task late  overdue", "Tomorrow (1)", "due tomorrow", "Later (1)", "Passport: Task far"}
	pos := 0
	for _, want := range order {
		i := strings.Index(out[pos:], want)
		if i < 0 {
			t.Fatalf("output missing %q after offset %d:\n%s", want, pos, out)
		}
		pos += i + len(want)
	}
}

func TestRenderTimeline_Empty(t *testing.T) {
	var buf bytes.Buffer
	RenderTimeline(&buf, scheduler.New(time.UTC), nil, nil, time.Now())
	if got := buf.String(); got != "Nothing scheduled.\n" {
		t.Errorf("output = %q", got)
	}
}

func TestRenderCalendar(t *testing.T) {
	marked := scheduler.DateSet{}
	marked.Add(scheduler.Date{Year: 2024, Month: time.March, Day: 2})
	marked.Add(scheduler.Date{Year: 2024, Month: time.March, Day: 15})
	marked.Add(scheduler.Date{Year: 2024, Month: time.April, Day: 1})

	today := scheduler.Date{Year: 2024, Month: time.March, Day: 10}

	var buf bytes.Buffer
	RenderCalendar(&buf, 2024, time.March, marked, today, today)
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")

	want := []string{
		"March 2024",
		"Su  Mo  Tu  We  Th  Fr  Sa",
		"                     1   2*",
		" 3   4   5   6   7   8   9",
		"10  11  12  13  14  15* 16",
		"17  18  19  20  21  22  23",
		"24  25  26  27  28  29  30",
		"31",
		"2 day(s) with reminders",
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d:\n%s", len(lines), len(want), buf.String())
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestRenderCalendar_MonthStartingSunday(t *testing.T) {
	var buf bytes.Buffer
	// September 2024 starts on a Sunday
	RenderCalendar(&buf, 2024, time.September, scheduler.DateSet{}, scheduler.Date{}, scheduler.Date{})
	lines := strings.Split(buf.String(), "\n")
	if len(lines) < 3 || lines[2] != " 1   2   3   4   5   6   7" {
		t.Errorf("first week = %q", lines[2])
	}
}
