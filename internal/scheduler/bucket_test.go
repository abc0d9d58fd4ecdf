package scheduler

import (
	"testing"
	"time"

	"github.com/julianstephens/lifestock/internal/models"
)

func TestClassifyUrgency(t *testing.T) {
	s := newTestScheduler()
	now := at(2026, 5, 10, 0, 1)

	tests := []struct {
		name   string
		target time.Time
		want   Bucket
	}{
		{"later today is not overdue", at(2026, 5, 10, 23, 59), Today},
		{"exactly now is today", now, Today},
		{"one minute ago", at(2026, 5, 10, 0, 0), Overdue},
		{"last week", at(2026, 5, 3, 9, 0), Overdue},
		{"tomorrow", at(2026, 5, 11, 9, 0), Tomorrow},
		{"day after tomorrow", at(2026, 5, 12, 9, 0), DayAfterTomorrow},
		{"three days", at(2026, 5, 13, 9, 0), WithinWeek},
		{"seven days", at(2026, 5, 17, 9, 0), WithinWeek},
		{"eight days", at(2026, 5, 18, 9, 0), WithinMonth},
		{"thirty days", at(2026, 6, 9, 9, 0), WithinMonth},
		{"thirty-one days", at(2026, 6, 10, 9, 0), WithinQuarter},
		{"ninety days", at(2026, 8, 8, 9, 0), WithinQuarter},
		{"ninety-one days", at(2026, 8, 9, 9, 0), WithinHalfYear},
		{"one hundred eighty days", at(2026, 11, 6, 9, 0), WithinHalfYear},
		{"one hundred eighty-one days", at(2026, 11, 7, 9, 0), WithinYear},
		{"a year", at(2027, 5, 10, 9, 0), WithinYear},
		{"a year and a day", at(2027, 5, 11, 9, 0), Distant},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.ClassifyUrgency(tt.target, now); got != tt.want {
				t.Errorf("ClassifyUrgency() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestBucketForDays_CoversEveryDay(t *testing.T) {
	prev := Overdue
	for days := -1000; days <= 1000; days++ {
		b := BucketForDays(days)
		if b < Overdue || b > Distant {
			t.Fatalf("BucketForDays(%d) = %d, outside the bucket range", days, b)
		}
		if b < prev {
			t.Fatalf("BucketForDays(%d) = %s, went backwards from %s", days, b, prev)
		}
		prev = b
	}

	boundaries := map[int]Bucket{
		-1: Overdue, 0: Today, 1: Tomorrow, 2: DayAfterTomorrow,
		3: WithinWeek, 7: WithinWeek, 8: WithinMonth, 30: WithinMonth,
		31: WithinQuarter, 90: WithinQuarter, 91: WithinHalfYear, 180: WithinHalfYear,
		181: WithinYear, 365: WithinYear, 366: Distant,
	}
	for days, want := range boundaries {
		if got := BucketForDays(days); got != want {
			t.Errorf("BucketForDays(%d) = %s, want %s", days, got, want)
		}
	}
}

func TestBuckets_Order(t *testing.T) {
	buckets := Buckets()
	if len(buckets) != 10 || buckets[0] != Overdue || buckets[9] != Distant {
		t.Fatalf("Buckets() = %v", buckets)
	}
	for _, b := range buckets {
		if b.Label() == "" || b.String() == "" {
			t.Errorf("bucket %d has no label", int(b))
		}
	}
}

func TestGroupByBucket(t *testing.T) {
	s := newTestScheduler()
	now := at(2026, 5, 10, 12, 0)

	reminders := []models.Reminder{
		oneTime("distant", at(2028, 1, 1, 9, 0)),
		oneTime("b-today", at(2026, 5, 10, 18, 0)),
		oneTime("a-today", at(2026, 5, 10, 18, 0)),
		recurring("overdue", at(2026, 5, 9, 9, 0), 1, models.UnitWeek),
		oneTime("this-morning", at(2026, 5, 10, 8, 0)),
		oneTime("week", at(2026, 5, 15, 9, 0)),
		{ID: "broken", Kind: models.ReminderOneTime, Active: true},
	}

	groups := s.GroupByBucket(reminders, now)

	wantBuckets := []Bucket{Overdue, Today, WithinWeek, Distant}
	if len(groups) != len(wantBuckets) {
		t.Fatalf("GroupByBucket() returned %d groups, want %d", len(groups), len(wantBuckets))
	}
	for i, b := range wantBuckets {
		if groups[i].Bucket != b {
			t.Errorf("group %d bucket = %s, want %s", i, groups[i].Bucket, b)
		}
		if len(groups[i].Reminders) == 0 {
			t.Errorf("group %d is empty", i)
		}
	}

	if got := reminderIDs(groups[0].Reminders); len(got) != 2 || got[0] != "overdue" || got[1] != "this-morning" {
		t.Errorf("overdue group = %v, want [overdue this-morning]", got)
	}
	if got := reminderIDs(groups[1].Reminders); len(got) != 2 || got[0] != "a-today" || got[1] != "b-today" {
		t.Errorf("today group = %v, want ties broken by id", got)
	}
}

func TestGroupByBucket_KeepsEveryScheduledReminder(t *testing.T) {
	s := newTestScheduler()
	now := at(2026, 1, 1, 12, 0)

	var reminders []models.Reminder
	for i := 0; i < 60; i++ {
		due := now.Add(time.Duration(i*i-400) * 7 * time.Hour)
		reminders = append(reminders, oneTime(time.Duration(i).String(), due))
	}
	reminders = append(reminders, models.Reminder{ID: "missing", Kind: models.ReminderRecurring, Active: true})

	seen := map[string]int{}
	for _, g := range s.GroupByBucket(reminders, now) {
		for _, r := range g.Reminders {
			seen[r.ID]++
		}
	}

	if len(seen) != 60 {
		t.Errorf("GroupByBucket() kept %d reminders, want 60", len(seen))
	}
	for id, n := range seen {
		if n != 1 {
			t.Errorf("reminder %s appears %d times", id, n)
		}
	}
	if seen["missing"] != 0 {
		t.Error("reminders without a target instant should be skipped")
	}
}

func TestGroupByBucket_Empty(t *testing.T) {
	s := newTestScheduler()
	if groups := s.GroupByBucket(nil, at(2026, 1, 1, 0, 0)); len(groups) != 0 {
		t.Errorf("GroupByBucket(nil) = %v, want no groups", groups)
	}
}

func TestStatus(t *testing.T) {
	s := newTestScheduler()
	now := at(2026, 5, 10, 12, 0)

	tests := []struct {
		target time.Time
		want   Urgency
	}{
		{at(2026, 5, 10, 11, 0), Expired},
		{at(2026, 5, 10, 13, 0), Soon},
		{at(2026, 5, 17, 9, 0), Soon},
		{at(2026, 5, 18, 9, 0), Upcoming},
		{at(2026, 6, 9, 9, 0), Upcoming},
		{at(2026, 6, 10, 9, 0), Later},
	}

	for _, tt := range tests {
		if got := s.Status(tt.target, now); got != tt.want {
			t.Errorf("Status(%v) = %s, want %s", tt.target, got, tt.want)
		}
	}
}

func TestStatusText(t *testing.T) {
	s := newTestScheduler()
	now := at(2026, 5, 10, 12, 0)

	tests := []struct {
		name     string
		reminder models.Reminder
		want     string
	}{
		{"earlier today", oneTime("a", at(2026, 5, 10, 8, 0)), "overdue"},
		{"yesterday", oneTime("b", at(2026, 5, 9, 8, 0)), "overdue by 1 day"},
		{"last week", oneTime("c", at(2026, 5, 3, 8, 0)), "overdue by 7 days"},
		{"tonight", oneTime("d", at(2026, 5, 10, 20, 0)), "due today"},
		{"recurring tonight", recurring("e", at(2026, 5, 10, 20, 0), 1, models.UnitDay), "do today"},
		{"tomorrow", oneTime("f", at(2026, 5, 11, 8, 0)), "due tomorrow"},
		{"in five days", recurring("g", at(2026, 5, 15, 8, 0), 1, models.UnitMonth), "do in 5 days"},
		{"no target", models.Reminder{Kind: models.ReminderOneTime}, "no due date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.StatusText(tt.reminder, now); got != tt.want {
				t.Errorf("StatusText() = %q, want %q", got, tt.want)
			}
		})
	}
}
