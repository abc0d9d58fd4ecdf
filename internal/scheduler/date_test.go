package scheduler

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	if err != nil {
		t.Fatalf("ParseDate() unexpected error: %v", err)
	}
	if d != (Date{2024, time.February, 29}) {
		t.Errorf("ParseDate() = %+v", d)
	}
	if d.String() != "2024-02-29" {
		t.Errorf("String() = %q", d.String())
	}

	for _, bad := range []string{"", "2023-02-29", "2024/02/01", "24-2-1"} {
		if _, err := ParseDate(bad); err == nil {
			t.Errorf("ParseDate(%q) should fail", bad)
		}
	}
}

func TestDateOf(t *testing.T) {
	instant := time.Date(2026, 12, 31, 20, 0, 0, 0, time.UTC)

	if got := DateOf(instant, time.UTC); got != (Date{2026, time.December, 31}) {
		t.Errorf("DateOf(UTC) = %s", got)
	}
	tokyo := time.FixedZone("UTC+9", 9*3600)
	if got := DateOf(instant, tokyo); got != (Date{2027, time.January, 1}) {
		t.Errorf("DateOf(UTC+9) = %s", got)
	}
	if start := (Date{2027, time.January, 1}).Start(tokyo); !start.Equal(time.Date(2026, 12, 31, 15, 0, 0, 0, time.UTC)) {
		t.Errorf("Start() = %v", start)
	}
}

func TestDate_AddDaysAndCompare(t *testing.T) {
	d := Date{2024, time.February, 28}

	if got := d.AddDays(1); got != (Date{2024, time.February, 29}) {
		t.Errorf("AddDays(1) = %s", got)
	}
	if got := d.AddDays(2); got != (Date{2024, time.March, 1}) {
		t.Errorf("AddDays(2) = %s", got)
	}
	if got := d.AddDays(-59); got != (Date{2023, time.December, 31}) {
		t.Errorf("AddDays(-59) = %s", got)
	}

	if !d.Before(d.AddDays(1)) || d.After(d.AddDays(1)) || d.Compare(d) != 0 {
		t.Error("Compare() ordering is wrong")
	}
	if !(Date{2025, time.January, 1}).After(Date{2024, time.December, 31}) {
		t.Error("year should dominate comparison")
	}
	if !(Date{}).IsZero() || d.IsZero() {
		t.Error("IsZero() is wrong")
	}
}

func TestDaysIn(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2024, time.February, 29},
		{2023, time.February, 28},
		{1900, time.February, 28},
		{2000, time.February, 29},
		{2026, time.April, 30},
		{2026, time.December, 31},
	}
	for _, tt := range tests {
		if got := DaysIn(tt.year, tt.month); got != tt.want {
			t.Errorf("DaysIn(%d, %s) = %d, want %d", tt.year, tt.month, got, tt.want)
		}
	}
}

func TestDateSet(t *testing.T) {
	set := DateSet{}
	set.Add(Date{2026, time.March, 3})
	set.Add(Date{2026, time.February, 27})
	set.Add(Date{2026, time.March, 1})
	set.Add(Date{2026, time.March, 1})

	sorted := set.Sorted()
	if len(sorted) != 3 || sorted[0].String() != "2026-02-27" || sorted[2].String() != "2026-03-03" {
		t.Errorf("Sorted() = %v", sorted)
	}

	march := set.InMonth(2026, time.March)
	if len(march) != 2 || march[0].Day != 1 || march[1].Day != 3 {
		t.Errorf("InMonth() = %v", march)
	}
	if set.Has(Date{2026, time.March, 2}) {
		t.Error("Has() reported a date that was never added")
	}
}
