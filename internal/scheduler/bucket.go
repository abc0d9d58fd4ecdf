package scheduler

import (
	"fmt"
	"time"

	"github.com/julianstephens/lifestock/internal/models"
)

// Bucket is a date-relative group a reminder is displayed under.
// Values are ordered: a lower bucket is always more urgent.
type Bucket int

const (
	Overdue Bucket = iota
	Today
	Tomorrow
	DayAfterTomorrow
	WithinWeek
	WithinMonth
	WithinQuarter
	WithinHalfYear
	WithinYear
	Distant
)

var bucketNames = [...]string{
	Overdue:          "overdue",
	Today:            "today",
	Tomorrow:         "tomorrow",
	DayAfterTomorrow: "day_after_tomorrow",
	WithinWeek:       "within_week",
	WithinMonth:      "within_month",
	WithinQuarter:    "within_quarter",
	WithinHalfYear:   "within_half_year",
	WithinYear:       "within_year",
	Distant:          "distant",
}

var bucketLabels = [...]string{
	Overdue:          "Overdue",
	Today:            "Today",
	Tomorrow:         "Tomorrow",
	DayAfterTomorrow: "Day after tomorrow",
	WithinWeek:       "This week",
	WithinMonth:      "This month",
	WithinQuarter:    "Within 3 months",
	WithinHalfYear:   "Within 6 months",
	WithinYear:       "Within a year",
	Distant:          "Later",
}

// Buckets returns every bucket in display order.
func Buckets() []Bucket {
	out := make([]Bucket, 0, len(bucketNames))
	for b := Overdue; b <= Distant; b++ {
		out = append(out, b)
	}
	return out
}

func (b Bucket) String() string {
	if b < Overdue || b > Distant {
		return fmt.Sprintf("bucket(%d)", int(b))
	}
	return bucketNames[b]
}

// Label is the heading shown above the bucket's reminders.
func (b Bucket) Label() string {
	if b < Overdue || b > Distant {
		return b.String()
	}
	return bucketLabels[b]
}

// BucketForDays maps a calendar-day difference to its bucket. Every integer has
// exactly one bucket; negative differences are overdue.
func BucketForDays(days int) Bucket {
	switch {
	case days < 0:
		return Overdue
	case days == 0:
		return Today
	case days == 1:
		return Tomorrow
	case days == 2:
		return DayAfterTomorrow
	case days <= 7:
		return WithinWeek
	case days <= 30:
		return WithinMonth
	case days <= 90:
		return WithinQuarter
	case days <= 180:
		return WithinHalfYear
	case days <= 365:
		return WithinYear
	default:
		return Distant
	}
}

// ClassifyUrgency buckets a target instant relative to now. Anything strictly
// before now is overdue, even when it falls earlier on the same day.
func (s *Scheduler) ClassifyUrgency(target, now time.Time) Bucket {
	if target.Before(now) {
		return Overdue
	}
	return BucketForDays(s.DayDifference(target, now))
}

// Group is a run of reminders that share a bucket.
type Group struct {
	Bucket    Bucket
	Reminders []models.Reminder
}

// GroupByBucket sorts reminders by target instant (ties by ID) and partitions
// them by bucket in display order. Empty buckets are omitted and reminders
// without a target instant are skipped; see Unscheduled.
func (s *Scheduler) GroupByBucket(reminders []models.Reminder, now time.Time) []Group {
	var groups []Group
	for _, r := range s.sortByTarget(reminders) {
		target, _ := s.TargetInstant(r)
		b := s.ClassifyUrgency(target, now)
		if n := len(groups); n > 0 && groups[n-1].Bucket == b {
			groups[n-1].Reminders = append(groups[n-1].Reminders, r)
			continue
		}
		groups = append(groups, Group{Bucket: b, Reminders: []models.Reminder{r}})
	}
	return groups
}

// Urgency is a coarse status level used to colour a reminder.
type Urgency int

const (
	Expired Urgency = iota
	Soon
	Upcoming
	Later
)

func (u Urgency) String() string {
	switch u {
	case Expired:
		return "expired"
	case Soon:
		return "soon"
	case Upcoming:
		return "upcoming"
	default:
		return "later"
	}
}

// Status returns the urgency level of a target instant: expired when before now,
// soon within a week, upcoming within a month, later otherwise.
func (s *Scheduler) Status(target, now time.Time) Urgency {
	if target.Before(now) {
		return Expired
	}
	days := s.DayDifference(target, now)
	switch {
	case days <= 7:
		return Soon
	case days <= 30:
		return Upcoming
	default:
		return Later
	}
}

// StatusText describes when a reminder is due relative to now, e.g.
// "due tomorrow" or "overdue by 3 days". Recurring reminders read "do" rather
// than "due" since they describe an action to repeat.
func (s *Scheduler) StatusText(r models.Reminder, now time.Time) string {
	target, ok := s.TargetInstant(r)
	if !ok {
		return "no due date"
	}

	verb := "due"
	if r.IsRecurring() {
		verb = "do"
	}

	days := s.DayDifference(target, now)
	if target.Before(now) {
		switch {
		case days >= 0:
			return "overdue"
		case days == -1:
			return "overdue by 1 day"
		default:
			return fmt.Sprintf("overdue by %d days", -days)
		}
	}

	switch days {
	case 0:
		return verb + " today"
	case 1:
		return verb + " tomorrow"
	default:
		return fmt.Sprintf("%s in %d days", verb, days)
	}
}
