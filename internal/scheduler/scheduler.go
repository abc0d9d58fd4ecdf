package scheduler

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/lifestock/internal/models"
)

var (
	// ErrInvalidRecurrence is returned when a recurring reminder has no usable interval or unit.
	ErrInvalidRecurrence = errors.New("invalid recurrence configuration")
	// ErrMissingTargetInstant is returned when a reminder has no due date to work from.
	ErrMissingTargetInstant = errors.New("reminder has no target instant")
	// ErrUnknownKind is returned for reminders that are neither one-time nor recurring.
	ErrUnknownKind = errors.New("unknown reminder kind")
)

// Scheduler computes due dates, rollovers and date buckets for reminders.
// Day boundaries are midnight-to-midnight in its location. It holds no
// mutable state and never reads the clock; "now" is always passed in.
type Scheduler struct {
	loc   *time.Location
	newID func() string
}

type Option func(*Scheduler)

// WithIDFunc replaces the generator used for completion log IDs.
func WithIDFunc(fn func() string) Option {
	return func(s *Scheduler) {
		s.newID = fn
	}
}

// New creates a scheduler for the given location. A nil location means time.Local.
func New(loc *time.Location, opts ...Option) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	s := &Scheduler{
		loc:   loc,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Scheduler) Location() *time.Location {
	return s.loc
}

// DateOf returns the calendar day t falls on in the scheduler's location.
func (s *Scheduler) DateOf(t time.Time) Date {
	return DateOf(t, s.loc)
}

// TargetInstant returns the instant a reminder is compared, bucketed and sorted by:
// the due date of a one-time reminder, or the next due date (falling back to the
// start date) of a recurring one. The boolean is false when nothing resolves.
func (s *Scheduler) TargetInstant(r models.Reminder) (time.Time, bool) {
	switch r.Kind {
	case models.ReminderOneTime:
		if r.DueDate != nil {
			return *r.DueDate, true
		}
	case models.ReminderRecurring:
		if r.NextDueDate != nil {
			return *r.NextDueDate, true
		}
		if r.StartDate != nil {
			return *r.StartDate, true
		}
	}
	return time.Time{}, false
}

func (s *Scheduler) startOfDay(t time.Time) time.Time {
	y, m, d := t.In(s.loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, s.loc)
}

// DayDifference returns the signed number of calendar days from the day of ref
// to the day of target. Rounding absorbs the one-hour drift of DST transitions.
func (s *Scheduler) DayDifference(target, ref time.Time) int {
	diff := s.startOfDay(target).Sub(s.startOfDay(ref))
	return int(math.Round(diff.Hours() / 24))
}

// Advance computes the occurrence after current. Months and years clamp to the
// last valid day of the target month; the time of day is kept as-is.
// Clamping is computed from current alone, so Jan 31 -> Feb 29 -> Mar 29.
// A time of day that falls in a DST gap moves forward by the gap length.
func (s *Scheduler) Advance(current time.Time, interval int, unit models.RecurrenceUnit) (time.Time, error) {
	t := current.In(s.loc)
	return s.advance(t, interval, unit, clockOf(t))
}

// wallClock is a time of day in the scheduler's location.
type wallClock struct {
	hour, min, sec, nsec int
}

func clockOf(t time.Time) wallClock {
	h, m, sec := t.Clock()
	return wallClock{h, m, sec, t.Nanosecond()}
}

func (s *Scheduler) advance(t time.Time, interval int, unit models.RecurrenceUnit, wc wallClock) (time.Time, error) {
	if interval <= 0 {
		return time.Time{}, fmt.Errorf("%w: interval must be positive, got %d", ErrInvalidRecurrence, interval)
	}

	y, m, d := t.Date()
	switch unit {
	case models.UnitDay:
		return s.at(y, m, d+interval, wc), nil
	case models.UnitWeek:
		return s.at(y, m, d+7*interval, wc), nil
	case models.UnitMonth:
		first := time.Date(y, m+time.Month(interval), 1, 0, 0, 0, 0, time.UTC)
		ny, nm := first.Year(), first.Month()
		return s.at(ny, nm, min(d, DaysIn(ny, nm)), wc), nil
	case models.UnitYear:
		ny := y + interval
		return s.at(ny, m, min(d, DaysIn(ny, m)), wc), nil
	default:
		return time.Time{}, fmt.Errorf("%w: unknown unit %q", ErrInvalidRecurrence, unit)
	}
}

// at builds the instant for a calendar day and time of day. A time of day
// skipped by a DST gap resolves to the same distance past the gap, e.g.
// 02:30 on a spring-forward night becomes 03:30.
func (s *Scheduler) at(y int, m time.Month, d int, wc wallClock) time.Time {
	t := time.Date(y, m, d, wc.hour, wc.min, wc.sec, wc.nsec, s.loc)
	if clockOf(t) == wc {
		return t
	}
	// time.Date may resolve a gap with either offset; settle on the later one.
	want := time.Date(y, m, d, wc.hour, wc.min, wc.sec, wc.nsec, time.UTC)
	got := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
	if delta := want.Sub(got); delta > 0 {
		t = t.Add(delta)
	}
	return t
}

// Complete records a completion of r at the given instant. One-time reminders
// become inactive; recurring reminders roll their next due date forward and stay
// active. Nothing is produced on error: the returned log is only valid together
// with the returned reminder, and the caller must persist both or neither.
func (s *Scheduler) Complete(r models.Reminder, at time.Time, notes string) (models.Reminder, models.ReminderLog, error) {
	updated := r

	switch r.Kind {
	case models.ReminderOneTime:
		updated.Active = false
	case models.ReminderRecurring:
		if !r.HasValidRecurrence() {
			return r, models.ReminderLog{}, fmt.Errorf("%w: reminder %s has interval %d and unit %q",
				ErrInvalidRecurrence, r.ID, r.RecurrenceInterval, r.RecurrenceUnit)
		}
		current, ok := s.TargetInstant(r)
		if !ok {
			return r, models.ReminderLog{}, fmt.Errorf("%w: reminder %s", ErrMissingTargetInstant, r.ID)
		}
		next, err := s.advance(current.In(s.loc), r.RecurrenceInterval, r.RecurrenceUnit, s.intendedClock(r, current))
		if err != nil {
			return r, models.ReminderLog{}, err
		}
		updated.NextDueDate = &next
	default:
		return r, models.ReminderLog{}, fmt.Errorf("%w: %q", ErrUnknownKind, r.Kind)
	}

	updated.UpdatedAt = at
	log := models.ReminderLog{
		ID:          s.newID(),
		ReminderID:  r.ID,
		CompletedAt: at,
		Notes:       notes,
		CreatedAt:   at,
	}
	return updated, log, nil
}

// intendedClock is the time of day the next occurrence should keep. It is the
// current target's, unless that was pushed past a DST gap, in which case the
// start date's time of day is restored.
func (s *Scheduler) intendedClock(r models.Reminder, current time.Time) wallClock {
	t := current.In(s.loc)
	wc := clockOf(t)
	if r.StartDate == nil {
		return wc
	}
	start := clockOf(r.StartDate.In(s.loc))
	y, m, d := t.Date()
	if start != wc && clockOf(time.Date(y, m, d, start.hour, start.min, start.sec, start.nsec, s.loc)) != start {
		return start
	}
	return wc
}

// sortByTarget orders reminders by ascending target instant, ties broken by ID.
// Reminders without a target instant are dropped.
func (s *Scheduler) sortByTarget(reminders []models.Reminder) []models.Reminder {
	type keyed struct {
		r      models.Reminder
		target time.Time
	}
	list := make([]keyed, 0, len(reminders))
	for _, r := range reminders {
		target, ok := s.TargetInstant(r)
		if !ok {
			continue
		}
		list = append(list, keyed{r: r, target: target})
	}
	sort.SliceStable(list, func(i, j int) bool {
		if !list[i].target.Equal(list[j].target) {
			return list[i].target.Before(list[j].target)
		}
		return list[i].r.ID < list[j].r.ID
	})

	sorted := make([]models.Reminder, len(list))
	for i, k := range list {
		sorted[i] = k.r
	}
	return sorted
}

// Unscheduled returns the reminders that have no target instant and are
// therefore left out of grouping, calendar and due-by views.
func (s *Scheduler) Unscheduled(reminders []models.Reminder) []models.Reminder {
	var out []models.Reminder
	for _, r := range reminders {
		if _, ok := s.TargetInstant(r); !ok {
			out = append(out, r)
		}
	}
	return out
}

// MarkedDates returns the calendar days on which at least one active reminder is due.
func (s *Scheduler) MarkedDates(reminders []models.Reminder) DateSet {
	dates := DateSet{}
	for _, r := range reminders {
		if !r.Active {
			continue
		}
		if target, ok := s.TargetInstant(r); ok {
			dates.Add(s.DateOf(target))
		}
	}
	return dates
}

// DueBy returns the active reminders due at or before cutoff, soonest first.
func (s *Scheduler) DueBy(reminders []models.Reminder, cutoff time.Time) []models.Reminder {
	var due []models.Reminder
	for _, r := range s.sortByTarget(reminders) {
		target, _ := s.TargetInstant(r)
		if r.Active && !target.After(cutoff) {
			due = append(due, r)
		}
	}
	return due
}

// OnDate returns the active reminders whose target instant falls on the given day.
func (s *Scheduler) OnDate(reminders []models.Reminder, day Date) []models.Reminder {
	var out []models.Reminder
	for _, r := range s.sortByTarget(reminders) {
		target, _ := s.TargetInstant(r)
		if r.Active && s.DateOf(target) == day {
			out = append(out, r)
		}
	}
	return out
}
