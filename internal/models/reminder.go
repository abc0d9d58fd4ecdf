package models

import (
	"fmt"
	"time"

	"github.com/julianstephens/lifestock/internal/constants"
)

type ReminderKind = constants.ReminderKind

type RecurrenceUnit = constants.RecurrenceUnit

const (
	ReminderOneTime   = constants.ReminderOneTime
	ReminderRecurring = constants.ReminderRecurring

	UnitDay   = constants.UnitDay
	UnitWeek  = constants.UnitWeek
	UnitMonth = constants.UnitMonth
	UnitYear  = constants.UnitYear
)

type Reminder struct {
	ID          string       `json:"id"`
	ItemID      string       `json:"item_id"`
	Kind        ReminderKind `json:"kind"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`

	// One-time
	DueDate *time.Time `json:"due_date,omitempty"`

	// Recurring
	RecurrenceInterval int            `json:"recurrence_interval,omitempty"`
	RecurrenceUnit     RecurrenceUnit `json:"recurrence_unit,omitempty"`
	StartDate          *time.Time     `json:"start_date,omitempty"`
	NextDueDate        *time.Time     `json:"next_due_date,omitempty"`

	AdvanceDays int       `json:"advance_days"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Version     int       `json:"version"` // bumped by storage on every write
}

// ReminderLog is an append-only completion record.
type ReminderLog struct {
	ID          string    `json:"id"`
	ReminderID  string    `json:"reminder_id"`
	CompletedAt time.Time `json:"completed_at"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// IsOneTime returns true if this reminder fires once
func (r *Reminder) IsOneTime() bool {
	return r.Kind == ReminderOneTime
}

// IsRecurring returns true if this reminder repeats
func (r *Reminder) IsRecurring() bool {
	return r.Kind == ReminderRecurring
}

// HasValidRecurrence reports whether the reminder carries a usable interval and unit.
func (r *Reminder) HasValidRecurrence() bool {
	if r.RecurrenceInterval <= 0 {
		return false
	}
	return ValidRecurrenceUnit(r.RecurrenceUnit)
}

// ValidRecurrenceUnit reports whether u is one of the supported calendar units.
func ValidRecurrenceUnit(u RecurrenceUnit) bool {
	switch u {
	case UnitDay, UnitWeek, UnitMonth, UnitYear:
		return true
	default:
		return false
	}
}

// Normalize applies the creation defaults: a recurring reminder without a next
// due date starts at its start date.
func (r *Reminder) Normalize() {
	if r.IsRecurring() && r.NextDueDate == nil && r.StartDate != nil {
		next := *r.StartDate
		r.NextDueDate = &next
	}
}

func (r *Reminder) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("reminder id cannot be empty")
	}
	if r.ItemID == "" {
		return fmt.Errorf("reminder must belong to an item")
	}
	if r.Title == "" {
		return fmt.Errorf("reminder title cannot be empty")
	}
	if r.AdvanceDays < 0 {
		return fmt.Errorf("advance days cannot be negative")
	}

	switch r.Kind {
	case ReminderOneTime:
		if r.DueDate == nil {
			return fmt.Errorf("one-time reminder requires a due date")
		}
	case ReminderRecurring:
		if r.RecurrenceInterval <= 0 {
			return fmt.Errorf("recurrence interval must be at least 1")
		}
		if !ValidRecurrenceUnit(r.RecurrenceUnit) {
			return fmt.Errorf("invalid recurrence unit: %q (must be day, week, month, or year)", r.RecurrenceUnit)
		}
		if r.StartDate == nil {
			return fmt.Errorf("recurring reminder requires a start date")
		}
	default:
		return fmt.Errorf("invalid reminder kind: %q", r.Kind)
	}

	return nil
}

// ValidateNew checks Validate plus the invariants that only hold at creation.
func (r *Reminder) ValidateNew() error {
	if err := r.Validate(); err != nil {
		return err
	}
	if r.IsRecurring() && r.NextDueDate != nil && r.NextDueDate.Before(*r.StartDate) {
		return fmt.Errorf("next due date %s is before start date %s",
			r.NextDueDate.Format(time.RFC3339), r.StartDate.Format(time.RFC3339))
	}
	return nil
}

// FormatRecurrence returns a human-readable string describing the reminder's
// schedule. A one-time due date is shown on its calendar day in loc; nil means
// the local zone.
func (r *Reminder) FormatRecurrence(loc *time.Location) string {
	if r.IsOneTime() {
		if r.DueDate == nil {
			return "One-time"
		}
		if loc == nil {
			loc = time.Local
		}
		return fmt.Sprintf("Once on %s", r.DueDate.In(loc).Format(constants.DateFormat))
	}

	if r.RecurrenceInterval == 1 {
		switch r.RecurrenceUnit {
		case UnitDay:
			return "Daily"
		case UnitWeek:
			return "Weekly"
		case UnitMonth:
			return "Monthly"
		case UnitYear:
			return "Yearly"
		}
	}
	return fmt.Sprintf("Every %d %ss", r.RecurrenceInterval, r.RecurrenceUnit)
}
