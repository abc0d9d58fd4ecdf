package validation

import (
	"fmt"
	"sort"
	"time"

	"github.com/julianstephens/lifestock/internal/constants"
	"github.com/julianstephens/lifestock/internal/models"
)

// ConflictType represents the type of validation conflict
type ConflictType = constants.ConflictType

const (
	ConflictDuplicateReminderID = constants.ConflictDuplicateReminderID
	ConflictMissingItem         = constants.ConflictMissingItem
	ConflictMissingDueDate      = constants.ConflictMissingDueDate
	ConflictInvalidRecurrence   = constants.ConflictInvalidRecurrence
	ConflictNextDueBeforeStart  = constants.ConflictNextDueBeforeStart
	ConflictNegativeAdvanceDays = constants.ConflictNegativeAdvanceDays
	ConflictArchivedItem        = constants.ConflictArchivedItem
)

// Conflict represents a detected problem in the stored items and reminders
type Conflict struct {
	Type        ConflictType
	Description string
	ReminderIDs []string // IDs of reminders involved (for auto-fixing)
	ItemID      string   // owning item (if applicable)
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// FixAction represents an action taken during auto-fix
type FixAction struct {
	Action         string   // Human-readable description of the action
	SourceConflict Conflict // The conflict that triggered this fix action
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	report := "Conflicts detected:\n"
	for _, conflict := range vr.Conflicts {
		report += fmt.Sprintf("- %s\n", conflict.Description)
	}
	return report
}

// Validator checks items and reminders for inconsistencies
type Validator struct {
	loc *time.Location
}

type Option func(*Validator)

// WithLocation sets the zone dates are shown in within conflict descriptions.
func WithLocation(loc *time.Location) Option {
	return func(v *Validator) {
		if loc != nil {
			v.loc = loc
		}
	}
}

// New creates a new Validator
func New(opts ...Option) *Validator {
	v := &Validator{loc: time.Local}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate checks a batch of items and reminders. Conflicts are ordered by
// type and then by the first reminder ID involved.
func (v *Validator) Validate(items []models.Item, reminders []models.Reminder) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	itemsByID := make(map[string]models.Item, len(items))
	for _, item := range items {
		itemsByID[item.ID] = item
	}

	seen := make(map[string]int)
	for _, r := range reminders {
		seen[r.ID]++
	}
	for id, n := range seen {
		if n > 1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateReminderID,
				Description: fmt.Sprintf("Reminder ID %s is used %d times", id, n),
				ReminderIDs: []string{id},
			})
		}
	}

	for _, r := range reminders {
		result.Conflicts = append(result.Conflicts, v.checkReminder(r, itemsByID)...)
	}

	sort.SliceStable(result.Conflicts, func(i, j int) bool {
		a, b := result.Conflicts[i], result.Conflicts[j]
		if a.Type != b.Type {
			return a.Type < b.Type
		}
		return firstID(a) < firstID(b)
	})

	return result
}

func firstID(c Conflict) string {
	if len(c.ReminderIDs) == 0 {
		return ""
	}
	return c.ReminderIDs[0]
}

func (v *Validator) checkReminder(r models.Reminder, itemsByID map[string]models.Item) []Conflict {
	var conflicts []Conflict
	add := func(t ConflictType, format string, args ...any) {
		conflicts = append(conflicts, Conflict{
			Type:        t,
			Description: fmt.Sprintf("Reminder \"%s\" (%s): ", r.Title, r.ID) + fmt.Sprintf(format, args...),
			ReminderIDs: []string{r.ID},
			ItemID:      r.ItemID,
		})
	}

	item, ok := itemsByID[r.ItemID]
	switch {
	case !ok:
		add(ConflictMissingItem, "item %s does not exist", r.ItemID)
	case item.Archived && r.Active:
		add(ConflictArchivedItem, "still active on archived item \"%s\"", item.Name)
	}

	if r.AdvanceDays < 0 {
		add(ConflictNegativeAdvanceDays, "advance days is %d", r.AdvanceDays)
	}

	switch r.Kind {
	case models.ReminderOneTime:
		if r.DueDate == nil {
			add(ConflictMissingDueDate, "one-time reminder has no due date")
		}
	case models.ReminderRecurring:
		if !r.HasValidRecurrence() {
			add(ConflictInvalidRecurrence, "interval %d and unit %q cannot be advanced", r.RecurrenceInterval, r.RecurrenceUnit)
		}
		if r.StartDate == nil && r.NextDueDate == nil {
			add(ConflictMissingDueDate, "recurring reminder has neither a start nor a next due date")
		}
		if r.StartDate != nil && r.NextDueDate != nil && r.NextDueDate.Before(*r.StartDate) {
			add(ConflictNextDueBeforeStart, "next due %s is before start %s",
				r.NextDueDate.In(v.loc).Format(constants.DateTimeFormat), r.StartDate.In(v.loc).Format(constants.DateTimeFormat))
		}
	default:
		add(ConflictInvalidRecurrence, "unknown kind %q", r.Kind)
	}

	return conflicts
}

// AutoFix repairs the conflicts that have an unambiguous fix:
// active reminders on archived items are deactivated, and a next due date
// before the start date is reset to the start date. Every other conflict
// needs a human decision and is left alone.
// Returns a slice of FixActions describing what was fixed
func AutoFix(conflicts []Conflict, reminders []models.Reminder, updateFunc func(models.Reminder) error) []FixAction {
	actions := []FixAction{}

	byID := make(map[string]models.Reminder, len(reminders))
	for _, r := range reminders {
		byID[r.ID] = r
	}

	for _, conflict := range conflicts {
		if len(conflict.ReminderIDs) != 1 {
			continue
		}
		r, ok := byID[conflict.ReminderIDs[0]]
		if !ok {
			continue
		}

		var action string
		switch conflict.Type {
		case ConflictArchivedItem:
			r.Active = false
			action = fmt.Sprintf("Deactivated reminder \"%s\" on archived item", r.Title)
		case ConflictNextDueBeforeStart:
			start := *r.StartDate
			r.NextDueDate = &start
			action = fmt.Sprintf("Reset next due date of \"%s\" to its start date", r.Title)
		default:
			continue
		}

		if err := updateFunc(r); err != nil {
			actions = append(actions, FixAction{
				Action:         fmt.Sprintf("Failed to fix \"%s\": %v", r.Title, err),
				SourceConflict: conflict,
			})
			continue
		}
		// later fixes to the same reminder build on this one
		r.Version++
		byID[r.ID] = r
		actions = append(actions, FixAction{Action: action, SourceConflict: conflict})
	}

	return actions
}
