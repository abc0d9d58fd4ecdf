package reminders

import (
	"fmt"

	"github.com/julianstephens/lifestock/internal/cli"
	"github.com/julianstephens/lifestock/internal/models"
)

type ReminderEditCmd struct {
	ID          string  `arg:"" help:"Reminder ID to edit."`
	Title       *string `help:"New title."`
	Description *string `help:"New description."`
	Due         *string `help:"New due date (one-time reminders)."`
	Every       *int    `help:"New recurrence interval (recurring reminders)."`
	Unit        *string `help:"New recurrence unit (day|week|month|year)."`
	Start       *string `help:"New start date (recurring reminders)."`
	Next        *string `help:"Override the next due date (recurring reminders)."`
	AdvanceDays *int    `help:"New notice window in days."`
	Activate    bool    `help:"Mark the reminder active." xor:"active"`
	Deactivate  bool    `help:"Mark the reminder inactive." xor:"active"`
}

func (c *ReminderEditCmd) Run(ctx *cli.Context) error {
	r, err := ctx.Store.GetReminder(c.ID)
	if err != nil {
		return fmt.Errorf("failed to find reminder with ID %s: %w", c.ID, err)
	}

	if c.Title != nil {
		r.Title = *c.Title
	}
	if c.Description != nil {
		r.Description = *c.Description
	}
	if c.Due != nil {
		if !r.IsOneTime() {
			return fmt.Errorf("--due applies to one-time reminders; use --start or --next")
		}
		due, err := ctx.ParseInstant(*c.Due)
		if err != nil {
			return fmt.Errorf("invalid --due: %w", err)
		}
		r.DueDate = &due
	}
	if c.Every != nil {
		r.RecurrenceInterval = *c.Every
	}
	if c.Unit != nil {
		r.RecurrenceUnit = models.RecurrenceUnit(*c.Unit)
	}
	if c.Start != nil {
		start, err := ctx.ParseInstant(*c.Start)
		if err != nil {
			return fmt.Errorf("invalid --start: %w", err)
		}
		r.StartDate = &start
	}
	if c.Next != nil {
		next, err := ctx.ParseInstant(*c.Next)
		if err != nil {
			return fmt.Errorf("invalid --next: %w", err)
		}
		r.NextDueDate = &next
	}
	if c.AdvanceDays != nil {
		r.AdvanceDays = *c.AdvanceDays
	}
	if c.Activate {
		r.Active = true
	}
	if c.Deactivate {
		r.Active = false
	}

	if err := r.Validate(); err != nil {
		return fmt.Errorf("invalid reminder: %w", err)
	}
	if err := ctx.Store.UpdateReminder(r); err != nil {
		return fmt.Errorf("failed to update reminder: %w", err)
	}

	ctx.Printf("Updated reminder: %s - %s (ID: %s)\n", r.Title, r.FormatRecurrence(ctx.Location()), r.ID)
	return nil
}
