package reminders

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/julianstephens/lifestock/internal/cli"
	"github.com/julianstephens/lifestock/internal/models"
)

type ReminderAddCmd struct {
	ItemID      string `arg:"" help:"ID of the item the reminder belongs to."`
	Title       string `arg:"" help:"Reminder title."`
	Description string `short:"m" help:"Longer description."`
	Due         string `short:"d" help:"Due date for a one-time reminder (YYYY-MM-DD or YYYY-MM-DD HH:MM)."`
	Every       int    `short:"e" help:"Repeat every N units; makes the reminder recurring."`
	Unit        string `short:"u" help:"Recurrence unit (day|week|month|year)." enum:"day,week,month,year" default:"month"`
	Start       string `short:"s" help:"First occurrence of a recurring reminder (defaults to --due)."`
	AdvanceDays *int   `short:"a" help:"Days of notice before the due date (default: settings)."`
}

func (c *ReminderAddCmd) Validate() error {
	if c.Every < 0 {
		return fmt.Errorf("--every must be at least 1")
	}
	if c.Every == 0 && c.Due == "" {
		return fmt.Errorf("a one-time reminder needs --due; use --every for a recurring one")
	}
	if c.Every > 0 && c.Start == "" && c.Due == "" {
		return fmt.Errorf("a recurring reminder needs --start")
	}
	if c.AdvanceDays != nil && *c.AdvanceDays < 0 {
		return fmt.Errorf("--advance-days cannot be negative")
	}
	return nil
}

func (c *ReminderAddCmd) Run(ctx *cli.Context) error {
	if err := c.Validate(); err != nil {
		return err
	}

	r := models.Reminder{
		ID:          uuid.New().String(),
		ItemID:      c.ItemID,
		Title:       strings.TrimSpace(c.Title),
		Description: c.Description,
		Active:      true,
	}

	if c.Every > 0 {
		start := c.Start
		if start == "" {
			start = c.Due
		}
		startAt, err := ctx.ParseInstant(start)
		if err != nil {
			return fmt.Errorf("invalid start date: %w", err)
		}
		r.Kind = models.ReminderRecurring
		r.RecurrenceInterval = c.Every
		r.RecurrenceUnit = models.RecurrenceUnit(c.Unit)
		r.StartDate = &startAt
	} else {
		due, err := ctx.ParseInstant(c.Due)
		if err != nil {
			return fmt.Errorf("invalid --due: %w", err)
		}
		r.Kind = models.ReminderOneTime
		r.DueDate = &due
	}

	if c.AdvanceDays != nil {
		r.AdvanceDays = *c.AdvanceDays
	} else {
		settings, err := ctx.Store.GetSettings()
		if err != nil {
			return fmt.Errorf("failed to get settings: %w", err)
		}
		r.AdvanceDays = settings.DefaultAdvanceDays
	}

	r.Normalize()
	if err := r.ValidateNew(); err != nil {
		return fmt.Errorf("invalid reminder: %w", err)
	}
	if err := ctx.Store.AddReminder(r); err != nil {
		return err
	}

	ctx.Printf("Added reminder: %s - %s (ID: %s)\n", r.Title, r.FormatRecurrence(ctx.Location()), r.ID)
	return nil
}
