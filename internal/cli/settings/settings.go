package settings

import (
	"fmt"

	"github.com/julianstephens/lifestock/internal/cli"
	"github.com/julianstephens/lifestock/internal/utils"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Timezone           *string `help:"IANA timezone that defines day boundaries (or Local)."`
	DefaultAdvanceDays *int    `help:"Notice window in days applied to new reminders."`
}

func (c *SettingsCmd) Validate() error {
	if c.Timezone != nil && !utils.ValidateTimezone(*c.Timezone) {
		return fmt.Errorf("invalid timezone: %q", *c.Timezone)
	}
	if c.DefaultAdvanceDays != nil && *c.DefaultAdvanceDays < 0 {
		return fmt.Errorf("default advance days cannot be negative")
	}
	return nil
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	if err := c.Validate(); err != nil {
		return err
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		ctx.Println("Current Settings:")
		ctx.Printf("  Timezone:              %s\n", settings.Timezone)
		ctx.Printf("  Default Advance Days:  %d\n", settings.DefaultAdvanceDays)
		ctx.Printf("  Effective Timezone:    %s\n", ctx.Location())
		return nil
	}

	updated := false
	if c.Timezone != nil {
		settings.Timezone = *c.Timezone
		updated = true
	}
	if c.DefaultAdvanceDays != nil {
		settings.DefaultAdvanceDays = *c.DefaultAdvanceDays
		updated = true
	}

	if updated {
		if err := ctx.Store.SaveSettings(settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		ctx.Println("Settings updated successfully.")
	} else {
		ctx.Println("No changes specified. Use --list to view settings or flags to update them.")
	}

	return nil
}
