package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/lifestock/internal/cli"
	"github.com/julianstephens/lifestock/internal/cli/items"
	"github.com/julianstephens/lifestock/internal/cli/reminders"
	"github.com/julianstephens/lifestock/internal/cli/settings"
	"github.com/julianstephens/lifestock/internal/cli/system"
	"github.com/julianstephens/lifestock/internal/cli/views"
	"github.com/julianstephens/lifestock/internal/config"
	"github.com/julianstephens/lifestock/internal/constants"
	"github.com/julianstephens/lifestock/internal/errors"
	"github.com/julianstephens/lifestock/internal/logger"
	"github.com/julianstephens/lifestock/internal/scheduler"
	"github.com/julianstephens/lifestock/internal/storage"
	"github.com/julianstephens/lifestock/internal/utils"
)

var CLI struct {
	Version  kong.VersionFlag
	Config   string `help:"Path to the YAML config file." type:"path" default:"${config_file}"`
	Database string `help:"SQLite path, PostgreSQL connection string without a password, or \"keyring\". Overrides the config file."`
	Timezone string `help:"IANA timezone for day boundaries. Overrides config and stored settings."`
	Debug    bool   `help:"Log debug output to stderr."`
	Now      string `help:"Pretend the current time is this (YYYY-MM-DD or YYYY-MM-DD HH:MM)." hidden:""`

	Init     system.InitCmd       `cmd:"" help:"Initialize lifestock storage."`
	Migrate  system.MigrateCmd    `cmd:"" help:"Run database migrations."`
	Doctor   system.DoctorCmd     `cmd:"" help:"Run health checks and diagnostics."`
	Validate system.ValidateCmd   `cmd:"" help:"Validate items and reminders for conflicts."`
	Export   system.ExportCmd     `cmd:"" help:"Write all data to a JSON snapshot."`
	Import   system.ImportCmd     `cmd:"" help:"Load a JSON snapshot into an empty database."`
	Keyring  system.KeyringCmd    `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
	Settings settings.SettingsCmd `cmd:"" help:"Manage application settings."`

	Item struct {
		Add     items.ItemAddCmd     `cmd:"" help:"Add an item."`
		List    items.ItemListCmd    `cmd:"" help:"List items." default:"1"`
		Show    items.ItemShowCmd    `cmd:"" help:"Show an item with its reminders and history."`
		Edit    items.ItemEditCmd    `cmd:"" help:"Edit an item."`
		Search  items.ItemSearchCmd  `cmd:"" help:"Search items by name or notes."`
		Archive items.ItemArchiveCmd `cmd:"" help:"Archive an item."`
		Delete  items.ItemDeleteCmd  `cmd:"" help:"Delete an item with its reminders and history."`
	} `cmd:"" help:"Manage items."`
	Reminder struct {
		Add      reminders.ReminderAddCmd      `cmd:"" help:"Add a one-time or recurring reminder."`
		List     reminders.ReminderListCmd     `cmd:"" help:"List reminders." default:"1"`
		Show     reminders.ReminderShowCmd     `cmd:"" help:"Show a reminder."`
		Edit     reminders.ReminderEditCmd     `cmd:"" help:"Edit a reminder."`
		Complete reminders.ReminderCompleteCmd `cmd:"" help:"Mark a reminder done and schedule the next occurrence."`
		Delete   reminders.ReminderDeleteCmd   `cmd:"" help:"Delete a reminder."`
		Logs     reminders.ReminderLogsCmd     `cmd:"" help:"Show completion history."`
	} `cmd:"" help:"Manage reminders."`

	Timeline views.TimelineCmd `cmd:"" help:"Show active reminders grouped by urgency." default:"1"`
	Calendar views.CalendarCmd `cmd:"" help:"Show a month with reminder days marked."`
	Due      views.DueCmd      `cmd:"" help:"List reminders due by a date."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Household item and reminder tracker"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     constants.Version,
			"config_file": constants.DefaultConfigFile,
		},
	)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		errors.Fatal(err)
	}
	if CLI.Database != "" {
		cfg.Database = utils.ExpandPath(CLI.Database)
	}
	if CLI.Timezone != "" {
		cfg.Timezone = CLI.Timezone
	}
	if CLI.Debug {
		cfg.Debug = true
	}
	if err := cfg.Validate(); err != nil {
		errors.Fatal(fmt.Errorf("invalid configuration: %w", err))
	}

	if err := logger.Init(logger.Config{Debug: cfg.Debug, Dir: cfg.LogDir}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	command := strings.Fields(ctx.Command())[0]
	logger.Debug("Starting", "command", ctx.Command(), "database", cfg.Database)

	appCtx := &cli.Context{Config: cfg}

	// keyring commands must work before any connection string exists
	var store storage.Provider
	if command != "keyring" {
		store, err = cli.OpenStore(cfg.Database, cfg.KeyringProfile)
		if err != nil {
			errors.Fatal(err)
		}
		defer store.Close()
		appCtx.Store = store
	}

	// init, migrate and doctor handle loading themselves
	switch command {
	case "init", "migrate", "doctor", "keyring":
	default:
		if err := store.Load(); err != nil {
			closeAndFatal(store, err)
		}
	}

	loc, err := resolveLocation(cfg, store, command)
	if err != nil {
		closeAndFatal(store, err)
	}
	appCtx.Scheduler = scheduler.New(loc)

	if CLI.Now != "" {
		now, err := utils.ParseInstant(CLI.Now, cfg.DefaultDueTime, loc)
		if err != nil {
			closeAndFatal(store, fmt.Errorf("invalid --now: %w", err))
		}
		appCtx.Clock = func() time.Time { return now }
	}

	if err := ctx.Run(appCtx); err != nil {
		closeAndFatal(store, err)
	}
}

// resolveLocation picks the timezone that defines day boundaries: the flag or
// config value, then the stored setting, then the system zone.
func resolveLocation(cfg *config.Config, store storage.Provider, command string) (*time.Location, error) {
	if cfg.Timezone != "" {
		return utils.LoadLocation(cfg.Timezone)
	}
	switch command {
	case "init", "migrate", "doctor", "keyring":
		return time.Local, nil
	}

	s, err := store.GetSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}
	return utils.LoadLocation(s.Timezone)
}

// closeAndFatal releases the store before exiting, since os.Exit skips deferred calls.
func closeAndFatal(store storage.Provider, err error) {
	if store != nil {
		store.Close()
	}
	errors.Fatal(err)
}
