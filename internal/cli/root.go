package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/lifestock/internal/config"
	"github.com/julianstephens/lifestock/internal/constants"
	"github.com/julianstephens/lifestock/internal/scheduler"
	"github.com/julianstephens/lifestock/internal/storage"
	"github.com/julianstephens/lifestock/internal/utils"
)

// Context is handed to every command's Run method.
type Context struct {
	Store     storage.Provider
	Scheduler *scheduler.Scheduler
	Config    *config.Config

	// Out receives command output; nil means stdout.
	Out io.Writer
	// Clock supplies "now"; nil means time.Now.
	Clock func() time.Time
	// Confirm asks a yes/no question; nil means an interactive huh prompt.
	Confirm func(title string) (bool, error)
}

// Writer is where command output goes.
func (c *Context) Writer() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.Writer(), format, args...)
}

func (c *Context) Print(args ...any) {
	fmt.Fprint(c.Writer(), args...)
}

func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.Writer(), args...)
}

// Location is the timezone that defines day boundaries for this run.
func (c *Context) Location() *time.Location {
	if c.Scheduler == nil {
		return time.Local
	}
	return c.Scheduler.Location()
}

// Now returns the current instant in the configured timezone.
func (c *Context) Now() time.Time {
	now := time.Now
	if c.Clock != nil {
		now = c.Clock
	}
	return now().In(c.Location())
}

// Ask asks the user to confirm title.
func (c *Context) Ask(title string) (bool, error) {
	if c.Confirm != nil {
		return c.Confirm(title)
	}
	return PromptConfirm(title)
}

// ParseInstant parses a user-entered date or date-time in the configured timezone.
func (c *Context) ParseInstant(s string) (time.Time, error) {
	dueTime := constants.DefaultDueTime
	if c.Config != nil && c.Config.DefaultDueTime != "" {
		dueTime = c.Config.DefaultDueTime
	}
	return utils.ParseInstant(s, dueTime, c.Location())
}

// FormatInstant renders t in the configured timezone.
func (c *Context) FormatInstant(t time.Time) string {
	return t.In(c.Location()).Format(constants.DateTimeFormat)
}

// PromptConfirm shows a yes/no prompt on the terminal.
func PromptConfirm(title string) (bool, error) {
	var ok bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(&ok),
		),
	).WithTheme(huh.ThemeBase())

	if err := form.Run(); err != nil {
		return false, fmt.Errorf("interactive form error: %w", err)
	}
	return ok, nil
}
