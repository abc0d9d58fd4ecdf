package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/lifestock/internal/keyring"
	"github.com/julianstephens/lifestock/internal/logger"
	"github.com/julianstephens/lifestock/internal/scheduler"
	"github.com/julianstephens/lifestock/internal/storage"
	"github.com/julianstephens/lifestock/internal/storage/postgres"
)

// Format formats an error message with a consistent "Error: " prefix,
// followed by a hint line when the error has a known remedy
func Format(err error) string {
	if err == nil {
		return ""
	}
	msg := fmt.Sprintf("Error: %v", err)
	if hint := Hint(err); hint != "" {
		msg += "\n  Hint: " + hint
	}
	return msg
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Hint returns a suggestion for errors the user can fix, or "" for anything else
func Hint(err error) string {
	switch {
	case stderrors.Is(err, storage.ErrNotInitialized):
		return "run 'lifestock init' first"
	case stderrors.Is(err, storage.ErrConflict):
		return "the reminder was changed by another completion; run the command again"
	case stderrors.Is(err, scheduler.ErrInvalidRecurrence):
		return "give the reminder a positive interval and a unit with 'lifestock reminder edit <id> --every N --unit day|week|month|year'"
	case stderrors.Is(err, scheduler.ErrMissingTargetInstant):
		return "set a due or start date with 'lifestock reminder edit <id> --due ...'"
	case stderrors.Is(err, keyring.ErrNotFound):
		return "store a connection string with 'lifestock keyring set' or export LIFESTOCK_DB_CONNECTION"
	case stderrors.Is(err, postgres.ErrEmbeddedCredentials):
		return "drop the password from the connection string and use 'lifestock keyring set', LIFESTOCK_DB_CONNECTION or .pgpass"
	case stderrors.Is(err, storage.ErrNotFound):
		return "use 'lifestock reminder list' or 'lifestock item list' to find valid ids"
	default:
		return ""
	}
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
