package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/sitless/internal/logger"
)

// Failure categories. None of them is fatal to the reminder engine: each is
// recovered where it happens and only logged.
var (
	// ErrConfigLoad means the settings file was corrupt or unreadable; defaults are used.
	ErrConfigLoad = stderrors.New("config load failure")
	// ErrRecordPersist means the record history could not be read or written.
	ErrRecordPersist = stderrors.New("record persist failure")
	// ErrChannelDispatch means a notification channel failed to deliver.
	ErrChannelDispatch = stderrors.New("channel dispatch failure")
)

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Wrap tags err with a failure category so callers can test it with errors.Is.
func Wrap(kind error, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", kind, err)
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
