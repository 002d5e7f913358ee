package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/habitbreaker/internal/logger"
)

var (
	// ErrValidation is returned for malformed user input such as an empty habit name.
	ErrValidation = errors.New("validation failed")
	// ErrEmptyName is the ErrValidation returned for blank habit names.
	ErrEmptyName = fmt.Errorf("%w: empty name", ErrValidation)
	// ErrNameTooLong is the ErrValidation returned for overlong habit names.
	ErrNameTooLong = fmt.Errorf("%w: name too long", ErrValidation)
	// ErrNameMarkup is the ErrValidation returned for names containing HTML-like markup.
	ErrNameMarkup = fmt.Errorf("%w: markup not allowed", ErrValidation)
	// ErrNoActiveHabit is returned when an operation needs a habit the user has not created.
	ErrNoActiveHabit = errors.New("no active habit")
	// ErrUserNotFound is returned when an identity has never been registered.
	ErrUserNotFound = errors.New("user not found")
	// ErrStorage wraps any failure of the underlying store. The whole command is safe to retry.
	ErrStorage = errors.New("storage failure")
)

// Validation returns an ErrValidation carrying the given reason.
func Validation(reason string) error {
	return fmt.Errorf("%w: %s", ErrValidation, reason)
}

// Storage wraps err as an ErrStorage for the named operation.
func Storage(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrStorage, op, err)
}

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
