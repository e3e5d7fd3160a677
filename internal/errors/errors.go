package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/habitduel/internal/logger"
)

var (
	// ErrNotFound marks a reference to a user, habit or battle that does not exist.
	ErrNotFound = stderrors.New("not found")

	ErrBattleInProgress = stderrors.New("a battle is already in progress today")
	ErrNoBattle         = stderrors.New("no active battle")
	ErrNotParticipant   = stderrors.New("user is not part of this battle")
	ErrInvalidInput     = stderrors.New("invalid input")
)

// NotFoundError names the kind and id of a missing entity.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

// Is lets errors.Is(err, ErrNotFound) match any NotFoundError.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NotFound returns a NotFoundError for kind and id.
func NotFound(kind, id string) error {
	return &NotFoundError{Kind: kind, ID: id}
}

// Invalid wraps ErrInvalidInput with a message.
func Invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}
