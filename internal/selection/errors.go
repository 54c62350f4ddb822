package selection

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSelection means the value is not in the catalog at the
	// addressed level. Pickers only offer valid options, so this indicates
	// a data/UI desync rather than user error.
	ErrInvalidSelection = errors.New("invalid selection")
	// ErrPreconditionViolation means the parent level is unset.
	ErrPreconditionViolation = errors.New("precondition violation")
)

// Error describes a rejected transition.
type Error struct {
	Op    string
	Level Level
	Value string
	// Suggestion is the closest valid option, when one is near enough.
	Suggestion string
	Err        error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := fmt.Sprintf("selection: %s %s %q: %v", e.Op, e.Level, e.Value, e.Err)
	if e.Suggestion != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", e.Suggestion)
	}
	return msg
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
