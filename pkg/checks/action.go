// SPDX-License-Identifier: MPL-2.0

package checks

import (
	"errors"
	"fmt"

	"scriptkit/pkg/termlog"
)

// ErrInvalidAction is the sentinel error wrapped by InvalidActionError.
var ErrInvalidAction = errors.New("invalid action")

type (
	// Action decides what a failed check does.
	Action string

	// DoOptions configures a single Action dispatch.
	DoOptions struct {
		// Prog names the calling script or step in printed messages.
		Prog string
		// FailWith is the error ActionFail returns; when nil, a plain error
		// built from the message is returned instead.
		FailWith error
		// Logger overrides the package-level default logger.
		Logger *termlog.Logger
	}

	// InvalidActionError is returned when an Action value is not recognized.
	// It wraps ErrInvalidAction for errors.Is() compatibility.
	InvalidActionError struct {
		Value Action
	}
)

const (
	// ActionDie prints an error message and exits the process.
	ActionDie Action = "die"
	// ActionError prints an error message and continues.
	ActionError Action = "error"
	// ActionWarn prints a warning message and continues.
	ActionWarn Action = "warn"
	// ActionFail returns the failure as an error to the caller.
	ActionFail Action = "fail"
	// ActionNothing stays silent and continues.
	ActionNothing Action = "nothing"
)

// String returns the string representation of the Action.
func (a Action) String() string { return string(a) }

// IsValid returns whether the Action is one of the defined dispositions,
// and a list of validation errors if it is not.
func (a Action) IsValid() (bool, []error) {
	switch a {
	case ActionDie, ActionError, ActionWarn, ActionFail, ActionNothing:
		return true, nil
	default:
		return false, []error{&InvalidActionError{Value: a}}
	}
}

// Error implements the error interface for InvalidActionError.
func (e *InvalidActionError) Error() string {
	return fmt.Sprintf("invalid action %q (valid: die, error, warn, fail, nothing)", e.Value)
}

// Unwrap returns ErrInvalidAction for errors.Is() compatibility.
func (e *InvalidActionError) Unwrap() error { return ErrInvalidAction }

// Do dispatches a failed-check message according to the Action. Only
// ActionFail produces a non-nil error; ActionDie does not return.
func (a Action) Do(msg string, opts DoOptions) error {
	l := opts.Logger
	if l == nil {
		l = termlog.Default()
	}
	switch a {
	case ActionNothing:
		return nil
	case ActionDie:
		l.Die(opts.Prog, msg)
		return nil
	case ActionWarn:
		l.Warn(opts.Prog, msg)
		return nil
	case ActionError:
		l.Err(opts.Prog, msg)
		return nil
	case ActionFail:
		if opts.FailWith != nil {
			return opts.FailWith
		}
		return errors.New(msg)
	default:
		return &InvalidActionError{Value: a}
	}
}
