package activity

import (
	"errors"
	"fmt"
)

// Sentinel kinds for roster rejections.
var (
	ErrNotFound        = errors.New("activity not found")
	ErrAlreadySignedUp = errors.New("already signed up")
	ErrNotSignedUp     = errors.New("not signed up")
	ErrActivityFull    = errors.New("activity is full")
)

// RosterError describes a rejected roster change. It unwraps to one of the
// sentinel kinds above.
type RosterError struct {
	Kind     error
	Activity string
	Email    string
}

func (e *RosterError) Error() string {
	switch e.Kind {
	case ErrNotFound:
		return "Activity not found"
	case ErrAlreadySignedUp:
		return fmt.Sprintf("%s is already signed up for %s", e.Email, e.Activity)
	case ErrNotSignedUp:
		return fmt.Sprintf("%s is not signed up for %s", e.Email, e.Activity)
	case ErrActivityFull:
		return fmt.Sprintf("%s is full", e.Activity)
	default:
		return fmt.Sprintf("%s: %v", e.Activity, e.Kind)
	}
}

func (e *RosterError) Unwrap() error { return e.Kind }

// IsConflict reports whether err rejects a change against an existing activity.
func IsConflict(err error) bool {
	return errors.Is(err, ErrAlreadySignedUp) ||
		errors.Is(err, ErrNotSignedUp) ||
		errors.Is(err, ErrActivityFull)
}
