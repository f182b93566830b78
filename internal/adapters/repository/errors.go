package repository

import "github.com/mergington/activities/internal/domain/activity"

// Sentinel kinds for directory errors. They alias the domain kinds so callers
// can match either package.
var (
	ErrNotFound        = activity.ErrNotFound
	ErrAlreadySignedUp = activity.ErrAlreadySignedUp
	ErrNotSignedUp     = activity.ErrNotSignedUp
	ErrActivityFull    = activity.ErrActivityFull
)
