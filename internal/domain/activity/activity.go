// Package activity defines the activity roster model and its signup rules.
package activity

import (
	"slices"
)

// Activity is a named school offering with a participant roster.
// Participants keep insertion order for display; emails are unique per activity.
type Activity struct {
	Name            string   `json:"-" koanf:"-"`
	Description     string   `json:"description" koanf:"description"`
	Schedule        string   `json:"schedule" koanf:"schedule"`
	MaxParticipants int      `json:"max_participants" koanf:"max_participants"`
	Participants    []string `json:"participants" koanf:"participants"`
}

// Clone returns a copy whose roster does not share memory with a.
func (a Activity) Clone() Activity {
	c := a
	c.Participants = make([]string, len(a.Participants))
	copy(c.Participants, a.Participants)
	return c
}

// HasParticipant reports whether email is on the roster.
func (a Activity) HasParticipant(email string) bool {
	return slices.Contains(a.Participants, email)
}

// Full reports whether the roster reached max_participants.
// A non-positive capacity means the activity has no cap.
func (a Activity) Full() bool {
	return a.MaxParticipants > 0 && len(a.Participants) >= a.MaxParticipants
}

// SpotsLeft returns the remaining capacity, or -1 when the activity has no cap.
func (a Activity) SpotsLeft() int {
	if a.MaxParticipants <= 0 {
		return -1
	}
	left := a.MaxParticipants - len(a.Participants)
	if left < 0 {
		return 0
	}
	return left
}

// Validate checks roster invariants on seed data.
func (a Activity) Validate() error {
	seen := make(map[string]struct{}, len(a.Participants))
	for _, email := range a.Participants {
		if _, dup := seen[email]; dup {
			return &RosterError{Kind: ErrAlreadySignedUp, Activity: a.Name, Email: email}
		}
		seen[email] = struct{}{}
	}
	return nil
}
