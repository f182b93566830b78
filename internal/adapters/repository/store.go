// Package repository defines the activity directory interface and its
// in-memory implementation.
package repository

import (
	"context"

	"github.com/mergington/activities/internal/domain/activity"
)

// Store provides read/write access to the activity directory.
type Store interface {
	// List returns a copy of every activity keyed by name.
	List(ctx context.Context) map[string]activity.Activity

	// AddParticipant appends email to the roster of name.
	AddParticipant(ctx context.Context, name, email string) error

	// RemoveParticipant removes email from the roster of name.
	RemoveParticipant(ctx context.Context, name, email string) error

	// Count returns the number of activities.
	Count(ctx context.Context) int

	// Participants returns the total number of roster entries across activities.
	Participants(ctx context.Context) int
}
