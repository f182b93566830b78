package repository

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/mergington/activities/internal/domain/activity"
)

func testSeed() map[string]activity.Activity {
	return map[string]activity.Activity{
		"Basketball": {
			Description:     "Team practice",
			Schedule:        "Mondays",
			MaxParticipants: 2,
			Participants:    []string{"liam@mergington.edu"},
		},
		"Art Studio": {
			Description:     "Painting",
			Schedule:        "Wednesdays",
			MaxParticipants: 10,
			Participants:    []string{},
		},
	}
}

func TestMemStore_BasicOperations(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore(ctx, testSeed())
	defer store.Close()

	if count := store.Count(ctx); count != 2 {
		t.Fatalf("expected 2 activities, got %d", count)
	}
	if total := store.Participants(ctx); total != 1 {
		t.Fatalf("expected 1 participant, got %d", total)
	}

	if err := store.AddParticipant(ctx, "Basketball", "a@x.edu"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	a := store.List(ctx)["Basketball"]
	if a.Name != "Basketball" {
		t.Errorf("expected name Basketball, got %q", a.Name)
	}
	if !slices.Equal(a.Participants, []string{"liam@mergington.edu", "a@x.edu"}) {
		t.Errorf("unexpected roster order: %v", a.Participants)
	}

	if err := store.RemoveParticipant(ctx, "Basketball", "liam@mergington.edu"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	list := store.List(ctx)
	if !slices.Equal(list["Basketball"].Participants, []string{"a@x.edu"}) {
		t.Errorf("unexpected roster after unregister: %v", list["Basketball"].Participants)
	}
	if total := store.Participants(ctx); total != 1 {
		t.Errorf("expected 1 participant, got %d", total)
	}
}

func TestMemStore_Rejections(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore(ctx, testSeed())
	defer store.Close()

	tests := []struct {
		name string
		op   func() error
		kind error
	}{
		{"signup unknown activity", func() error { return store.AddParticipant(ctx, "NonExistent", "a@x.edu") }, ErrNotFound},
		{"unregister unknown activity", func() error { return store.RemoveParticipant(ctx, "NonExistent", "a@x.edu") }, ErrNotFound},
		{"duplicate signup", func() error { return store.AddParticipant(ctx, "Basketball", "liam@mergington.edu") }, ErrAlreadySignedUp},
		{"unregister non-member", func() error { return store.RemoveParticipant(ctx, "Art Studio", "nobody@x.edu") }, ErrNotSignedUp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := store.List(ctx)
			err := tt.op()
			if !errors.Is(err, tt.kind) {
				t.Fatalf("expected %v, got %v", tt.kind, err)
			}
			var rosterErr *activity.RosterError
			if !errors.As(err, &rosterErr) {
				t.Fatalf("expected *activity.RosterError, got %T", err)
			}
			after := store.List(ctx)
			for name := range before {
				if !slices.Equal(before[name].Participants, after[name].Participants) {
					t.Errorf("rejected change mutated %s: %v -> %v", name, before[name].Participants, after[name].Participants)
				}
			}
		})
	}

	if _, ok := store.List(ctx)["NonExistent"]; ok {
		t.Error("rejected changes must not create activities")
	}
}

func TestMemStore_SignupUnregisterScenario(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore(ctx, testSeed())
	defer store.Close()

	const email = "a@x.edu"
	if err := store.AddParticipant(ctx, "Basketball", email); err != nil {
		t.Fatalf("first signup: %v", err)
	}
	if !store.List(ctx)["Basketball"].HasParticipant(email) {
		t.Fatal("expected email listed after signup")
	}
	if err := store.AddParticipant(ctx, "Basketball", email); !errors.Is(err, ErrAlreadySignedUp) {
		t.Fatalf("second signup: expected ErrAlreadySignedUp, got %v", err)
	}
	if err := store.RemoveParticipant(ctx, "Basketball", email); err != nil {
		t.Fatalf("unregister: %v", err)
	}
	if store.List(ctx)["Basketball"].HasParticipant(email) {
		t.Fatal("expected email gone after unregister")
	}
	if err := store.RemoveParticipant(ctx, "Basketball", email); !errors.Is(err, ErrNotSignedUp) {
		t.Fatalf("second unregister: expected ErrNotSignedUp, got %v", err)
	}
}

func TestMemStore_Capacity(t *testing.T) {
	ctx := context.Background()

	t.Run("not enforced by default", func(t *testing.T) {
		store := NewMemStore(ctx, testSeed())
		defer store.Close()
		for i := 0; i < 5; i++ {
			if err := store.AddParticipant(ctx, "Basketball", fmt.Sprintf("s%d@x.edu", i)); err != nil {
				t.Fatalf("signup %d: %v", i, err)
			}
		}
		if n := len(store.List(ctx)["Basketball"].Participants); n != 6 {
			t.Errorf("expected 6 participants past the cap, got %d", n)
		}
	})

	t.Run("enforced", func(t *testing.T) {
		store := NewMemStore(ctx, testSeed(), WithCapacityEnforcement(true))
		defer store.Close()
		if err := store.AddParticipant(ctx, "Basketball", "s1@x.edu"); err != nil {
			t.Fatalf("signup within cap: %v", err)
		}
		err := store.AddParticipant(ctx, "Basketball", "s2@x.edu")
		if !errors.Is(err, ErrActivityFull) {
			t.Fatalf("expected ErrActivityFull, got %v", err)
		}
		if err.Error() != "Basketball is full" {
			t.Errorf("unexpected detail %q", err.Error())
		}
		// A duplicate into a full activity still reports the duplicate.
		if err := store.AddParticipant(ctx, "Basketball", "s1@x.edu"); !errors.Is(err, ErrAlreadySignedUp) {
			t.Errorf("expected ErrAlreadySignedUp, got %v", err)
		}
	})
}

func TestMemStore_ListReturnsCopies(t *testing.T) {
	ctx := context.Background()
	seed := testSeed()
	store := NewMemStore(ctx, seed)
	defer store.Close()

	seed["Basketball"].Participants[0] = "mutated-seed@x.edu"

	list := store.List(ctx)
	list["Basketball"].Participants[0] = "mutated-list@x.edu"
	delete(list, "Art Studio")

	again := store.List(ctx)
	if got := again["Basketball"].Participants[0]; got != "liam@mergington.edu" {
		t.Errorf("directory shares memory with callers, got %q", got)
	}
	if _, ok := again["Art Studio"]; !ok {
		t.Error("deleting from a listed map removed an activity")
	}
	if len(again) != store.Count(ctx) {
		t.Errorf("list size %d != count %d", len(again), store.Count(ctx))
	}
}

func TestMemStore_ConcurrentSignups(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore(ctx, testSeed())
	defer store.Close()

	const workers = 16
	const perWorker = 50

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				email := fmt.Sprintf("w%d-%d@x.edu", w, i)
				if err := store.AddParticipant(ctx, "Art Studio", email); err != nil {
					t.Errorf("signup %s: %v", email, err)
				}
				_ = store.List(ctx)
			}
		}(w)
	}
	wg.Wait()

	if n := len(store.List(ctx)["Art Studio"].Participants); n != workers*perWorker {
		t.Fatalf("lost updates: expected %d participants, got %d", workers*perWorker, n)
	}

	// Everyone races to sign the same email up: exactly one wins.
	var won sync.WaitGroup
	results := make(chan error, workers)
	for w := 0; w < workers; w++ {
		won.Add(1)
		go func() {
			defer won.Done()
			results <- store.AddParticipant(ctx, "Basketball", "race@x.edu")
		}()
	}
	won.Wait()
	close(results)

	var ok, dup int
	for err := range results {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, ErrAlreadySignedUp):
			dup++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	if ok != 1 || dup != workers-1 {
		t.Errorf("expected 1 success and %d duplicates, got %d and %d", workers-1, ok, dup)
	}
}

func TestMemStore_MetricsUpdater(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	store := NewMemStore(ctx, testSeed(), WithMetricsUpdateInterval(5*time.Millisecond))

	time.Sleep(20 * time.Millisecond)
	cancel()

	done := make(chan struct{})
	go func() {
		_ = store.Close()
		_ = store.Close()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Close did not return")
	}
}
