package ports

import (
	"context"
	"testing"

	"github.com/aretw0/cliching/pkg/divination"
)

// RunSessionStoreContract verifies that a SessionStore implementation obeys
// the interface semantics. Every adapter test should call it.
func RunSessionStoreContract(t *testing.T, store SessionStore) {
	t.Helper()
	ctx := context.Background()

	caster := divination.NewCaster(1)
	original := caster.Cast()
	session := &divination.Session{
		Question: "contract",
		Original: original,
	}

	// 1. Load of an unknown session reports ErrSessionNotFound.
	_, err := store.Load(ctx, "missing")
	if err != divination.ErrSessionNotFound {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}

	// 2. Save then Load round-trips the session.
	if err := store.Save(ctx, "s1", session); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := store.Load(ctx, "s1")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Question != session.Question {
		t.Errorf("question mismatch: got %q", loaded.Question)
	}
	if loaded.Original == nil || loaded.Original.Identity() != original.Identity() {
		t.Errorf("original hexagram did not survive the round trip")
	}
	if loaded.Changed != nil {
		t.Errorf("expected no derived hexagram, got one")
	}

	// 3. Mutating the loaded copy must not leak back into the store.
	loaded.Question = "mutated"
	again, err := store.Load(ctx, "s1")
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if again.Question != "contract" {
		t.Errorf("store returned aliased session state")
	}

	// 4. Save overwrites, including a derived hexagram.
	changed, err := original.Change(original.MutablePositions())
	if err != nil {
		t.Fatalf("change failed: %v", err)
	}
	session.Changed = changed
	if err := store.Save(ctx, "s1", session); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}

	loaded, err = store.Load(ctx, "s1")
	if err != nil {
		t.Fatalf("load after overwrite failed: %v", err)
	}
	if loaded.Changed == nil || loaded.Changed.Identity() != changed.Identity() {
		t.Errorf("derived hexagram did not survive the round trip")
	}

	// 5. Delete removes the session; deleting again is not an error.
	if err := store.Delete(ctx, "s1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := store.Load(ctx, "s1"); err != divination.ErrSessionNotFound {
		t.Fatalf("expected ErrSessionNotFound after delete, got %v", err)
	}
	if err := store.Delete(ctx, "s1"); err != nil {
		t.Fatalf("second delete should be a no-op, got %v", err)
	}
}
