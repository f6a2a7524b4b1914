package idempotency

import (
	"testing"
	"time"
)

func TestGuardRemember(t *testing.T) {
	g := NewGuard(24 * time.Hour)

	if !g.Remember("key-1") {
		t.Fatal("Remember(key-1) first call = false, want true")
	}
	if g.Remember("key-1") {
		t.Fatal("Remember(key-1) second call = true, want false")
	}
	if !g.Remember("key-2") {
		t.Fatal("Remember(key-2) = false, want true")
	}
}

func TestGuardBlankKeyAlwaysPasses(t *testing.T) {
	g := NewGuard(24 * time.Hour)

	if !g.Remember("") {
		t.Fatal("Remember(\"\") = false, want true")
	}
	if !g.Remember("") {
		t.Fatal("Remember(\"\") repeated = false, want true")
	}
	if g.IsDuplicate("") {
		t.Fatal("IsDuplicate(\"\") = true, want false")
	}
	if g.Size() != 0 {
		t.Fatalf("Size() = %d after blank keys, want 0", g.Size())
	}
}

func TestGuardIsDuplicateDoesNotRegister(t *testing.T) {
	g := NewGuard(24 * time.Hour)

	if g.IsDuplicate("key-1") {
		t.Fatal("IsDuplicate before Remember = true, want false")
	}
	if !g.Remember("key-1") {
		t.Fatal("Remember after IsDuplicate = false, want true")
	}
	if !g.IsDuplicate("key-1") {
		t.Fatal("IsDuplicate after Remember = false, want true")
	}
}

func TestGuardSweepEvictsExpiredKeys(t *testing.T) {
	current := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	g := NewGuard(24 * time.Hour)
	g.now = func() time.Time { return current }

	g.Remember("old")
	current = current.Add(12 * time.Hour)
	g.Remember("fresh")

	current = current.Add(13 * time.Hour)
	if removed := g.Sweep(); removed != 1 {
		t.Fatalf("Sweep() = %d, want 1", removed)
	}

	if !g.IsDuplicate("fresh") {
		t.Fatal("fresh key evicted too early")
	}
	if g.IsDuplicate("old") {
		t.Fatal("expired key still registered")
	}
	if !g.Remember("old") {
		t.Fatal("Remember(old) after eviction = false, want true")
	}
}
