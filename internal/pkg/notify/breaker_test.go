package notify

import (
	"testing"
	"time"
)

func newTestBreaker(threshold int, cooldown time.Duration) (*Breaker, *time.Time) {
	current := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	b := NewBreaker("test", threshold, cooldown)
	b.now = func() time.Time { return current }
	return b, &current
}

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	b, _ := newTestBreaker(3, time.Minute)

	for i := 0; i < 2; i++ {
		b.MarkFailure()
	}
	if got := b.State(); got != StateClosed {
		t.Fatalf("state = %v, want CLOSED", got)
	}

	b.MarkFailure()
	if got := b.State(); got != StateOpen {
		t.Fatalf("state = %v, want OPEN", got)
	}
	if b.Allow() {
		t.Fatal("Allow() = true while open")
	}
}

func TestBreakerSuccessResetsFailureCount(t *testing.T) {
	b, _ := newTestBreaker(3, time.Minute)

	b.MarkFailure()
	b.MarkFailure()
	b.MarkSuccess()
	b.MarkFailure()
	b.MarkFailure()

	if got := b.State(); got != StateClosed {
		t.Fatalf("state = %v, want CLOSED", got)
	}
}

func TestBreakerHalfOpenProbeSuccess(t *testing.T) {
	b, now := newTestBreaker(1, time.Minute)

	b.MarkFailure()
	if got := b.State(); got != StateOpen {
		t.Fatalf("state = %v, want OPEN", got)
	}

	*now = now.Add(time.Minute)
	if !b.Allow() {
		t.Fatal("Allow() = false after cooldown, want probe allowed")
	}
	if got := b.State(); got != StateHalfOpen {
		t.Fatalf("state = %v, want HALF_OPEN", got)
	}
	if b.Allow() {
		t.Fatal("Allow() = true for second concurrent probe")
	}

	b.MarkSuccess()
	if got := b.State(); got != StateClosed {
		t.Fatalf("state = %v, want CLOSED", got)
	}
	if !b.Allow() {
		t.Fatal("Allow() = false after recovery")
	}
}

func TestBreakerHalfOpenProbeFailureReopens(t *testing.T) {
	b, now := newTestBreaker(1, time.Minute)

	b.MarkFailure()
	*now = now.Add(time.Minute)
	if !b.Allow() {
		t.Fatal("Allow() = false after cooldown")
	}

	b.MarkFailure()
	if got := b.State(); got != StateOpen {
		t.Fatalf("state = %v, want OPEN after failed probe", got)
	}
	if b.Allow() {
		t.Fatal("Allow() = true right after reopening")
	}

	*now = now.Add(time.Minute)
	if !b.Allow() {
		t.Fatal("Allow() = false after second cooldown")
	}
}
