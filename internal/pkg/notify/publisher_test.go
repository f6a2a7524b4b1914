package notify

import (
	"BlogPress/internal/api/config"
	"BlogPress/internal/api/dto"
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type fakeCaller struct {
	mu       sync.Mutex
	failures int
	keys     []string
	kinds    []string
}

func (f *fakeCaller) record(kind, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.kinds = append(f.kinds, kind)
	f.keys = append(f.keys, key)
	if f.failures > 0 {
		f.failures--
		return errors.New("connection refused")
	}
	return nil
}

func (f *fakeCaller) NotifyBlogCreated(_ context.Context, key string, _ *dto.BlogCreatedPayload) error {
	return f.record("blog-created", key)
}

func (f *fakeCaller) NotifyMilestone(_ context.Context, key string, _ *dto.MilestonePayload) error {
	return f.record("milestone", key)
}

func (f *fakeCaller) NotifyUserRegistered(_ context.Context, key string, _ *dto.UserRegisteredPayload) error {
	return f.record("user-registered", key)
}

func newTestPublisher(caller Caller, breaker *Breaker) *publisherImpl {
	p := NewPublisher(caller, breaker, config.NotifyConfig{
		MaxAttempts: 3,
		Workers:     1,
		QueueSize:   16,
	}).(*publisherImpl)
	p.sleep = func(time.Duration) {}
	return p
}

func TestPublisherDeliversOnFirstAttempt(t *testing.T) {
	caller := &fakeCaller{}
	p := newTestPublisher(caller, NewBreaker("test", 10, time.Minute))

	p.PublishMilestone(&dto.MilestonePayload{BlogID: "1", MilestoneType: "LIKES", Count: 10})
	p.Close()

	if len(caller.keys) != 1 {
		t.Fatalf("attempts = %d, want 1", len(caller.keys))
	}
	if caller.kinds[0] != "milestone" {
		t.Fatalf("kind = %q, want milestone", caller.kinds[0])
	}
	if caller.keys[0] == "" {
		t.Fatal("idempotency key is empty")
	}
}

func TestPublisherReusesKeyAcrossRetries(t *testing.T) {
	caller := &fakeCaller{failures: 2}
	p := newTestPublisher(caller, NewBreaker("test", 10, time.Minute))

	p.PublishBlogCreated(&dto.BlogCreatedPayload{BlogID: "1", BlogTitle: "hello"})
	p.Close()

	if len(caller.keys) != 3 {
		t.Fatalf("attempts = %d, want 3", len(caller.keys))
	}
	for i, key := range caller.keys {
		if key != caller.keys[0] {
			t.Fatalf("attempt %d used key %q, first attempt used %q", i+1, key, caller.keys[0])
		}
	}
}

func TestPublisherGivesUpAfterMaxAttempts(t *testing.T) {
	caller := &fakeCaller{failures: 10}
	p := newTestPublisher(caller, NewBreaker("test", 10, time.Minute))

	p.PublishUserRegistered(&dto.UserRegisteredPayload{UserID: "u1", Email: "u1@example.com"})
	p.Close()

	if len(caller.keys) != 3 {
		t.Fatalf("attempts = %d, want 3", len(caller.keys))
	}
}

func TestPublisherSkipsDeliveryWhenBreakerOpen(t *testing.T) {
	caller := &fakeCaller{}
	breaker := NewBreaker("test", 1, time.Minute)
	breaker.MarkFailure()
	p := newTestPublisher(caller, breaker)

	p.PublishMilestone(&dto.MilestonePayload{BlogID: "1", MilestoneType: "VIEWS", Count: 100})
	p.Close()

	if len(caller.keys) != 0 {
		t.Fatalf("attempts = %d, want 0 while breaker open", len(caller.keys))
	}
}

func TestPublisherDropsEventsAfterClose(t *testing.T) {
	caller := &fakeCaller{}
	p := newTestPublisher(caller, NewBreaker("test", 10, time.Minute))
	p.Close()

	// 关闭后提交只能丢弃，不能 panic
	p.PublishMilestone(&dto.MilestonePayload{BlogID: "1", MilestoneType: "LIKES", Count: 5})
	p.Close()

	if len(caller.keys) != 0 {
		t.Fatalf("attempts = %d, want 0 after close", len(caller.keys))
	}
}

func TestPublisherDistinctEventsGetDistinctKeys(t *testing.T) {
	caller := &fakeCaller{}
	p := newTestPublisher(caller, NewBreaker("test", 10, time.Minute))

	p.PublishMilestone(&dto.MilestonePayload{BlogID: "1", MilestoneType: "LIKES", Count: 5})
	p.PublishMilestone(&dto.MilestonePayload{BlogID: "1", MilestoneType: "LIKES", Count: 10})
	p.Close()

	if len(caller.keys) != 2 {
		t.Fatalf("attempts = %d, want 2", len(caller.keys))
	}
	if caller.keys[0] == caller.keys[1] {
		t.Fatal("distinct events shared an idempotency key")
	}
}
