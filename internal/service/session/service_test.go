package session

import (
	"sync"
	"testing"
	"time"
)

func TestCreateAndGet(t *testing.T) {
	svc := NewService()

	created := svc.Create()
	if created.ID == "" {
		t.Fatal("expected a session id")
	}
	if created.Used != 0 || created.Limit != AIQuestionLimit {
		t.Fatalf("unexpected quota state: used=%d limit=%d", created.Used, created.Limit)
	}

	got, ok := svc.Get(created.ID)
	if !ok {
		t.Fatal("expected session to exist")
	}
	if got.ID != created.ID {
		t.Fatalf("unexpected session ID: got %s want %s", got.ID, created.ID)
	}
}

func TestGetExpiredEvicts(t *testing.T) {
	now := time.Now()
	svc := NewServiceWithClock(func() time.Time { return now })

	created := svc.Create()

	now = now.Add(31 * time.Minute)

	if _, ok := svc.Get(created.ID); ok {
		t.Fatal("expected expired session to be absent")
	}
	if svc.Len() != 0 {
		t.Fatalf("expected stale entry to be evicted, table has %d", svc.Len())
	}
}

func TestConsumeRespectsLimit(t *testing.T) {
	svc := NewService()
	created := svc.Create()

	for i := 0; i < AIQuestionLimit; i++ {
		if !svc.Consume(created.ID) {
			t.Fatalf("consume %d should succeed", i+1)
		}
	}

	if svc.Consume(created.ID) {
		t.Fatal("consume past the limit should fail")
	}
	if remaining := svc.Remaining(created.ID); remaining != 0 {
		t.Fatalf("expected 0 remaining, got %d", remaining)
	}
}

func TestConsumeMissingOrExpired(t *testing.T) {
	now := time.Now()
	svc := NewServiceWithClock(func() time.Time { return now })

	if svc.Consume("missing") {
		t.Fatal("consume on a missing session should fail")
	}

	created := svc.Create()
	now = now.Add(31 * time.Minute)

	if svc.Consume(created.ID) {
		t.Fatal("consume on an expired session should fail")
	}
	if remaining := svc.Remaining(created.ID); remaining != 0 {
		t.Fatalf("expected 0 remaining for expired session, got %d", remaining)
	}
}

func TestConsumeConcurrentNeverExceedsLimit(t *testing.T) {
	svc := NewService()
	created := svc.Create()

	const workers = 50
	var wg sync.WaitGroup
	var mu sync.Mutex
	granted := 0

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if svc.Consume(created.ID) {
				mu.Lock()
				granted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if granted != AIQuestionLimit {
		t.Fatalf("expected exactly %d grants, got %d", AIQuestionLimit, granted)
	}

	got, ok := svc.Get(created.ID)
	if !ok {
		t.Fatal("session should still exist")
	}
	if got.Used > got.Limit {
		t.Fatalf("used %d exceeds limit %d", got.Used, got.Limit)
	}
}

func TestSweepRemovesOnlyExpired(t *testing.T) {
	now := time.Now()
	svc := NewServiceWithClock(func() time.Time { return now })

	old := svc.Create()
	now = now.Add(31 * time.Minute)
	fresh := svc.Create()

	removed := svc.Sweep()
	if removed != 1 {
		t.Fatalf("expected 1 removal, got %d", removed)
	}

	if _, ok := svc.Get(old.ID); ok {
		t.Fatal("expired session should be gone")
	}
	if _, ok := svc.Get(fresh.ID); !ok {
		t.Fatal("fresh session should survive the sweep")
	}
}

func TestRemaining(t *testing.T) {
	svc := NewService()
	created := svc.Create()

	if remaining := svc.Remaining(created.ID); remaining != AIQuestionLimit {
		t.Fatalf("expected %d remaining, got %d", AIQuestionLimit, remaining)
	}

	svc.Consume(created.ID)
	if remaining := svc.Remaining(created.ID); remaining != AIQuestionLimit-1 {
		t.Fatalf("expected %d remaining, got %d", AIQuestionLimit-1, remaining)
	}

	if remaining := svc.Remaining("missing"); remaining != 0 {
		t.Fatalf("expected 0 remaining for missing session, got %d", remaining)
	}
}
