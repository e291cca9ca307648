package oracle

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func recordingPolicy(recorded *[]time.Duration) Policy {
	policy := OverloadPolicy()
	policy.Sleep = func(_ context.Context, d time.Duration) error {
		*recorded = append(*recorded, d)
		return nil
	}
	return policy
}

func TestDoRetriesOverloadWithBackoffSchedule(t *testing.T) {
	var delays []time.Duration
	policy := recordingPolicy(&delays)

	calls := 0
	result, err := Do(context.Background(), policy, func(ctx context.Context) (string, error) {
		calls++
		if calls <= 3 {
			return "", fmt.Errorf("%w: attempt %d", ErrOverloaded, calls)
		}
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if result != "ok" {
		t.Fatalf("unexpected result %q", result)
	}
	if calls != 4 {
		t.Fatalf("expected 4 attempts, got %d", calls)
	}

	want := []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}
	if len(delays) != len(want) {
		t.Fatalf("expected %d sleeps, got %d", len(want), len(delays))
	}
	for i, d := range delays {
		if d < want[i] {
			t.Fatalf("delay %d too short: %v < %v", i, d, want[i])
		}
	}
}

func TestDoSurfacesLastOverloadAfterExhaustion(t *testing.T) {
	var delays []time.Duration
	policy := recordingPolicy(&delays)

	calls := 0
	_, err := Do(context.Background(), policy, func(ctx context.Context) (string, error) {
		calls++
		return "", fmt.Errorf("%w: attempt %d", ErrOverloaded, calls)
	})
	if !errors.Is(err, ErrOverloaded) {
		t.Fatalf("expected overload error, got %v", err)
	}
	if calls != 4 {
		t.Fatalf("expected 4 attempts, got %d", calls)
	}
}

func TestDoDoesNotRetryOtherErrors(t *testing.T) {
	var delays []time.Duration
	policy := recordingPolicy(&delays)

	wantErr := errors.New("boom")
	calls := 0
	_, err := Do(context.Background(), policy, func(ctx context.Context) (string, error) {
		calls++
		return "", wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected the original error, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected a single attempt, got %d", calls)
	}
	if len(delays) != 0 {
		t.Fatalf("expected no sleeps, got %d", len(delays))
	}
}

func TestDoStopsWhenContextCancelledDuringSleep(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	policy := OverloadPolicy()

	calls := 0
	_, err := Do(ctx, policy, func(ctx context.Context) (string, error) {
		calls++
		return "", fmt.Errorf("%w: busy", ErrOverloaded)
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context error, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected a single attempt before cancellation, got %d", calls)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"overloaded text", errors.New("model is temporarily Overloaded"), ErrOverloaded},
		{"http 503", errors.New("upstream returned 503"), ErrOverloaded},
		{"http 429", errors.New("request failed with status 429"), ErrRateLimited},
		{"quota text", errors.New("quota exceeded for project"), ErrRateLimited},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.err)
			if !errors.Is(got, tt.want) {
				t.Fatalf("Classify(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}

	plain := errors.New("connection reset")
	if got := Classify(plain); !errors.Is(got, plain) {
		t.Fatalf("generic errors should pass through, got %v", got)
	}
	if Classify(nil) != nil {
		t.Fatal("nil should classify to nil")
	}
}
