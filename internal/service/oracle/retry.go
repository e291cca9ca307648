package oracle

import (
	"context"
	"errors"
	"time"
)

// Policy bounds a retried operation: one initial attempt plus one retry per
// backoff delay. Sleep is injectable so tests can observe the schedule
// without waiting it out.
type Policy struct {
	Delays    []time.Duration
	Retryable func(error) bool
	Sleep     func(ctx context.Context, d time.Duration) error
}

// OverloadPolicy retries only upstream overload, with the fixed 1s/2s/4s
// backoff schedule.
func OverloadPolicy() Policy {
	return Policy{
		Delays: []time.Duration{time.Second, 2 * time.Second, 4 * time.Second},
		Retryable: func(err error) bool {
			return errors.Is(err, ErrOverloaded)
		},
	}
}

// Do runs fn under the policy. Non-retryable errors propagate immediately;
// exhausting the schedule surfaces the last error.
func Do[T any](ctx context.Context, policy Policy, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	sleep := policy.Sleep
	if sleep == nil {
		sleep = sleepWithContext
	}

	for attempt := 0; ; attempt++ {
		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}

		if policy.Retryable != nil && !policy.Retryable(err) {
			return zero, err
		}
		if attempt >= len(policy.Delays) {
			return zero, err
		}

		if sleepErr := sleep(ctx, policy.Delays[attempt]); sleepErr != nil {
			return zero, sleepErr
		}
	}
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
