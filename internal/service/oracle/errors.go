package oracle

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotConfigured means no LLM credential is available. Recoverable per
	// request, never a startup failure.
	ErrNotConfigured = errors.New("oracle not configured")
	// ErrOverloaded is the upstream "temporarily overloaded" signal. It is
	// the only retryable condition.
	ErrOverloaded = errors.New("oracle temporarily overloaded")
	// ErrRateLimited is an upstream-reported quota/rate limit.
	ErrRateLimited = errors.New("oracle rate limited")
)

// Classify folds a raw model error into the gateway taxonomy. The Ark SDK
// surfaces upstream HTTP statuses as message text, so matching is by
// substring.
func Classify(err error) error {
	if err == nil {
		return nil
	}

	message := strings.ToLower(err.Error())
	switch {
	case containsAny(message, "overloaded", "503", "service unavailable", "server is busy"):
		return fmt.Errorf("%w: %v", ErrOverloaded, err)
	case containsAny(message, "429", "rate limit", "too many requests", "quota"):
		return fmt.Errorf("%w: %v", ErrRateLimited, err)
	default:
		return err
	}
}

func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
