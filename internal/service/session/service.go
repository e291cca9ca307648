package session

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// AIQuestionLimit is the number of free-text AI questions one session may
// spend.
const AIQuestionLimit = 5

const (
	// sessionTTL is the absolute lifetime of a session.
	sessionTTL = 30 * time.Minute
	// SweepInterval is how often expired sessions are removed regardless of
	// access patterns.
	SweepInterval = 5 * time.Minute
)

// Session is a time-boxed, quota-bearing token for one game's AI usage.
type Session struct {
	ID        string    `json:"sessionId"`
	Used      int       `json:"aiQuestionCount"`
	Limit     int       `json:"aiQuestionLimit"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Service owns the process-wide session table. All mutation goes through it,
// so the used/limit invariant cannot race.
type Service struct {
	mu       sync.Mutex
	sessions map[string]*Session
	now      func() time.Time
}

// NewService bootstraps the in-memory session store.
func NewService() *Service {
	return NewServiceWithClock(time.Now)
}

// NewServiceWithClock injects the clock, letting tests drive expiry
// deterministically.
func NewServiceWithClock(now func() time.Time) *Service {
	return &Service{
		sessions: make(map[string]*Session),
		now:      now,
	}
}

// Create allocates a fresh session with a full question quota. It always
// succeeds.
func (s *Service) Create() Session {
	now := s.now().UTC()
	session := &Session{
		ID:        uuid.NewString(),
		Used:      0,
		Limit:     AIQuestionLimit,
		CreatedAt: now,
		ExpiresAt: now.Add(sessionTTL),
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	return *session
}

// Get returns the session if it exists and has not expired. A stale entry is
// evicted on the way out and reported as absent.
func (s *Service) Get(id string) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.lookupLocked(id)
	if !ok {
		return Session{}, false
	}
	return *session, true
}

// Consume spends one AI-question slot. It returns false without mutation
// when the session is absent, expired, or already at its limit.
func (s *Service) Consume(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.lookupLocked(id)
	if !ok {
		return false
	}
	if session.Used >= session.Limit {
		return false
	}

	session.Used++
	return true
}

// Remaining reports the unspent quota, or 0 for an absent/expired session.
func (s *Service) Remaining(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.lookupLocked(id)
	if !ok {
		return 0
	}
	return session.Limit - session.Used
}

// Sweep removes every expired session and reports how many were evicted.
func (s *Service) Sweep() int {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, session := range s.sessions {
		if now.After(session.ExpiresAt) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// StartSweeper runs the periodic expiry sweep until ctx is cancelled.
func (s *Service) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if removed := s.Sweep(); removed > 0 {
					log.Printf("[session] swept %d expired sessions", removed)
				}
			}
		}
	}()
}

// Len reports the number of live table entries, expired or not.
func (s *Service) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// lookupLocked resolves a live session, evicting it when expired. Callers
// must hold s.mu.
func (s *Service) lookupLocked(id string) (*Session, bool) {
	session, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	if s.now().After(session.ExpiresAt) {
		delete(s.sessions, id)
		return nil, false
	}
	return session, true
}
