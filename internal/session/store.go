// Package session keeps per-user conversation state in memory and makes
// sure at most one turn mutates a given user's session at a time.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/alexanderramin/moodflix/internal/domain"
)

// DefaultIdleTTL is how long a session may sit untouched before the next
// turn starts from scratch.
const DefaultIdleTTL = 300 * time.Second

// Release hands the session back to the store. It must be called exactly
// once per successful Acquire.
type Release func()

// Store hands out exclusive access to a user's session.
type Store interface {
	Acquire(ctx context.Context, userID string) (*domain.Session, Release, error)
	Reset(ctx context.Context, userID string) error
	PruneIdle(now time.Time) int
	Len() int
}

type entry struct {
	lock    chan struct{}
	session *domain.Session
}

// MemoryStore is the process-local Store. Different users proceed in
// parallel; turns of the same user are serialized.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*entry
	ttl     time.Duration
	now     func() time.Time
	logger  *slog.Logger
}

type Option func(*MemoryStore)

// WithClock overrides time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *MemoryStore) { s.now = now }
}

// WithIdleTTL sets the idle expiry. Zero or negative disables it.
func WithIdleTTL(ttl time.Duration) Option {
	return func(s *MemoryStore) { s.ttl = ttl }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *MemoryStore) { s.logger = logger }
}

func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{
		entries: make(map[string]*entry),
		ttl:     DefaultIdleTTL,
		now:     time.Now,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemoryStore) entryFor(userID string) *entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[userID]
	if !ok {
		e = &entry{
			lock:    make(chan struct{}, 1),
			session: domain.NewSession(userID, s.now()),
		}
		s.entries[userID] = e
	}
	return e
}

func (s *MemoryStore) current(userID string, e *entry) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entries[userID] == e
}

// Acquire blocks until the caller owns the user's session or ctx is done.
// A session idle for longer than the TTL is reset before it is returned.
// LastActivity is stamped on acquisition.
func (s *MemoryStore) Acquire(ctx context.Context, userID string) (*domain.Session, Release, error) {
	var e *entry
	for {
		e = s.entryFor(userID)
		select {
		case e.lock <- struct{}{}:
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		}
		if s.current(userID, e) {
			break
		}
		// Pruned while we waited; retry against the replacement entry.
		<-e.lock
	}

	now := s.now()
	if e.session.IdleSince(now, s.ttl) {
		s.logger.Info("session expired",
			"user_id", userID,
			"idle", now.Sub(e.session.LastActivity).Round(time.Second).String(),
		)
		e.session.Reset()
	}
	e.session.LastActivity = now

	var once sync.Once
	release := func() {
		once.Do(func() { <-e.lock })
	}
	return e.session, release, nil
}

// Reset wipes the user's session, waiting for any in-flight turn.
func (s *MemoryStore) Reset(ctx context.Context, userID string) error {
	sess, release, err := s.Acquire(ctx, userID)
	if err != nil {
		return err
	}
	defer release()
	sess.Reset()
	return nil
}

// PruneIdle drops sessions idle past the TTL and returns how many were
// removed. Sessions held by an in-flight turn are left alone.
func (s *MemoryStore) PruneIdle(now time.Time) int {
	if s.ttl <= 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	pruned := 0
	for id, e := range s.entries {
		select {
		case e.lock <- struct{}{}:
		default:
			continue
		}
		if e.session.IdleSince(now, s.ttl) {
			delete(s.entries, id)
			pruned++
		}
		<-e.lock
	}
	return pruned
}

// Len reports how many sessions are currently tracked.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// RunJanitor prunes idle sessions every interval until ctx is cancelled.
func (s *MemoryStore) RunJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.PruneIdle(s.now()); n > 0 {
				s.logger.Debug("pruned idle sessions", "count", n)
			}
		}
	}
}
