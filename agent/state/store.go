package state

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrNilSession      = errors.New("session is nil")
)

const defaultSessionTTL = 24 * time.Hour

// Store is the persistence contract used by the dispatcher. Implementations
// must be safe for concurrent use by independent sessions; serializing turns
// within one session is the dispatcher's job.
type Store interface {
	Load(ctx context.Context, sessionID string) (*Session, error)
	Save(ctx context.Context, sess *Session) error
	Delete(ctx context.Context, sessionID string) error
}

// StoreOption customizes MemoryStore.
type StoreOption func(*MemoryStore)

func WithTTL(ttl time.Duration) StoreOption {
	return func(s *MemoryStore) {
		s.ttl = ttl
	}
}

// WithClock injects a time source for tests.
func WithClock(now func() time.Time) StoreOption {
	return func(s *MemoryStore) {
		if now != nil {
			s.now = now
		}
	}
}

// MemoryStore keeps sessions in process memory with lazy TTL eviction.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]memoryEntry
	ttl      time.Duration
	now      func() time.Time
}

type memoryEntry struct {
	sess    *Session
	savedAt time.Time
}

func NewMemoryStore(opts ...StoreOption) *MemoryStore {
	s := &MemoryStore{
		sessions: make(map[string]memoryEntry),
		ttl:      defaultSessionTTL,
		now:      time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *MemoryStore) Load(_ context.Context, sessionID string) (*Session, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, ErrEmptySessionID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if s.expired(entry) {
		delete(s.sessions, sessionID)
		return nil, ErrSessionNotFound
	}
	return entry.sess, nil
}

func (s *MemoryStore) Save(_ context.Context, sess *Session) error {
	if sess == nil {
		return ErrNilSession
	}
	if strings.TrimSpace(sess.ID) == "" {
		return ErrEmptySessionID
	}
	if err := sess.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = memoryEntry{sess: sess, savedAt: s.now().UTC()}
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return ErrEmptySessionID
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

// Sweep evicts every expired session and returns how many were removed.
// Callers that want proactive eviction run this on a ticker; Load already
// evicts lazily.
func (s *MemoryStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, entry := range s.sessions {
		if s.expired(entry) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Len reports the number of stored sessions, expired ones included.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *MemoryStore) expired(entry memoryEntry) bool {
	if s.ttl <= 0 {
		return false
	}
	return s.now().UTC().Sub(entry.savedAt) > s.ttl
}
