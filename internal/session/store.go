// Package session keeps one drawer engine per browser visitor in memory.
//
// Sessions live in an LRU with a sliding idle TTL; nothing is written to disk,
// so a restarted server starts every visitor from an empty drawer.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"cashdrawer/internal/cache"
	"cashdrawer/internal/drawer"
)

// Session pairs an engine with the lock that serializes requests touching it.
type Session struct {
	ID string

	mu     sync.Mutex
	engine *drawer.Engine
}

// Do runs fn with exclusive access to the session's engine.
func (s *Session) Do(fn func(e *drawer.Engine)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.engine)
}

// Observer receives session lifecycle events. Metrics implements it.
type Observer interface {
	SessionCreated()
	SessionEvicted(reason string)
}

type Config struct {
	MaxSessions int
	IdleTTL     time.Duration
}

type Store struct {
	sessions *cache.LRUCache[*Session]
	observer Observer
}

// NewStore creates an empty store. observer may be nil.
func NewStore(cfg Config, observer Observer, opts ...cache.Option[*Session]) *Store {
	s := &Store{observer: observer}
	opts = append(opts, cache.WithEvictHook(func(_ string, _ *Session, reason cache.EvictReason) {
		if s.observer != nil {
			s.observer.SessionEvicted(string(reason))
		}
	}))
	s.sessions = cache.NewLRUCache[*Session](cfg.MaxSessions, cfg.IdleTTL, opts...)
	return s
}

// Create starts a fresh session with an empty drawer.
func (s *Store) Create() *Session {
	sess := s.newSession()
	s.sessions.Set(sess.ID, sess)
	return sess
}

// Get returns a live session and extends its lifetime.
func (s *Store) Get(id string) (*Session, bool) {
	if id == "" {
		return nil, false
	}
	return s.sessions.Get(id)
}

// GetOrCreate resolves id, starting a new session when id is empty, unknown
// or expired. A new session always gets a generated ID, never the caller's.
func (s *Store) GetOrCreate(id string) (sess *Session, created bool) {
	if sess, ok := s.Get(id); ok {
		return sess, false
	}
	return s.Create(), true
}

// Delete drops a session.
func (s *Store) Delete(id string) {
	s.sessions.Delete(id)
}

// Size is the number of sessions currently held.
func (s *Store) Size() int {
	return s.sessions.Size()
}

// Cleaner exposes the backing cache to a cache.Manager.
func (s *Store) Cleaner() cache.Cleaner {
	return s.sessions
}

func (s *Store) newSession() *Session {
	if s.observer != nil {
		s.observer.SessionCreated()
	}
	return &Session{ID: uuid.NewString(), engine: drawer.New()}
}
