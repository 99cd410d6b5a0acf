// internal/store/memory.go
//
// In-memory session store for Word Scramble rounds.
// Each session owns one *game.Engine. The engine itself is not safe for
// concurrent use, so every access goes through Session.Do, which holds the
// session's mutex for the duration of the call.
//
// Characteristics:
//   - Sessions keyed by a random URL-safe ID.
//   - Store map guarded by RWMutex; engines guarded per session.
//   - Idle sessions are dropped by Sweep.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robalobadob/wordscramble/internal/game"
)

// ErrNotFound is returned by Get for unknown or expired sessions.
var ErrNotFound = errors.New("store: session not found")

// Store defines session persistence for running rounds.
type Store interface {
	// Create registers a new session around e.
	Create(ctx context.Context, e *game.Engine) (*Session, error)

	// Get retrieves a session by ID.
	Get(ctx context.Context, id string) (*Session, error)

	// Sweep removes sessions not used since before cutoff and returns how many were removed.
	Sweep(ctx context.Context, cutoff time.Time) int

	// Len reports the number of live sessions.
	Len() int
}

// Session serializes access to one engine.
type Session struct {
	ID string

	mu       sync.Mutex
	engine   *game.Engine
	lastUsed atomic.Int64 // unix nanos
}

// Do runs fn with exclusive access to the session's engine.
func (s *Session) Do(fn func(e *game.Engine) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return fn(s.engine)
}

func (s *Session) touch() { s.lastUsed.Store(time.Now().UnixNano()) }

// LastUsed returns when the session was last accessed.
func (s *Session) LastUsed() time.Time { return time.Unix(0, s.lastUsed.Load()) }

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.RWMutex        // guards sessions map
	sessions map[string]*Session // keyed by Session.ID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]*Session)}
}

func (m *memory) Create(ctx context.Context, e *game.Engine) (*Session, error) {
	s := &Session{ID: genID(), engine: e}
	s.touch()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return s, nil
}

func (m *memory) Get(ctx context.Context, id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return nil, ErrNotFound
}

func (m *memory) Sweep(ctx context.Context, cutoff time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, s := range m.sessions {
		if s.LastUsed().Before(cutoff) {
			delete(m.sessions, id)
			n++
		}
	}
	return n
}

func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// genID creates a 22-char URL-safe, crypto-random identifier (no padding).
func genID() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}
