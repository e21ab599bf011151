// Package session holds per-session review state between interactions.
// Sessions live in memory only; nothing survives a process restart.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-reviewer/internal/feedback"
)

// Session is the state one analysis leaves behind. ImprovedResume starts as
// the generated text and is overwritten by the user's edits; downloads always
// read the current value.
type Session struct {
	ID             uuid.UUID
	JobRole        string
	Source         feedback.Source
	ImprovedResume string
	CreatedAt      time.Time
}

// Store is an in-memory session container safe for concurrent handlers.
type Store struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session

	ttl  time.Duration
	stop chan struct{}
	once sync.Once
}

// NewStore creates a store whose sessions expire after ttl. A zero ttl
// disables expiry.
func NewStore(ttl time.Duration) *Store {
	s := &Store{
		sessions: make(map[uuid.UUID]*Session),
		ttl:      ttl,
		stop:     make(chan struct{}),
	}
	if ttl > 0 {
		go s.pruneLoop()
	}
	return s
}

// Create stores a new session and returns a snapshot of it.
func (s *Store) Create(jobRole string, source feedback.Source, improvedResume string) Session {
	sess := &Session{
		ID:             uuid.New(),
		JobRole:        jobRole,
		Source:         source,
		ImprovedResume: improvedResume,
		CreatedAt:      time.Now(),
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	return *sess
}

// Get returns a snapshot of the session for id, or false if it does not
// exist. A copy keeps readers isolated from concurrent edits.
func (s *Store) Get(id uuid.UUID) (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return Session{}, false
	}
	return *sess, true
}

// UpdateResume replaces the session's improved-resume text with the user's
// edit. Returns false if the session does not exist.
func (s *Store) UpdateResume(id uuid.UUID, text string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return false
	}
	sess.ImprovedResume = text
	return true
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Stop terminates the prune goroutine. Safe to call more than once.
func (s *Store) Stop() {
	s.once.Do(func() { close(s.stop) })
}

func (s *Store) pruneLoop() {
	ticker := time.NewTicker(s.ttl / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.prune(time.Now())
		case <-s.stop:
			return
		}
	}
}

func (s *Store) prune(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, sess := range s.sessions {
		if now.Sub(sess.CreatedAt) > s.ttl {
			delete(s.sessions, id)
		}
	}
}
