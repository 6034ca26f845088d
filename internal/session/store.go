// Package session tracks generated presentations between requests so that
// refine, download, and preview calls can refer back to an earlier
// generation by ID.
package session

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jackzampolin/deckgen/internal/ir"
)

// ErrNotFound is returned when a session ID is unknown.
var ErrNotFound = errors.New("session not found")

// Session is the server-side state of one generated presentation.
type Session struct {
	// ID uniquely identifies the session; it doubles as the output
	// directory name for the built artifacts.
	ID string

	// Presentation is the current document; refinement replaces it.
	Presentation *ir.Presentation

	// PptxPath is the built .pptx on disk.
	PptxPath string

	// PreviewPaths are the rendered slide images, in slide order. Empty
	// when preview rendering is unavailable.
	PreviewPaths []string

	// Tokens are the design tokens the generation was constrained by,
	// if a template or reference document was supplied.
	Tokens *ir.DesignTokens

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Store is an in-memory session registry, safe for concurrent use.
// Sessions do not survive a restart; the built files on disk do.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// Create registers a new session for pres and returns it. The returned
// session is a snapshot; use Update to modify stored state.
func (s *Store) Create(pres *ir.Presentation) *Session {
	now := time.Now()
	sess := &Session{
		ID:           uuid.NewString(),
		Presentation: pres,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	snap := *sess
	return &snap
}

// Get returns a snapshot of the session with the given ID.
func (s *Store) Get(id string) (*Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	snap := *sess
	return &snap, nil
}

// Update applies fn to the stored session under the store lock and bumps
// UpdatedAt. fn must not retain the session past the call.
func (s *Store) Update(id string, fn func(*Session)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return ErrNotFound
	}
	fn(sess)
	sess.UpdatedAt = time.Now()
	return nil
}

// Delete removes the session with the given ID, if present.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// IDs returns all session IDs, sorted.
func (s *Store) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
