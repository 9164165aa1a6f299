// Package session keeps per-user state in memory: credentials, the selected
// endpoint, the last probe result and uploaded documents. Nothing is persisted.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"sync"
	"time"

	"hfocr/internal/document"
	"hfocr/pkg/types"
)

// DefaultTTL evicts sessions idle for longer than this.
const DefaultTTL = 30 * time.Minute

// ErrNotFound is returned for unknown or expired session ids.
var ErrNotFound = errors.New("session not found")

// Session is the state of one user. Fields are only touched through Store.Do.
type Session struct {
	ID         string
	Token      string
	Endpoint   types.Endpoint
	LastStatus *types.ModelStatus
	Documents  map[string]*document.Document
	// order keeps document ids in upload order.
	order    []string
	lastSeen time.Time
}

// AddDocument stores d under its id.
func (s *Session) AddDocument(d *document.Document) {
	if s.Documents == nil {
		s.Documents = make(map[string]*document.Document)
	}
	if _, ok := s.Documents[d.ID]; !ok {
		s.order = append(s.order, d.ID)
	}
	s.Documents[d.ID] = d
}

// DocumentIDs returns document ids in upload order.
func (s *Session) DocumentIDs() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Reset drops credentials, status and documents.
func (s *Session) Reset() {
	s.Token = ""
	s.Endpoint = types.Endpoint{}
	s.LastStatus = nil
	s.Documents = nil
	s.order = nil
}

// Store is a mutex-guarded map of sessions with idle eviction.
type Store struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]*Session
	now      func() time.Time
}

// NewStore returns an empty store. ttl <= 0 selects DefaultTTL.
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{ttl: ttl, sessions: make(map[string]*Session), now: time.Now}
}

// Ensure returns id if it names a live session, otherwise creates a new one.
func (st *Store) Ensure(id string) (string, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if s, ok := st.liveLocked(id); ok {
		s.lastSeen = st.now()
		return s.ID, nil
	}
	nid, err := newID()
	if err != nil {
		return "", err
	}
	st.sessions[nid] = &Session{ID: nid, lastSeen: st.now()}
	return nid, nil
}

// Do runs fn with exclusive access to session id. fn must not block on I/O.
func (st *Store) Do(id string, fn func(*Session) error) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.liveLocked(id)
	if !ok {
		return ErrNotFound
	}
	s.lastSeen = st.now()
	return fn(s)
}

// Delete removes session id.
func (st *Store) Delete(id string) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
}

// Len reports the number of stored sessions, expired ones included until swept.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// Sweep evicts idle sessions and returns how many were removed.
func (st *Store) Sweep() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	cutoff := st.now().Add(-st.ttl)
	n := 0
	for id, s := range st.sessions {
		if s.lastSeen.Before(cutoff) {
			delete(st.sessions, id)
			n++
		}
	}
	return n
}

// Run sweeps every interval until ctx is done.
func (st *Store) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			st.Sweep()
		}
	}
}

func (st *Store) liveLocked(id string) (*Session, bool) {
	if id == "" {
		return nil, false
	}
	s, ok := st.sessions[id]
	if !ok {
		return nil, false
	}
	if st.now().Sub(s.lastSeen) > st.ttl {
		delete(st.sessions, id)
		return nil, false
	}
	return s, true
}

// NewID returns 16 random bytes, hex encoded. Used for session and document ids.
func NewID() (string, error) { return newID() }

func newID() (string, error) {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	return hex.EncodeToString(b[:]), nil
}
