// Package session provides the in-memory store for wizard sessions. A
// session owns one resume record and one navigator position for the
// lifetime of a browser session; nothing is persisted.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Ragbaje/FrameMe/internal/types"
	"github.com/Ragbaje/FrameMe/internal/wizard"
)

// Busy-flag keys for the record slices that run collaborator calls. The
// experience slice uses the entry's stable ID as its key instead, so a
// flag survives sibling removal without index shifting.
const (
	BusyProfile = "profile"
	BusySkills  = "skills"
)

// Session holds the mutable state of one wizard run. All access goes
// through methods that hold the session lock; the record itself is
// copy-on-write, so callers only ever see detached snapshots.
type Session struct {
	ID string

	mu       sync.Mutex
	record   types.ResumeRecord
	nav      *wizard.Navigator
	busy     map[string]bool
	lastSeen time.Time
}

// Record returns a detached snapshot of the session's record.
func (s *Session) Record() types.ResumeRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.record.Clone()
}

// Update derives the next record from the previous one. The transform
// receives a snapshot and returns the replacement; last writer wins,
// which is acceptable because one user edits one session at a time.
func (s *Session) Update(transform func(types.ResumeRecord) types.ResumeRecord) types.ResumeRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record = transform(s.record.Clone())
	return s.record.Clone()
}

// Section returns the navigator's current section.
func (s *Session) Section() wizard.Section {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nav.Current()
}

// Advance moves the wizard one step forward.
func (s *Session) Advance() wizard.Section {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nav.Advance()
}

// Retreat moves the wizard one step backward.
func (s *Session) Retreat() wizard.Section {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nav.Retreat()
}

// Reset returns the wizard to Welcome without touching the record.
func (s *Session) Reset() wizard.Section {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nav.Reset()
}

// Progress returns the progress indicator segments.
func (s *Session) Progress() []wizard.ProgressSegment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nav.Progress()
}

// TryAcquire marks key busy. It reports false when a call for the same
// key is already in flight, which is how duplicate rewrites of one slice
// are prevented while rewrites of different slices proceed concurrently.
func (s *Session) TryAcquire(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy[key] {
		return false
	}
	s.busy[key] = true
	return true
}

// Release clears the busy flag for key.
func (s *Session) Release(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.busy, key)
}

// Busy reports whether a call for key is in flight.
func (s *Session) Busy(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy[key]
}

// Store keeps sessions in memory, keyed by UUID, and expires the ones
// that have gone quiet.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	stop     chan struct{}
	stopOnce sync.Once
}

// DefaultTTL is how long an idle session survives before the janitor
// removes it.
const DefaultTTL = 4 * time.Hour

// NewStore creates a session store and starts its cleanup goroutine.
// A non-positive ttl falls back to DefaultTTL.
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	s := &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		stop:     make(chan struct{}),
	}
	go s.janitor()
	return s
}

// Create starts a new session with the placeholder starter record and
// the navigator at Welcome.
func (s *Store) Create() *Session {
	sess := &Session{
		ID:       uuid.New().String(),
		record:   types.StarterRecord(),
		nav:      wizard.New(),
		busy:     make(map[string]bool),
		lastSeen: time.Now(),
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	return sess
}

// Get returns the session with the given ID and refreshes its idle
// timer. Unknown IDs report false.
func (s *Store) Get(id string) (*Session, bool) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}

	sess.mu.Lock()
	sess.lastSeen = time.Now()
	sess.mu.Unlock()
	return sess, true
}

// Delete removes a session.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Stop terminates the cleanup goroutine.
func (s *Store) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
}

func (s *Store) janitor() {
	ticker := time.NewTicker(s.ttl / 4)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.expire(time.Now())
		case <-s.stop:
			return
		}
	}
}

func (s *Store) expire(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, sess := range s.sessions {
		sess.mu.Lock()
		idle := now.Sub(sess.lastSeen)
		sess.mu.Unlock()
		if idle > s.ttl {
			delete(s.sessions, id)
		}
	}
}
