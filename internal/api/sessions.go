package api

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/patilmayur526/Sodexo-nikos-dashboard/internal/importer"
)

// sessionTTL is how long a finished import session stays retrievable.
const sessionTTL = time.Hour

// importSession buffers the progress events of one import so a client
// may attach late, or reattach, and still see the full stream.
type importSession struct {
	ID       string
	Filename string

	mu      sync.Mutex
	events  []importer.ProgressEvent
	done    bool
	doneAt  time.Time
	changed chan struct{}
}

func newImportSession(filename string) *importSession {
	return &importSession{
		ID:       uuid.NewString(),
		Filename: filename,
		changed:  make(chan struct{}),
	}
}

func (s *importSession) append(event importer.ProgressEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	s.notifyLocked()
}

func (s *importSession) finish() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.done = true
	s.doneAt = time.Now()
	s.notifyLocked()
}

func (s *importSession) notifyLocked() {
	close(s.changed)
	s.changed = make(chan struct{})
}

// snapshot returns the events from index from on, whether the import
// has finished, and a channel closed on the next change.
func (s *importSession) snapshot(from int) ([]importer.ProgressEvent, bool, <-chan struct{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if from > len(s.events) {
		from = len(s.events)
	}
	events := make([]importer.ProgressEvent, len(s.events)-from)
	copy(events, s.events[from:])
	return events, s.done, s.changed
}

func (s *importSession) expired(now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done && now.After(s.doneAt.Add(sessionTTL))
}

type sessionStore struct {
	mu    sync.Mutex
	items map[string]*importSession
}

func newSessionStore() *sessionStore {
	return &sessionStore{items: make(map[string]*importSession)}
}

func (s *sessionStore) put(session *importSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purgeExpiredLocked(time.Now())
	s.items[session.ID] = session
}

func (s *sessionStore) get(id string) (*importSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.items[id]
	return session, ok
}

func (s *sessionStore) purgeExpiredLocked(now time.Time) {
	for id, session := range s.items {
		if session.expired(now) {
			delete(s.items, id)
		}
	}
}
