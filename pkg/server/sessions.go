package server

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nikogura/career-kit/pkg/interview"
	"github.com/nikogura/career-kit/pkg/questions"
)

const (
	// sessionIdleTTL is how long a mock interview survives without requests.
	sessionIdleTTL = time.Hour

	// maxSessions caps live mock interviews; the least recently used one is
	// evicted to make room.
	maxSessions = 10000
)

// registry holds live mock interviews keyed by session id. Each session is
// guarded by its own lock so one slow client never blocks the others.
// Idle sessions are swept whenever a new one starts.
type registry struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*entry
	ttl      time.Duration
	limit    int
	now      func() time.Time
}

type entry struct {
	mu      sync.Mutex
	session *interview.Session

	// lastUsed is guarded by registry.mu.
	lastUsed time.Time
}

func newRegistry() (r *registry) {
	r = &registry{
		sessions: make(map[uuid.UUID]*entry),
		ttl:      sessionIdleTTL,
		limit:    maxSessions,
		now:      time.Now,
	}
	return r
}

// start creates and registers a session over list.
func (r *registry) start(list []questions.Question) (st interview.State, err error) {
	session := interview.NewSession()
	err = session.Start(list)
	if err != nil {
		return st, err
	}

	r.mu.Lock()
	now := r.now()
	r.sweepLocked(now)
	if len(r.sessions) >= r.limit {
		r.evictOldestLocked()
	}
	r.sessions[session.ID()] = &entry{session: session, lastUsed: now}
	r.mu.Unlock()

	st = session.State()
	return st, err
}

// do runs fn against a session under its lock. ok is false for an unknown
// or expired id.
func (r *registry) do(id uuid.UUID, fn func(s *interview.Session) error) (st interview.State, ok bool, err error) {
	r.mu.Lock()
	e, ok := r.sessions[id]
	if ok {
		now := r.now()
		if r.expired(e, now) {
			delete(r.sessions, id)
			ok = false
		} else {
			e.lastUsed = now
		}
	}
	r.mu.Unlock()
	if !ok {
		return st, ok, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if fn != nil {
		err = fn(e.session)
	}
	st = e.session.State()
	return st, ok, err
}

// remove discards a session. ok is false for an unknown id.
func (r *registry) remove(id uuid.UUID) (ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok = r.sessions[id]
	delete(r.sessions, id)
	return ok
}

func (r *registry) count() (n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n = len(r.sessions)
	return n
}

func (r *registry) expired(e *entry, now time.Time) (expired bool) {
	expired = now.Sub(e.lastUsed) > r.ttl
	return expired
}

func (r *registry) sweepLocked(now time.Time) {
	for id, e := range r.sessions {
		if r.expired(e, now) {
			delete(r.sessions, id)
		}
	}
}

func (r *registry) evictOldestLocked() {
	var oldestID uuid.UUID
	var oldest time.Time
	found := false
	for id, e := range r.sessions {
		if !found || e.lastUsed.Before(oldest) {
			oldestID, oldest, found = id, e.lastUsed, true
		}
	}
	if found {
		delete(r.sessions, oldestID)
	}
}
