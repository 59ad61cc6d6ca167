package browse

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/carsawa/site/logger"
)

type session struct {
	state   State
	touched time.Time
}

// Store keeps one State per browsing session. Sessions idle for longer than
// the TTL are dropped by Sweep.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*session
	ttl      time.Duration
	now      func() time.Time

	// floor is the highest generation held by any expired session. New
	// sessions start above it so an old in-flight result can never match.
	floor uint64
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Get returns the current state of a session without touching it.
func (s *Store) Get(id string) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[id]; ok {
		return sess.state
	}
	st := Initial()
	st.Generation = s.floor
	return st
}

// Dispatch applies a to the session's state and returns the new state.
func (s *Store) Dispatch(id string, a Action) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		st := Initial()
		st.Generation = s.floor
		sess = &session{state: st}
		s.sessions[id] = sess
	}
	sess.state = Reduce(sess.state, a)
	sess.touched = s.now()
	return sess.state
}

// Sweep removes expired sessions and returns how many were removed.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.ttl)
	removed := 0
	for id, sess := range s.sessions {
		if sess.touched.Before(cutoff) {
			s.floor = max(s.floor, sess.state.Generation)
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Run sweeps every interval until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	log := logger.Named("browse")
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				log.Debug("expired browse sessions", zap.Int("removed", n), zap.Int("active", s.Len()))
			}
		}
	}
}
