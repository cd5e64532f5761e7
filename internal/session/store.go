package session

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Store keeps at most one live session per username. Sessions expire
// after the configured idle TTL, matching the single foreground
// interactive session the game supports.
type Store struct {
	cache *gocache.Cache
	ttl   time.Duration
}

// NewStore creates a session store with the given idle TTL.
func NewStore(ttl time.Duration) *Store {
	c := gocache.New(ttl, 2*ttl)
	c.OnEvicted(func(_ string, v interface{}) {
		if s, ok := v.(*Session); ok {
			s.Close()
		}
	})
	return &Store{cache: c, ttl: ttl}
}

// Put installs a session for its user, replacing and closing any
// existing one.
func (st *Store) Put(s *Session) {
	if existing, ok := st.Get(s.Username); ok && existing != s {
		existing.Close()
	}
	st.cache.Set(s.Username, s, st.ttl)
}

// Get returns the live session for a user, refreshing its TTL.
func (st *Store) Get(username string) (*Session, bool) {
	v, ok := st.cache.Get(username)
	if !ok {
		return nil, false
	}
	s, ok := v.(*Session)
	if !ok {
		return nil, false
	}
	st.cache.Set(username, s, st.ttl)
	return s, true
}

// Delete drops a user's session.
func (st *Store) Delete(username string) {
	if s, ok := st.Get(username); ok {
		s.Close()
	}
	st.cache.Delete(username)
}
