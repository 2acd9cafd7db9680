package service

import (
	"context"
	"fmt"
	"time"

	"github.com/allegro/bigcache/v3"
)

// SessionCache is the server-side session side-channel: an in-memory,
// TTL-evicted map from username to the most recently issued token.
//
// It is strictly auxiliary to the stateless JWT model — verification
// never requires it — but it gives logout something server-side to
// clear and lets operators inspect who holds a live session. Entries
// expire on their own after the configured TTL, mirroring token expiry.
type SessionCache struct {
	cache *bigcache.BigCache
}

// NewSessionCache builds a session cache whose entries live for ttl.
func NewSessionCache(ttl time.Duration) (*SessionCache, error) {
	cache, err := bigcache.New(context.Background(), bigcache.DefaultConfig(ttl))
	if err != nil {
		return nil, fmt.Errorf("error creating session cache: %w", err)
	}

	return &SessionCache{cache: cache}, nil
}

// Put records token as the live session for username, replacing any
// previous entry.
func (s *SessionCache) Put(username, token string) {
	// bigcache set failures (entry too large) are not actionable here;
	// the cache is advisory.
	_ = s.cache.Set(username, []byte(token))
}

// Get returns the live session token for username, if any.
func (s *SessionCache) Get(username string) (string, bool) {
	data, err := s.cache.Get(username)
	if err != nil {
		return "", false
	}
	return string(data), true
}

// Drop removes the session entry for username. Dropping an absent entry
// is a no-op, which keeps logout idempotent.
func (s *SessionCache) Drop(username string) {
	_ = s.cache.Delete(username)
}
