// Package ratelimit hands out one token bucket per string key, so
// callers can pace work per symbol without tracking buckets themselves.
package ratelimit

import (
	"sync"

	"golang.org/x/time/rate"
)

type LimiterStore struct {
	mu       sync.RWMutex
	limiters map[string]*rate.Limiter
	r        rate.Limit
	burst    int
}

// NewLimiterStore builds a store whose buckets all share the same rate
// and burst. Buckets are created on first use and live forever.
func NewLimiterStore(r rate.Limit, burst int) *LimiterStore {
	return &LimiterStore{
		limiters: make(map[string]*rate.Limiter),
		r:        r,
		burst:    burst,
	}
}

// Allow reports whether key's bucket has a token to spend right now.
func (s *LimiterStore) Allow(key string) bool {
	return s.limiter(key).Allow()
}

func (s *LimiterStore) limiter(key string) *rate.Limiter {
	s.mu.RLock()
	lim, ok := s.limiters[key]
	s.mu.RUnlock()
	if ok {
		return lim
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if lim, ok := s.limiters[key]; ok {
		return lim
	}
	lim = rate.NewLimiter(s.r, s.burst)
	s.limiters[key] = lim
	return lim
}
