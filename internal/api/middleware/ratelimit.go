package middleware

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/campushub/server/internal/config"
	"golang.org/x/time/rate"
)

type RateLimitTier string

const (
	TierPublic RateLimitTier = "public"
	TierLogin  RateLimitTier = "login" // aggressive limiting for credential guessing
)

type rateLimitKey string

const rateLimitTierKey rateLimitKey = "rateLimitTier"

func WithRateLimitTier(tier RateLimitTier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), rateLimitTierKey, tier)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RateLimit applies per-client token buckets keyed by tier and remote IP.
// A tier configured to zero or below is unlimited.
func RateLimit(cfg config.RateLimitConfig) func(http.Handler) http.Handler {
	store := newLimiterStore(cfg)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/healthz" || r.URL.Path == "/readyz" || r.URL.Path == "/metrics" {
				next.ServeHTTP(w, r)
				return
			}

			tier := TierPublic
			if value, ok := r.Context().Value(rateLimitTierKey).(RateLimitTier); ok {
				tier = value
			}

			limiter := store.limiter(tier, clientKey(r))
			if limiter != nil && !limiter.Allow() {
				retryAfter := "60"
				if tier == TierLogin {
					retryAfter = "180"
				}
				w.Header().Set("Retry-After", retryAfter)
				w.WriteHeader(http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

type limiterStore struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
	cfg      config.RateLimitConfig
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newLimiterStore(cfg config.RateLimitConfig) *limiterStore {
	store := &limiterStore{
		limiters: make(map[string]*limiterEntry),
		cfg:      cfg,
	}
	// Drop entries idle for 15 minutes so the map cannot grow without bound.
	go store.cleanupLoop()
	return store
}

func (s *limiterStore) limiter(tier RateLimitTier, key string) *rate.Limiter {
	var limit rate.Limit
	var burst int
	switch tier {
	case TierLogin:
		if s.cfg.LoginPer15Minutes <= 0 {
			return nil
		}
		limit = rate.Limit(float64(s.cfg.LoginPer15Minutes) / (15 * 60))
		burst = s.cfg.LoginPer15Minutes
	default:
		if s.cfg.PublicPerMinute <= 0 {
			return nil
		}
		limit = rate.Limit(float64(s.cfg.PublicPerMinute) / 60)
		burst = s.cfg.PublicPerMinute
	}

	lookup := string(tier) + ":" + key

	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.limiters[lookup]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(limit, burst)}
		s.limiters[lookup] = entry
	}
	entry.lastSeen = time.Now()
	return entry.limiter
}

func (s *limiterStore) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		cutoff := time.Now().Add(-15 * time.Minute)
		s.mu.Lock()
		for key, entry := range s.limiters {
			if entry.lastSeen.Before(cutoff) {
				delete(s.limiters, key)
			}
		}
		s.mu.Unlock()
	}
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
