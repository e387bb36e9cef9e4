package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/phrazzld/lexis-api/internal/api/shared"
	"golang.org/x/time/rate"
)

// defaultIdleTTL is how long a user's bucket may sit unused before it is
// dropped. It is raised to the full refill time when that is longer.
const defaultIdleTTL = 10 * time.Minute

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per authenticated user. Buckets unused
// for the idle TTL are evicted; by then they have refilled, so a fresh bucket
// behaves the same.
type RateLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*bucket
	limit     rate.Limit
	burst     int
	idleTTL   time.Duration
	lastSweep time.Time
	now       func() time.Time
}

// NewRateLimiter creates a limiter allowing perMinute requests per user
// with the given burst.
func NewRateLimiter(perMinute, burst int) *RateLimiter {
	limit := rate.Limit(float64(perMinute) / 60)
	ttl := defaultIdleTTL
	if limit > 0 {
		ttl = max(ttl, time.Duration(float64(burst)/float64(limit)*float64(time.Second)))
	}
	return &RateLimiter{
		limiters: make(map[string]*bucket),
		limit:    limit,
		burst:    burst,
		idleTTL:  ttl,
		now:      time.Now,
	}
}

func (rl *RateLimiter) getLimiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	rl.sweepLocked(now)

	if b, ok := rl.limiters[key]; ok {
		b.lastSeen = now
		return b.limiter
	}
	limiter := rate.NewLimiter(rl.limit, rl.burst)
	rl.limiters[key] = &bucket{limiter: limiter, lastSeen: now}
	return limiter
}

// sweepLocked drops idle buckets at most once per idle TTL.
func (rl *RateLimiter) sweepLocked(now time.Time) {
	if now.Sub(rl.lastSweep) < rl.idleTTL {
		return
	}
	rl.lastSweep = now
	for key, b := range rl.limiters {
		if now.Sub(b.lastSeen) >= rl.idleTTL {
			delete(rl.limiters, key)
		}
	}
}

// Len returns the number of tracked buckets.
func (rl *RateLimiter) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.limiters)
}

// Allow reports whether a request for key may proceed now.
func (rl *RateLimiter) Allow(key string) bool {
	return rl.getLimiter(key).Allow()
}

// Limit rejects requests over the budget with 429. Requests are keyed by
// user ID, so it must run after Authenticate; unauthenticated requests fall
// back to the remote address.
func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.RemoteAddr
		if userID, ok := shared.UserIDFromContext(r.Context()); ok {
			key = userID.String()
		}

		if !rl.Allow(key) {
			shared.RespondWithErrorAndLog(w, r, http.StatusTooManyRequests, "Too many requests", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}
