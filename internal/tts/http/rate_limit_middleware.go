package http

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/odiadev/keygate/internal/httputil"
	keysHTTP "github.com/odiadev/keygate/internal/keys/http"
)

const (
	// limiterTTL controls how long an idle key's limiter is kept in memory.
	limiterTTL = 10 * time.Minute
	// sweepInterval controls how often stale limiters are evicted.
	sweepInterval = time.Minute
)

// keyLimiter pairs a token bucket with its last use for eviction.
type keyLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// rateLimiterStore keeps one token bucket per key prefix. Stale entries are
// swept inline on access rather than by a background goroutine.
type rateLimiterStore struct {
	mu        sync.Mutex
	limiters  map[string]*keyLimiter
	lastSweep time.Time
}

func newRateLimiterStore() *rateLimiterStore {
	return &rateLimiterStore{
		limiters:  make(map[string]*keyLimiter),
		lastSweep: time.Now(),
	}
}

// get returns the limiter for the given prefix, creating it on first use.
// The bucket refills at ratePerMin tokens per minute with a burst of ratePerMin.
func (s *rateLimiterStore) get(prefix string, ratePerMin int) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if now.Sub(s.lastSweep) > sweepInterval {
		for p, kl := range s.limiters {
			if now.Sub(kl.lastSeen) > limiterTTL {
				delete(s.limiters, p)
			}
		}
		s.lastSweep = now
	}

	kl, ok := s.limiters[prefix]
	if !ok {
		kl = &keyLimiter{
			limiter: rate.NewLimiter(rate.Limit(float64(ratePerMin)/60.0), ratePerMin),
		}
		s.limiters[prefix] = kl
	}
	kl.lastSeen = now

	return kl.limiter
}

// RateLimitMiddleware applies a best-effort per-key token bucket driven by
// each key's rate_per_min. The limiter is in-memory and advisory: restarts
// reset it and multiple instances do not share state. Must run after the
// API key verification middleware.
func RateLimitMiddleware(logger *slog.Logger) gin.HandlerFunc {
	store := newRateLimiterStore()

	return func(c *gin.Context) {
		key, ok := keysHTTP.GetAPIKey(c.Request.Context())
		if !ok || key == nil || key.RatePerMin <= 0 {
			c.Next()
			return
		}

		if !store.get(key.Prefix, key.RatePerMin).Allow() {
			logger.Debug("rate limit exceeded", slog.String("prefix", key.Prefix))
			c.JSON(http.StatusTooManyRequests, httputil.ErrorResponse{
				Error:   "rate_limited",
				Message: "Request rate for this key exceeded, retry later",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
