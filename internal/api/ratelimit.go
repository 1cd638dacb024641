package api

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ignite/template-hub/internal/pkg/httputil"
)

// RateLimiter is a fixed-window per-IP limiter backed by Redis, so the limit
// holds across API instances.
type RateLimiter struct {
	rdb   *redis.Client
	limit int
}

// NewRateLimiter creates a limiter allowing requestsPerMinute per client IP.
func NewRateLimiter(rdb *redis.Client, requestsPerMinute int) *RateLimiter {
	return &RateLimiter{rdb: rdb, limit: requestsPerMinute}
}

// Middleware rejects requests over the limit with 429. Redis failures fail
// open: an unavailable limiter must not take the API down with it.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := fmt.Sprintf("ratelimit:%s:%d", r.RemoteAddr, time.Now().Unix()/60)

		count, err := rl.rdb.Incr(r.Context(), key).Result()
		if err != nil {
			log.Printf("[api.RateLimiter] redis error, failing open: %v", err)
			next.ServeHTTP(w, r)
			return
		}
		if count == 1 {
			rl.rdb.Expire(r.Context(), key, time.Minute)
		}

		if count > int64(rl.limit) {
			w.Header().Set("Retry-After", "60")
			httputil.Error(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		next.ServeHTTP(w, r)
	})
}
