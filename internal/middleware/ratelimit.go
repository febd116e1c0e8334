package middleware

import (
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/verdantgoods/storefront/pkg/logger"
)

// RateLimiter implements a fixed-window rate limit backed by Redis.
// With a nil client every request is allowed.
type RateLimiter struct {
	redis       *redis.Client
	maxRequests int
	window      time.Duration
}

// NewRateLimiter creates a new rate limiter.
func NewRateLimiter(client *redis.Client, maxRequests int, window time.Duration) *RateLimiter {
	return &RateLimiter{redis: client, maxRequests: maxRequests, window: window}
}

// Middleware limits requests per client IP. Redis failures fail open:
// the request proceeds and the error is logged.
func (rl *RateLimiter) Middleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if rl.redis == nil {
			next.ServeHTTP(w, r)
			return
		}

		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}
		key := fmt.Sprintf("ratelimit:%s:%s", r.URL.Path, ip)

		ctx := r.Context()
		count, err := rl.redis.Incr(ctx, key).Result()
		if err != nil {
			logger.Logger.Error().Err(err).Str("ip", ip).Msg("Rate limiter error")
			next.ServeHTTP(w, r)
			return
		}
		if count == 1 {
			rl.redis.Expire(ctx, key, rl.window)
		}

		remaining := rl.maxRequests - int(count)
		if remaining < 0 {
			remaining = 0
		}
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", rl.maxRequests))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))

		if count > int64(rl.maxRequests) {
			logger.Logger.Warn().
				Str("ip", ip).
				Str("path", r.URL.Path).
				Int("limit", rl.maxRequests).
				Msg("Rate limit exceeded")
			respondError(w, http.StatusTooManyRequests, "too many requests")
			return
		}

		next.ServeHTTP(w, r)
	}
}
