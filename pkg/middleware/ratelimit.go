package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/hortechia/hortechia-engine/pkg/audit"
	"github.com/hortechia/hortechia-engine/pkg/auth"
)

// RateLimiter decides whether a keyed actor may proceed.
type RateLimiter interface {
	// Allow reports whether the actor identified by key is within its
	// request budget. Implementations fail open on backend errors.
	Allow(ctx context.Context, key string) bool
}

// redisRateLimiter enforces a fixed-window counter in Redis so the
// limit holds across replicas.
type redisRateLimiter struct {
	client    *redis.Client
	perMinute int
	logger    *zap.Logger
}

// NewRedisRateLimiter creates a Redis-backed rate limiter allowing
// perMinute requests per key per minute.
func NewRedisRateLimiter(client *redis.Client, perMinute int, logger *zap.Logger) RateLimiter {
	return &redisRateLimiter{
		client:    client,
		perMinute: perMinute,
		logger:    logger,
	}
}

func (l *redisRateLimiter) Allow(ctx context.Context, key string) bool {
	window := time.Now().UTC().Format("200601021504")
	counterKey := fmt.Sprintf("ratelimit:%s:%s", key, window)

	pipe := l.client.TxPipeline()
	count := pipe.Incr(ctx, counterKey)
	pipe.Expire(ctx, counterKey, 2*time.Minute)
	if _, err := pipe.Exec(ctx); err != nil {
		// Fail open: a Redis outage should not take down the API.
		l.logger.Warn("Rate limit check failed, allowing request", zap.Error(err))
		return true
	}

	return count.Val() <= int64(l.perMinute)
}

// localRateLimiter keeps a per-key token bucket in memory. Used when
// Redis is not configured (single-instance deployments, tests).
type localRateLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*localEntry
	perMinute int
}

type localEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewLocalRateLimiter creates an in-memory rate limiter allowing
// perMinute requests per key per minute. Idle entries are evicted
// by a background goroutine.
func NewLocalRateLimiter(perMinute int) RateLimiter {
	l := &localRateLimiter{
		limiters:  make(map[string]*localEntry),
		perMinute: perMinute,
	}
	go l.cleanup()
	return l
}

func (l *localRateLimiter) Allow(_ context.Context, key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.limiters[key]
	if !ok {
		entry = &localEntry{
			limiter: rate.NewLimiter(rate.Limit(float64(l.perMinute)/60.0), l.perMinute),
		}
		l.limiters[key] = entry
	}
	entry.lastSeen = time.Now()
	return entry.limiter.Allow()
}

func (l *localRateLimiter) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		l.mu.Lock()
		for key, entry := range l.limiters {
			if time.Since(entry.lastSeen) > 10*time.Minute {
				delete(l.limiters, key)
			}
		}
		l.mu.Unlock()
	}
}

// PerUserRateLimit limits requests per authenticated user. It must run
// after auth.Middleware.RequireAuth so the user UUID is in the context.
func PerUserRateLimit(limiter RateLimiter, logger *zap.Logger) func(http.HandlerFunc) http.HandlerFunc {
	auditor := audit.NewSecurityAuditor(logger)
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			userID, err := auth.UserUUIDFromContext(r.Context())
			if err != nil {
				// No authenticated user means RequireAuth was skipped;
				// fall back to the remote address so the limit still binds.
				if limiter.Allow(r.Context(), r.RemoteAddr) {
					next(w, r)
					return
				}
				tooManyRequests(w)
				return
			}

			if !limiter.Allow(r.Context(), userID.String()) {
				auditor.LogRateLimitExceeded(r.Context(), r.Method+" "+r.URL.Path)
				tooManyRequests(w)
				return
			}
			next(w, r)
		}
	}
}

func tooManyRequests(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusTooManyRequests)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":   "rate_limited",
		"message": "Too many requests, slow down",
	})
}
