// middleware/rate_limiter.go

package middleware

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/abhiraj070/RuleMind/db"
	rm_errors "github.com/abhiraj070/RuleMind/errors"
	logger "github.com/abhiraj070/RuleMind/logging"
	"github.com/abhiraj070/RuleMind/util"
)

// Limiter decides whether the caller identified by key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RedisLimiter shares a sliding window across instances through Redis.
type RedisLimiter struct {
	limit int
	per   time.Duration
}

func NewRedisLimiter(limit int, per time.Duration) *RedisLimiter {
	return &RedisLimiter{limit: limit, per: per}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	return db.RateLimit(ctx, key, l.limit, l.per)
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// LocalLimiter is a per-client token bucket refilled at limit tokens per
// window. Clients idle for idleAfter are forgotten by Cleanup.
type LocalLimiter struct {
	mu        sync.Mutex
	clients   map[string]*clientLimiter
	every     rate.Limit
	burst     int
	idleAfter time.Duration
	now       func() time.Time
}

func NewLocalLimiter(limit int, per time.Duration) *LocalLimiter {
	return &LocalLimiter{
		clients:   make(map[string]*clientLimiter),
		every:     rate.Every(per / time.Duration(max(limit, 1))),
		burst:     max(limit, 1),
		idleAfter: 2 * per,
		now:       time.Now,
	}
}

func (l *LocalLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cl, ok := l.clients[key]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(l.every, l.burst)}
		l.clients[key] = cl
	}
	cl.lastSeen = now
	return cl.limiter.AllowN(now, 1), nil
}

// Cleanup drops idle clients every interval until ctx is done.
func (l *LocalLimiter) Cleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.mu.Lock()
			cutoff := l.now().Add(-l.idleAfter)
			for key, cl := range l.clients {
				if cl.lastSeen.Before(cutoff) {
					delete(l.clients, key)
				}
			}
			l.mu.Unlock()
		}
	}
}

// RateLimiter rejects clients over their limit with 429. A limiter error
// fails the request rather than letting it through unchecked.
func RateLimiter(limiter Limiter, limit int, per time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		allowed, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			util.RespondWithError(c, http.StatusServiceUnavailable, rm_errors.CodeStorage, "Rate limiting failed", err)
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Duration", per.String())

		if !allowed {
			logger.Warn("Rate limit exceeded",
				zap.String("ip", key),
				zap.Int("limit", limit),
				zap.Duration("per", per))
			c.Header("Retry-After", strconv.Itoa(int(per.Seconds())))
			util.RespondWithError(c, http.StatusTooManyRequests, rm_errors.CodeRateLimited, "Rate limit exceeded", rm_errors.ErrRateLimited)
			return
		}

		c.Next()
	}
}
