package http

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tazhibayda/piazza-service/internal/log"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

type windowCounter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// RedisLimiter is a fixed window shared by every instance behind the same
// Redis.
type RedisLimiter struct {
	R      windowCounter
	Prefix string
	Limit  int
	Window time.Duration
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	return l.R.Allow(ctx, l.Prefix+key, l.Limit, l.Window)
}

// LocalLimiter keeps one token bucket per key in process memory. A bucket
// idle for a full refill period is indistinguishable from a fresh one, so
// such buckets are evicted.
type LocalLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*bucket
	every     rate.Limit
	burst     int
	idle      time.Duration
	lastSweep time.Time
	now       func() time.Time
}

type bucket struct {
	lim  *rate.Limiter
	seen time.Time
}

// NewLocalLimiter allows perMin events per minute per key, all of which may
// arrive at once.
func NewLocalLimiter(perMin int) *LocalLimiter {
	if perMin <= 0 {
		perMin = 1
	}
	return &LocalLimiter{
		buckets: map[string]*bucket{},
		every:   rate.Every(time.Minute / time.Duration(perMin)),
		burst:   perMin,
		idle:    time.Minute,
		now:     time.Now,
	}
}

func (l *LocalLimiter) Allow(_ context.Context, key string) (bool, error) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()
	if now.Sub(l.lastSweep) >= l.idle {
		l.evict(now)
	}
	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{lim: rate.NewLimiter(l.every, l.burst)}
		l.buckets[key] = b
	}
	b.seen = now
	return b.lim.AllowN(now, 1), nil
}

func (l *LocalLimiter) evict(now time.Time) {
	for k, b := range l.buckets {
		if now.Sub(b.seen) >= l.idle {
			delete(l.buckets, k)
		}
	}
	l.lastSweep = now
}

func ClientIP(c *gin.Context) string {
	ip := c.ClientIP()
	if ip == "" {
		ip = "unknown"
	}
	host, _, err := net.SplitHostPort(ip)
	if err == nil && host != "" {
		return host
	}
	return ip
}

// RateLimit rejects a client IP over its budget with 429. A limiter
// backend error fails open.
func RateLimit(l Limiter, base *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if l == nil {
			c.Next()
			return
		}
		ok, err := l.Allow(c.Request.Context(), ClientIP(c))
		if err != nil {
			log.WithDD(c.Request.Context(), base).Warn("rate limiter unavailable", zap.Error(err))
			c.Next()
			return
		}
		if !ok {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, errResp{Error: "too many requests"})
			return
		}
		c.Next()
	}
}
