package middleware

import (
	"net/http"
	"sync"
	"time"

	"discord-backend/internal/app/profile"
	"discord-backend/internal/observability"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// LimiterPool keeps one token bucket per caller key.
type LimiterPool struct {
	mu      sync.Mutex
	m       map[string]*limiterEntry
	rps     float64
	burst   int
	idleTTL time.Duration
	now     func() time.Time
}

func NewLimiterPool(rps float64, burst int) *LimiterPool {
	if rps <= 0 {
		rps = 5
	}
	if burst <= 0 {
		burst = 10
	}
	return &LimiterPool{
		m:       make(map[string]*limiterEntry),
		rps:     rps,
		burst:   burst,
		idleTTL: 10 * time.Minute,
		now:     time.Now,
	}
}

func (p *LimiterPool) get(key string) *rate.Limiter {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.now()
	if e, ok := p.m[key]; ok {
		e.lastSeen = now
		return e.limiter
	}

	p.evictIdle(now)
	l := rate.NewLimiter(rate.Limit(p.rps), p.burst)
	p.m[key] = &limiterEntry{limiter: l, lastSeen: now}
	return l
}

// evictIdle must be called with mu held.
func (p *LimiterPool) evictIdle(now time.Time) {
	for k, e := range p.m {
		if now.Sub(e.lastSeen) > p.idleTTL {
			delete(p.m, k)
		}
	}
}

func (p *LimiterPool) Allow(key string) bool {
	return p.get(key).Allow()
}

func (p *LimiterPool) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.m)
}

// RateLimit keys on the authenticated profile when present, otherwise on client IP.
func RateLimit(pool *LimiterPool) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "ip:" + c.ClientIP()
		if p, ok := profile.FromContext(c); ok {
			key = "profile:" + p.ID
		}

		if !pool.Allow(key) {
			observability.IncRateLimited(c.FullPath())
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
			return
		}
		c.Next()
	}
}
