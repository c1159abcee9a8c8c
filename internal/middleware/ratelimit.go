package middleware

import (
	"context"
	"sync"
	"time"

	"appointly/internal/logger"
	"appointly/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const staleClientAfter = 3 * time.Minute

type client struct {
	lim  *rate.Limiter
	seen time.Time
}

// RateLimiter - token bucket на каждый IP клиента
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*client
	r       rate.Limit
	burst   int
	now     func() time.Time
}

func NewRateLimiter(rps float64, burst int) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		clients: make(map[string]*client),
		r:       rate.Limit(rps),
		burst:   burst,
		now:     time.Now,
	}
}

func (rl *RateLimiter) get(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	if c, ok := rl.clients[ip]; ok {
		c.seen = rl.now()
		return c.lim
	}
	l := rate.NewLimiter(rl.r, rl.burst)
	rl.clients[ip] = &client{lim: l, seen: rl.now()}
	return l
}

// Allow расходует один токен клиента ip
func (rl *RateLimiter) Allow(ip string) bool {
	return rl.get(ip).Allow()
}

// Prune удаляет клиентов, не появлявшихся дольше staleClientAfter
func (rl *RateLimiter) Prune() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	removed := 0
	for ip, c := range rl.clients {
		if rl.now().Sub(c.seen) > staleClientAfter {
			delete(rl.clients, ip)
			removed++
		}
	}
	return removed
}

// RunCleanup чистит устаревших клиентов раз в минуту до отмены ctx
func (rl *RateLimiter) RunCleanup(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.Prune()
		}
	}
}

// Middleware отвечает 429, когда у клиента закончились токены
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !rl.Allow(ip) {
			logger.CtxWarn(c.Request.Context(), "rate limit exceeded", "ip", ip, "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.NewTooManyRequestsError("Too many requests, try again later"))
			return
		}
		c.Next()
	}
}
