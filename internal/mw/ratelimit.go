package mw

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type keyLimiter struct {
	lim *rate.Limiter
	ts  time.Time
}

type limiterTable struct {
	mu  sync.Mutex
	m   map[string]*keyLimiter
	r   rate.Limit
	b   int
	ttl time.Duration
}

func (t *limiterTable) get(key string) *rate.Limiter {
	t.mu.Lock()
	defer t.mu.Unlock()
	kl, ok := t.m[key]
	if ok {
		kl.ts = time.Now()
		return kl.lim
	}
	lim := rate.NewLimiter(t.r, t.b)
	t.m[key] = &keyLimiter{lim: lim, ts: time.Now()}
	return lim
}

func (t *limiterTable) gc() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()
	for range ticker.C {
		now := time.Now()
		t.mu.Lock()
		for k, v := range t.m {
			if now.Sub(v.ts) > t.ttl {
				delete(t.m, k)
			}
		}
		t.mu.Unlock()
	}
}

// RateLimit returns a per-IP token-bucket limiter middleware.
func RateLimit(r rate.Limit, burst int) gin.HandlerFunc {
	t := &limiterTable{m: make(map[string]*keyLimiter), r: r, b: burst, ttl: 2 * time.Minute}
	go t.gc()
	return func(c *gin.Context) {
		if !t.get(clientIP(c.Request.RemoteAddr)).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"msg": "too many requests"})
			return
		}
		c.Next()
	}
}

func clientIP(remote string) string {
	host, _, err := net.SplitHostPort(remote)
	if err != nil {
		return remote
	}
	return host
}
