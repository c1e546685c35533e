package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/cmlabs-hris/attendance-kiosk-go/internal/handler/http/response"
	"golang.org/x/time/rate"
)

const (
	limiterSweepThreshold = 10000
	limiterIdleTTL        = 10 * time.Minute
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter keeps one token bucket per client IP.
type IPRateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	r        rate.Limit
	b        int
	now      func() time.Time
}

func NewIPRateLimiter(r rate.Limit, b int) *IPRateLimiter {
	return &IPRateLimiter{
		visitors: make(map[string]*visitor),
		r:        r,
		b:        b,
		now:      time.Now,
	}
}

func (i *IPRateLimiter) GetLimiter(key string) *rate.Limiter {
	i.mu.Lock()
	defer i.mu.Unlock()

	now := i.now()
	if len(i.visitors) >= limiterSweepThreshold {
		for k, v := range i.visitors {
			if now.Sub(v.lastSeen) > limiterIdleTTL {
				delete(i.visitors, k)
			}
		}
	}

	v, exists := i.visitors[key]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(i.r, i.b)}
		i.visitors[key] = v
	}
	v.lastSeen = now
	return v.limiter
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// RateLimitByIP allows r requests per second per client with bursts of b.
// Put chi's RealIP in front of it when running behind a trusted proxy.
func RateLimitByIP(r rate.Limit, b int) func(http.Handler) http.Handler {
	limiter := NewIPRateLimiter(r, b)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if !limiter.GetLimiter(clientIP(req)).Allow() {
				w.Header().Set("Retry-After", "1")
				response.TooManyRequests(w, "Too many requests from this IP")
				return
			}
			next.ServeHTTP(w, req)
		})
	}
}
