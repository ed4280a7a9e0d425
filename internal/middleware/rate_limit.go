// internal/middleware/rate_limit.go
package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/fashionfactory/store-backend/internal/i18n"
	"github.com/fashionfactory/store-backend/internal/utils"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client IP.
type RateLimiter struct {
	visitors  map[string]*visitor
	mtx       sync.Mutex
	rate      rate.Limit
	burst     int
	idle      time.Duration
	lastPrune time.Time
	now       func() time.Time
}

func NewRateLimiter(r rate.Limit, b int) *RateLimiter {
	// A visitor is forgotten only once its bucket would have refilled.
	idle := 3 * time.Minute
	if r > 0 {
		if refill := time.Duration(float64(b) / float64(r) * float64(time.Second)); refill > idle {
			idle = refill
		}
	}

	return &RateLimiter{
		visitors: make(map[string]*visitor),
		rate:     r,
		burst:    b,
		idle:     idle,
		now:      time.Now,
	}
}

// Per returns a limiter allowing n requests per window with bursts up to n.
func Per(n int, window time.Duration) *RateLimiter {
	return NewRateLimiter(rate.Every(window/time.Duration(n)), n)
}

func (rl *RateLimiter) pruneLocked(now time.Time) {
	if now.Sub(rl.lastPrune) < time.Minute {
		return
	}
	rl.lastPrune = now
	for ip, v := range rl.visitors {
		if now.Sub(v.lastSeen) > rl.idle {
			delete(rl.visitors, ip)
		}
	}
}

func (rl *RateLimiter) allow(ip string) bool {
	rl.mtx.Lock()
	defer rl.mtx.Unlock()

	now := rl.now()
	rl.pruneLocked(now)

	v, exists := rl.visitors[ip]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.visitors[ip] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP()) {
			utils.TooManyRequestsResponse(c, i18n.T(utils.GetLangFromContext(c), i18n.KeyRateLimited))
			c.Abort()
			return
		}

		c.Next()
	}
}

// RateLimits holds the limiters of one router instance.
type RateLimits struct {
	General        *RateLimiter
	Login          *RateLimiter
	ForgotPassword *RateLimiter
	ChangePassword *RateLimiter
}

func DefaultRateLimits() RateLimits {
	return RateLimits{
		General:        NewRateLimiter(rate.Limit(10), 10), // 10 requests per second
		Login:          Per(5, 15*time.Minute),
		ForgotPassword: Per(3, time.Hour),
		ChangePassword: Per(3, 15*time.Minute),
	}
}
