package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

type userLimiter struct {
	limiter *rate.Limiter
	expires time.Time
}

// PostRateLimiter caps how often one user can create posts: count posts per
// window, enforced with a per-user token bucket. Idle buckets are dropped
// after a few windows so the map does not grow with the user base.
type PostRateLimiter struct {
	mu       sync.Mutex
	limiters map[uint]*userLimiter
	limit    rate.Limit
	burst    int
	window   time.Duration
}

// NewPostRateLimiter builds the limiter for count actions per window
func NewPostRateLimiter(count int, window time.Duration) *PostRateLimiter {
	if count < 1 {
		count = 1
	}
	return &PostRateLimiter{
		limiters: map[uint]*userLimiter{},
		limit:    rate.Every(window / time.Duration(count)),
		burst:    count,
		window:   window,
	}
}

// Middleware rejects over-limit requests with 429. Must run after
// JWTAuthMiddleware so the user is known.
func (p *PostRateLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := CurrentUser(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing authentication")
			}

			if !p.allow(claims.UserID) {
				return echo.NewHTTPError(http.StatusTooManyRequests, "Too many posts, try again later")
			}

			return next(c)
		}
	}
}

func (p *PostRateLimiter) allow(userID uint) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.cleanupLocked()

	l, ok := p.limiters[userID]
	if !ok {
		l = &userLimiter{limiter: rate.NewLimiter(p.limit, p.burst)}
		p.limiters[userID] = l
	}
	l.expires = time.Now().Add(3 * p.window)

	return l.limiter.Allow()
}

func (p *PostRateLimiter) cleanupLocked() {
	now := time.Now()
	for key, l := range p.limiters {
		if now.After(l.expires) {
			delete(p.limiters, key)
		}
	}
}
