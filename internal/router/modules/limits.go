package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/go-task-tracker/internal/interface/middleware"
	"github.com/oksasatya/go-task-tracker/internal/interface/web"
	"github.com/oksasatya/go-task-tracker/pkg/response"
)

const msgTooManyAttempts = "Too many attempts, please try again in a minute"

// Limiter builds per-IP Redis limiters for form submissions.
type Limiter struct {
	Redis  *redis.Client
	Allow  middleware.AllowFunc
	Flash  *web.Flashes
	Window time.Duration
}

// Form throttles a form POST to limit per window and per IP. Throttled
// clients are sent back to the form with a notice.
func (l Limiter) Form(limit int, back string) gin.HandlerFunc {
	onLimit := func(c *gin.Context) {
		l.Flash.Error(c, msgTooManyAttempts)
		response.Redirect(c, back)
	}
	return middleware.RateLimit(l.Redis, limit, l.window(), middleware.KeyByIPAndPath(), l.Allow, onLimit)
}

// PerUser throttles any request by signed-in user, falling back to IP.
func (l Limiter) PerUser(limit int) gin.HandlerFunc {
	return middleware.RateLimit(l.Redis, limit, l.window(), middleware.KeyByUserID(), l.Allow, nil)
}

// PerIP throttles any request by client IP.
func (l Limiter) PerIP(limit int) gin.HandlerFunc {
	return middleware.RateLimit(l.Redis, limit, l.window(), middleware.KeyByIP(), l.Allow, nil)
}

func (l Limiter) window() time.Duration {
	if l.Window <= 0 {
		return time.Minute
	}
	return l.Window
}
