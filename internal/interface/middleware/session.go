package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-task-tracker/internal/domain/entity"
	"github.com/oksasatya/go-task-tracker/internal/interface/web"
	"github.com/oksasatya/go-task-tracker/pkg/helpers"
	"github.com/oksasatya/go-task-tracker/pkg/response"
)

// SessionResolver maps a session token to its user; nil means anonymous.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (*entity.User, error)
}

// Session resolves the session cookie on every request and attaches the
// result as web.Request. Unknown or expired tokens yield an anonymous
// request; a failing session store is logged and treated the same way.
func Session(auth SessionResolver, cookies *helpers.Manager, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rs := &web.Request{Token: cookies.Read(c)}
		if rs.Token != "" {
			u, err := auth.Resolve(c.Request.Context(), rs.Token)
			if err != nil {
				logger.WithError(err).WithField("request_id", c.GetString("request_id")).Warn("session lookup failed")
			}
			rs.User = u
		}
		web.Set(c, rs)
		if rs.User != nil {
			c.Set("userID", rs.User.ID)
		}
		c.Next()
	}
}

// RequireUser stops anonymous requests before the handler runs and sends
// them to the login page with a notice.
func RequireUser(flash *web.Flashes) gin.HandlerFunc {
	return func(c *gin.Context) {
		if web.From(c).Authenticated() {
			c.Next()
			return
		}
		flash.Error(c, "Please log in to view that resource")
		response.Redirect(c, "/users/login")
		c.Abort()
	}
}
