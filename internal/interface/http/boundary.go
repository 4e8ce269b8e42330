package handlers

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-task-tracker/internal/application"
	"github.com/oksasatya/go-task-tracker/internal/interface/web"
	"github.com/oksasatya/go-task-tracker/pkg/helpers"
	"github.com/oksasatya/go-task-tracker/pkg/response"
)

const (
	msgLoginRequired = "Please log in to view that resource"
	msgBadLogin      = "Invalid email or password"
	msgEmailTaken    = "Email already exists"
	msgTaskNotFound  = "Task not found"
	msgGeneric       = "Something went wrong, please try again"
)

// HandlerFunc is a page handler that receives the per-request state and
// reports failures as errors for the Boundary to translate.
type HandlerFunc func(c *gin.Context, rs *web.Request) error

// RedirectError names where a failed submission should send the user back
// to, and the message to show when err is not a known kind.
type RedirectError struct {
	To       string
	Fallback string
	Err      error
}

func (e *RedirectError) Error() string { return e.To + ": " + e.Err.Error() }
func (e *RedirectError) Unwrap() error { return e.Err }

// Fail wraps err so the Boundary redirects to to on failure.
func Fail(to, fallback string, err error) error {
	if err == nil {
		return nil
	}
	return &RedirectError{To: to, Fallback: fallback, Err: err}
}

// Boundary turns handler errors and panics into a flash notice plus a
// redirect. Internal error text never reaches the client.
type Boundary struct {
	Flash  *web.Flashes
	Logger *logrus.Logger
}

func NewBoundary(flash *web.Flashes, logger *logrus.Logger) *Boundary {
	return &Boundary{Flash: flash, Logger: logger}
}

func (b *Boundary) Wrap(h HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		rs := web.From(c)
		defer func() {
			if r := recover(); r != nil {
				b.fail(c, rs, fmt.Errorf("panic: %v", r))
			}
		}()
		if err := h(c, rs); err != nil {
			b.fail(c, rs, err)
		}
	}
}

func (b *Boundary) fail(c *gin.Context, rs *web.Request, err error) {
	msg, to := b.resolve(c, rs, err)
	b.Flash.Error(c, msg)
	response.Redirect(c, to)
	c.Abort()
}

// resolve maps every error kind to the notice and target shown to the user.
func (b *Boundary) resolve(c *gin.Context, rs *web.Request, err error) (msg, to string) {
	fallback := msgGeneric
	var re *RedirectError
	if errors.As(err, &re) {
		to = re.To
		if re.Fallback != "" {
			fallback = re.Fallback
		}
	}

	var verr *application.ValidationError
	switch {
	case errors.As(err, &verr):
		return verr.First(), orDefault(to, safeTarget(rs))
	case errors.Is(err, application.ErrUnauthenticated):
		return msgLoginRequired, "/users/login"
	case errors.Is(err, application.ErrInvalidCredentials):
		return msgBadLogin, "/users/login"
	case errors.Is(err, application.ErrDuplicateEmail):
		return msgEmailTaken, "/users/register"
	case errors.Is(err, application.ErrNotFound):
		return msgTaskNotFound, "/tasks"
	}

	helpers.LogError(b.Logger, "request failed", err, logrus.Fields{
		"request_id": c.GetString("request_id"),
		"method":     c.Request.Method,
		"path":       c.Request.URL.Path,
		"user_id":    rs.UserID(),
	})
	return fallback, orDefault(to, safeTarget(rs))
}

func safeTarget(rs *web.Request) string {
	if rs.Authenticated() {
		return "/tasks"
	}
	return "/users/login"
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
