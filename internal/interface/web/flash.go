package web

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-task-tracker/internal/domain/entity"
	repo "github.com/oksasatya/go-task-tracker/internal/domain/repository"
	"github.com/oksasatya/go-task-tracker/pkg/helpers"
)

// FlashCarrier stores notices per token and mints tokens for clients that
// have none yet.
type FlashCarrier interface {
	repo.FlashStore
	NewToken() (string, error)
}

// Flashes attaches notices to the current token so they survive one redirect.
// Storage failures are logged and never fail the request.
type Flashes struct {
	Store   FlashCarrier
	Cookies *helpers.Manager
	Logger  *logrus.Logger
	Timeout time.Duration
}

func NewFlashes(store FlashCarrier, cookies *helpers.Manager, logger *logrus.Logger, timeout time.Duration) *Flashes {
	return &Flashes{Store: store, Cookies: cookies, Logger: logger, Timeout: timeout}
}

func (f *Flashes) Success(c *gin.Context, msg string) { f.Add(c, entity.FlashSuccess, msg) }
func (f *Flashes) Error(c *gin.Context, msg string)   { f.Add(c, entity.FlashError, msg) }

// Add queues a notice. Anonymous clients get a browser-session cookie with
// a fresh token to carry it.
func (f *Flashes) Add(c *gin.Context, kind entity.FlashKind, msg string) {
	rs := From(c)
	if rs.Token == "" {
		tok, err := f.Store.NewToken()
		if err != nil {
			f.logError(c, "flash token", err)
			return
		}
		rs.Token = tok
		f.Cookies.SetSession(c, tok, time.Time{})
	}

	ctx, cancel := f.ctx(c)
	defer cancel()
	if err := f.Store.PushFlash(ctx, rs.Token, entity.Flash{Kind: kind, Message: msg}); err != nil {
		f.logError(c, "push flash", err)
	}
}

// Take returns and clears the pending notices of the current token.
func (f *Flashes) Take(c *gin.Context) []entity.Flash {
	rs := From(c)
	if rs.Token == "" {
		return nil
	}
	ctx, cancel := f.ctx(c)
	defer cancel()
	out, err := f.Store.PopFlash(ctx, rs.Token)
	if err != nil {
		f.logError(c, "pop flash", err)
		return nil
	}
	return out
}

func (f *Flashes) ctx(c *gin.Context) (context.Context, context.CancelFunc) {
	d := f.Timeout
	if d <= 0 {
		d = 2 * time.Second
	}
	return context.WithTimeout(context.WithoutCancel(c.Request.Context()), d)
}

func (f *Flashes) logError(c *gin.Context, msg string, err error) {
	if f.Logger == nil {
		return
	}
	f.Logger.WithError(err).WithField("request_id", c.GetString("request_id")).Warn(msg)
}
