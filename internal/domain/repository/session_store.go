package repository

import (
	"context"
	"time"

	"github.com/oksasatya/go-task-tracker/internal/domain/entity"
)

// Session binds an unguessable token to a user until ExpiresAt.
type Session struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
}

// SessionStore keeps token -> user mappings with TTL expiry.
// Resolve reports ok=false for absent or expired tokens without an error.
type SessionStore interface {
	Create(ctx context.Context, userID string) (Session, error)
	Resolve(ctx context.Context, token string) (userID string, ok bool, err error)
	Destroy(ctx context.Context, token string) error
}

// FlashStore carries one-read notices keyed by session token.
type FlashStore interface {
	PushFlash(ctx context.Context, token string, f entity.Flash) error
	PopFlash(ctx context.Context, token string) ([]entity.Flash, error)
}
