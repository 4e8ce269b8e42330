package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/go-task-tracker/internal/domain/entity"
	"github.com/oksasatya/go-task-tracker/internal/domain/repository"
	"github.com/oksasatya/go-task-tracker/pkg/helpers"
)

func sessionKey(token string) string { return "session:" + token }
func flashKey(token string) string   { return "flash:" + token }

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

// SessionStore keeps sessions as Redis hashes and flash notices as JSON
// lists, both keyed by the session token and expired by Redis itself.
type SessionStore struct {
	rdb        *redis.Client
	sessionTTL time.Duration
	flashTTL   time.Duration
	newToken   func() (string, error)
}

func NewSessionStore(rdb *redis.Client, sessionTTL, flashTTL time.Duration) *SessionStore {
	return &SessionStore{
		rdb:        rdb,
		sessionTTL: sessionTTL,
		flashTTL:   flashTTL,
		newToken:   func() (string, error) { return helpers.GenToken(helpers.SessionTokenBytes) },
	}
}

// Create issues a fresh token for userID. Earlier sessions of the same user
// stay valid until they expire or are destroyed.
func (s *SessionStore) Create(ctx context.Context, userID string) (repository.Session, error) {
	token, err := s.newToken()
	if err != nil {
		return repository.Session{}, fmt.Errorf("generate session token: %w", err)
	}
	key := sessionKey(token)
	expires := time.Now().Add(s.sessionTTL)

	pipe := s.rdb.TxPipeline()
	pipe.HSet(ctx, key, map[string]any{
		"user_id":    userID,
		"created_at": nowRFC3339(),
	})
	pipe.Expire(ctx, key, s.sessionTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return repository.Session{}, fmt.Errorf("store session: %w", err)
	}
	return repository.Session{Token: token, UserID: userID, ExpiresAt: expires}, nil
}

func (s *SessionStore) Resolve(ctx context.Context, token string) (string, bool, error) {
	if token == "" {
		return "", false, nil
	}
	uid, err := s.rdb.HGet(ctx, sessionKey(token), "user_id").Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("resolve session: %w", err)
	}
	if uid == "" {
		return "", false, nil
	}
	return uid, true, nil
}

func (s *SessionStore) Destroy(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.rdb.Del(ctx, sessionKey(token)).Err(); err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}
	return nil
}

// NewToken mints an anonymous token, used to carry flash notices for
// clients without a session.
func (s *SessionStore) NewToken() (string, error) {
	return s.newToken()
}

func (s *SessionStore) PushFlash(ctx context.Context, token string, f entity.Flash) error {
	b, err := json.Marshal(f)
	if err != nil {
		return err
	}
	key := flashKey(token)
	pipe := s.rdb.TxPipeline()
	pipe.RPush(ctx, key, b)
	pipe.Expire(ctx, key, s.flashTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("push flash: %w", err)
	}
	return nil
}

// PopFlash returns and clears every pending notice in one MULTI/EXEC so a
// notice is read at most once.
func (s *SessionStore) PopFlash(ctx context.Context, token string) ([]entity.Flash, error) {
	if token == "" {
		return nil, nil
	}
	key := flashKey(token)
	pipe := s.rdb.TxPipeline()
	rng := pipe.LRange(ctx, key, 0, -1)
	pipe.Del(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("pop flash: %w", err)
	}

	raw := rng.Val()
	out := make([]entity.Flash, 0, len(raw))
	for _, item := range raw {
		var f entity.Flash
		if err := json.Unmarshal([]byte(item), &f); err != nil {
			continue
		}
		out = append(out, f)
	}
	return out, nil
}

var (
	_ repository.SessionStore = (*SessionStore)(nil)
	_ repository.FlashStore   = (*SessionStore)(nil)
)
