package application

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/go-task-tracker/internal/infrastructure/memory"
	"github.com/oksasatya/go-task-tracker/internal/infrastructure/redisstore"
	"github.com/oksasatya/go-task-tracker/pkg/helpers"
)

type fixture struct {
	store *memory.Store
	mr    *miniredis.Miniredis
	auth  *AuthService
	tasks *TaskService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	store := memory.NewStore()
	logger := helpers.NewNopLogger()
	hasher := helpers.NewPasswordHasher(bcrypt.MinCost, 4)
	sessions := redisstore.NewSessionStore(rdb, time.Hour, time.Minute)

	return &fixture{
		store: store,
		mr:    mr,
		auth:  NewAuthService(store.Users(), sessions, hasher, logger, time.Second),
		tasks: NewTaskService(store.Tasks(), logger, time.Second),
	}
}

func (f *fixture) register(t *testing.T, name, email string) string {
	t.Helper()
	id, err := f.auth.Register(context.Background(), RegisterInput{
		Name: name, Email: email, Password: "Passw0rd1", Password2: "Passw0rd1",
	})
	require.NoError(t, err)
	return id
}
