package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/oksasatya/go-task-tracker/config"
	"github.com/oksasatya/go-task-tracker/internal/application"
	pginfra "github.com/oksasatya/go-task-tracker/internal/infrastructure/postgres"
	"github.com/oksasatya/go-task-tracker/internal/infrastructure/redisstore"
	"github.com/oksasatya/go-task-tracker/pkg/helpers"
)

// seed creates a demo account with a few tasks through the same services
// the web app uses, so every validation rule applies.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)
	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer func() { _ = rdb.Close() }()

	users := pginfra.NewUserRepository(pool)
	hasher := helpers.NewPasswordHasher(cfg.BcryptCost, cfg.HashWorkers)
	sessions := redisstore.NewSessionStore(rdb, cfg.SessionTTL, cfg.FlashTTL)
	auth := application.NewAuthService(users, sessions, hasher, logger, cfg.StoreTimeout)
	tasks := application.NewTaskService(pginfra.NewTaskRepository(pool), logger, cfg.StoreTimeout)

	email := "demo@example.com"
	password := "Passw0rd1"
	name := "Demo User"

	_, err = auth.Register(ctx, application.RegisterInput{Name: name, Email: email, Password: password, Password2: password})
	switch {
	case err == nil:
		fmt.Printf("seeded user: email=%s name=%s password=%s\n", email, name, password)
	case errors.Is(err, application.ErrDuplicateEmail):
		fmt.Printf("user %s already exists, adding tasks only\n", email)
	default:
		log.Fatalf("failed to seed user: %v", err)
	}

	u, err := auth.Verify(ctx, email, password)
	if err != nil {
		log.Fatalf("failed to verify seeded user: %v", err)
	}

	for _, in := range []application.TaskInput{
		{Title: "Read the README", Description: "Learn how to run the tracker locally"},
		{Title: "Plan the week", DueDate: "2030-01-06"},
		{Title: "Write release notes", Description: "Summarise what changed", DueDate: "2030-01-10"},
	} {
		id, err := tasks.Create(ctx, u.ID, in)
		if err != nil {
			log.Fatalf("failed to seed task %q: %v", in.Title, err)
		}
		fmt.Printf("seeded task: id=%s title=%s\n", id, in.Title)
	}
}
