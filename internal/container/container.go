package container

import (
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-task-tracker/config"
	repo "github.com/oksasatya/go-task-tracker/internal/domain/repository"
	"github.com/oksasatya/go-task-tracker/pkg/helpers"
)

// app-level container to share constructed components across packages
// Router can auto-wire modules from these singletons.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	redisClient *redis.Client

	userRepo repo.UserRepository
	taskRepo repo.TaskRepository
	hasher   *helpers.PasswordHasher
)

func SetConfig(c *config.Config) { cfg = c }
func GetConfig() *config.Config  { return cfg }
func SetLogger(l *logrus.Logger) { logger = l }
func GetLogger() *logrus.Logger {
	if logger != nil {
		return logger
	}
	return logrus.StandardLogger()
}
func SetRedis(r *redis.Client) { redisClient = r }
func GetRedis() *redis.Client  { return redisClient }

// SetStore selects the user and task repositories (Postgres or memory).
func SetStore(u repo.UserRepository, t repo.TaskRepository) { userRepo, taskRepo = u, t }
func GetUserRepo() repo.UserRepository                      { return userRepo }
func GetTaskRepo() repo.TaskRepository                      { return taskRepo }

func SetHasher(h *helpers.PasswordHasher) { hasher = h }
func GetHasher() *helpers.PasswordHasher {
	if hasher != nil {
		return hasher
	}
	c := cfg
	if c == nil {
		c = config.Load()
	}
	hasher = helpers.NewPasswordHasher(c.BcryptCost, c.HashWorkers)
	return hasher
}
