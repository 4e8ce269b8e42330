package router

import (
	"github.com/oksasatya/go-task-tracker/internal/application"
	"github.com/oksasatya/go-task-tracker/internal/container"
	"github.com/oksasatya/go-task-tracker/internal/infrastructure/redisstore"
	handlers "github.com/oksasatya/go-task-tracker/internal/interface/http"
	"github.com/oksasatya/go-task-tracker/internal/interface/middleware"
	"github.com/oksasatya/go-task-tracker/internal/interface/web"
	"github.com/oksasatya/go-task-tracker/internal/router/modules"
	"github.com/oksasatya/go-task-tracker/pkg/helpers"
)

type Deps struct {
	Auth     *application.AuthService
	Tasks    *application.TaskService
	Flash    *web.Flashes
	Cookies  *helpers.Manager
	Boundary *handlers.Boundary
	Limiter  modules.Limiter
}

func buildDeps() Deps {
	cfg := container.GetConfig()
	logger := container.GetLogger()

	sessions := redisstore.NewSessionStore(container.GetRedis(), cfg.SessionTTL, cfg.FlashTTL)
	cookies := helpers.NewCookie(cfg.SessionCookie, cfg.CookieDomain, cfg.CookieSecure)
	flash := web.NewFlashes(sessions, cookies, logger, cfg.StoreTimeout)

	var allow middleware.AllowFunc
	if cfg.RateLimitBypassPrivate {
		allow = middleware.AllowPrivateIP()
	}

	return Deps{
		Auth:     application.NewAuthService(container.GetUserRepo(), sessions, container.GetHasher(), logger, cfg.StoreTimeout),
		Tasks:    application.NewTaskService(container.GetTaskRepo(), logger, cfg.StoreTimeout),
		Flash:    flash,
		Cookies:  cookies,
		Boundary: handlers.NewBoundary(flash, logger),
		Limiter:  modules.Limiter{Redis: container.GetRedis(), Allow: allow, Flash: flash},
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	d := buildDeps()

	r.Use(middleware.Session(d.Auth, d.Cookies, logger))

	r.Add(modules.NewHomeModule(handlers.NewHomeHandler(d.Flash), d.Boundary))
	r.Add(modules.NewUserModule(
		handlers.NewUserHandler(d.Auth, d.Flash, logger, d.Cookies),
		d.Boundary, d.Limiter, cfg.LoginRateLimit, cfg.RegisterRateLimit,
	))
	r.Add(modules.NewTaskModule(handlers.NewTaskHandler(d.Tasks, d.Flash, logger), d.Boundary, d.Flash, d.Limiter))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(d.Limiter))
	}
}
