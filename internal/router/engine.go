package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-task-tracker/internal/container"
	"github.com/oksasatya/go-task-tracker/internal/interface/middleware"
	"github.com/oksasatya/go-task-tracker/internal/interface/web"
)

// NewEngine builds the gin engine with global middleware and every module,
// wired from the container.
func NewEngine() *gin.Engine {
	cfg := container.GetConfig()
	logger := container.GetLogger()

	proxies, bad := middleware.ParseProxies(cfg.TrustedProxyList())
	if len(bad) > 0 {
		logger.WithField("entries", bad).Warn("ignoring invalid TRUSTED_PROXIES entries")
	}

	r := gin.New()
	// Keep gin's ClientIP in line with RealIP.
	if err := r.SetTrustedProxies(proxyCIDRs(proxies)); err != nil {
		logger.WithError(err).Warn("set trusted proxies")
	}
	r.HTMLRender = web.MustRenderer()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RealIP(proxies))
	r.Use(middleware.SecureHeaders(cfg.CookieSecure))
	if origins := cfg.CORSOrigins(); len(origins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     origins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	if cfg.HTTPLogEnabled || cfg.IsDevelopment() {
		r.Use(middleware.AccessLog(logger))
	}

	reg := NewRegistry(r)
	InitModules(reg)
	reg.RegisterAll()
	return r
}

func proxyCIDRs(set middleware.ProxySet) []string {
	out := make([]string, 0, len(set))
	for _, n := range set {
		out = append(out, n.String())
	}
	return out
}

// Handler is the engine behind method override, ready for http.Server.
func Handler() http.Handler {
	return middleware.MethodOverride(NewEngine())
}
