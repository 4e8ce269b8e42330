package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-task-tracker/internal/interface/http"
)

// HomeModule serves the welcome page at GET /.
type HomeModule struct {
	Handler  *handlers.HomeHandler
	Boundary *handlers.Boundary
}

func NewHomeModule(h *handlers.HomeHandler, b *handlers.Boundary) *HomeModule {
	return &HomeModule{Handler: h, Boundary: b}
}

func (m *HomeModule) Register(rg *gin.RouterGroup) {
	rg.GET("/", m.Boundary.Wrap(m.Handler.Index))
}
