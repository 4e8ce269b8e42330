package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-task-tracker/internal/domain/entity"
	handlers "github.com/oksasatya/go-task-tracker/internal/interface/http"
	"github.com/oksasatya/go-task-tracker/internal/interface/middleware"
	"github.com/oksasatya/go-task-tracker/internal/interface/web"
)

// TaskModule wires the task pages. Every route requires a session.
//   GET /tasks, /tasks/pending, /tasks/completed, /tasks/new, /tasks/:id/edit
//   POST /tasks, PUT /tasks/:id, PUT /tasks/:id/toggle, DELETE /tasks/:id
type TaskModule struct {
	Handler  *handlers.TaskHandler
	Boundary *handlers.Boundary
	Flash    *web.Flashes
	Limiter  Limiter
}

func NewTaskModule(h *handlers.TaskHandler, b *handlers.Boundary, flash *web.Flashes, l Limiter) *TaskModule {
	return &TaskModule{Handler: h, Boundary: b, Flash: flash, Limiter: l}
}

func (m *TaskModule) Register(rg *gin.RouterGroup) {
	w := m.Boundary.Wrap
	tasks := rg.Group("/tasks")
	tasks.Use(middleware.RequireUser(m.Flash), m.Limiter.PerUser(300))
	{
		tasks.GET("", w(m.Handler.List(entity.FilterAll)))
		tasks.GET("/pending", w(m.Handler.List(entity.FilterPending)))
		tasks.GET("/completed", w(m.Handler.List(entity.FilterCompleted)))
		tasks.GET("/new", w(m.Handler.New))
		tasks.POST("", w(m.Handler.Create))
		tasks.GET("/:id/edit", w(m.Handler.Edit))
		tasks.PUT("/:id", w(m.Handler.Update))
		tasks.PUT("/:id/toggle", w(m.Handler.Toggle))
		tasks.DELETE("/:id", w(m.Handler.Delete))
	}
}
