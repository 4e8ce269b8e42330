package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-task-tracker/internal/interface/web"
	"github.com/oksasatya/go-task-tracker/pkg/response"
)

type HomeHandler struct {
	pages
}

func NewHomeHandler(flash *web.Flashes) *HomeHandler {
	return &HomeHandler{pages: pages{flash: flash}}
}

func (h *HomeHandler) Index(c *gin.Context, rs *web.Request) error {
	h.render(c, rs, http.StatusOK, "home", response.Page{Title: "Welcome"})
	return nil
}
