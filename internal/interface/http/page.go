package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-task-tracker/internal/interface/web"
	"github.com/oksasatya/go-task-tracker/pkg/response"
)

// pages renders templates with the current user and the notices queued by
// the previous request, which are consumed here.
type pages struct {
	flash *web.Flashes
}

func (p pages) render(c *gin.Context, rs *web.Request, status int, name string, page response.Page) {
	page.User = rs.User
	page.Flashes = p.flash.Take(c)
	response.HTML(c, status, name, page)
}
