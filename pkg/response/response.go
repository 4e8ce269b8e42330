package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-task-tracker/internal/domain/entity"
)

// Page is the view model every template receives.
type Page struct {
	Title     string
	Timestamp time.Time
	RequestID string
	User      *entity.User
	Flashes   []entity.Flash
	Errors    []string
	Form      map[string]string
	Data      any
}

// HTML renders name inside the layout. Zero status means 200.
func HTML(ctx *gin.Context, status int, name string, page Page) {
	if status == 0 {
		status = http.StatusOK
	}
	page.Timestamp = time.Now()
	page.RequestID = ctx.GetString("request_id")
	ctx.HTML(status, name, page)
}

// Redirect answers a form submission with 303 so the browser follows up
// with GET regardless of the original method.
func Redirect(ctx *gin.Context, location string) {
	ctx.Redirect(http.StatusSeeOther, location)
}
