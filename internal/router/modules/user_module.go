package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-task-tracker/internal/interface/http"
)

// UserModule wires registration, login and logout pages.
// Public: GET/POST /users/register, GET/POST /users/login, GET /users/logout
// Form submissions are rate limited per IP.
type UserModule struct {
	Handler       *handlers.UserHandler
	Boundary      *handlers.Boundary
	Limiter       Limiter
	LoginLimit    int
	RegisterLimit int
}

func NewUserModule(h *handlers.UserHandler, b *handlers.Boundary, l Limiter, loginLimit, registerLimit int) *UserModule {
	return &UserModule{Handler: h, Boundary: b, Limiter: l, LoginLimit: loginLimit, RegisterLimit: registerLimit}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	w := m.Boundary.Wrap
	users := rg.Group("/users")
	{
		users.GET("/register", w(m.Handler.ShowRegister))
		users.POST("/register", m.Limiter.Form(m.RegisterLimit, "/users/register"), w(m.Handler.Register))
		users.GET("/login", w(m.Handler.ShowLogin))
		users.POST("/login", m.Limiter.Form(m.LoginLimit, "/users/login"), w(m.Handler.Login))
		users.GET("/logout", w(m.Handler.Logout))
	}
}
