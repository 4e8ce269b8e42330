package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-task-tracker/internal/application"
	"github.com/oksasatya/go-task-tracker/internal/interface/web"
	"github.com/oksasatya/go-task-tracker/pkg/helpers"
	"github.com/oksasatya/go-task-tracker/pkg/response"
)

type UserHandler struct {
	pages
	Svc     *application.AuthService
	Flash   *web.Flashes
	Logger  *logrus.Logger
	Cookies *helpers.Manager
}

func NewUserHandler(svc *application.AuthService, flash *web.Flashes, logger *logrus.Logger, cookies *helpers.Manager) *UserHandler {
	return &UserHandler{pages: pages{flash: flash}, Svc: svc, Flash: flash, Logger: logger, Cookies: cookies}
}

type registerForm struct {
	Name      string `form:"name"`
	Email     string `form:"email"`
	Password  string `form:"password"`
	Password2 string `form:"password2"`
}

type loginForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

func (h *UserHandler) ShowRegister(c *gin.Context, rs *web.Request) error {
	h.render(c, rs, http.StatusOK, "users/register", response.Page{Title: "Register"})
	return nil
}

// Register re-renders the form with every violated rule; passwords are
// never echoed back.
func (h *UserHandler) Register(c *gin.Context, rs *web.Request) error {
	var req registerForm
	if err := c.ShouldBind(&req); err != nil {
		return Fail("/users/register", "Error registering user", err)
	}

	_, err := h.Svc.Register(c.Request.Context(), application.RegisterInput{
		Name:      req.Name,
		Email:     req.Email,
		Password:  req.Password,
		Password2: req.Password2,
	})
	var verr *application.ValidationError
	switch {
	case err == nil:
	case errors.As(err, &verr):
		h.renderRegister(c, rs, req, verr.Messages())
		return nil
	case errors.Is(err, application.ErrDuplicateEmail):
		h.renderRegister(c, rs, req, []string{msgEmailTaken})
		return nil
	default:
		return Fail("/users/register", "Error registering user", err)
	}

	h.Flash.Success(c, "You are now registered and can log in")
	response.Redirect(c, "/users/login")
	return nil
}

func (h *UserHandler) renderRegister(c *gin.Context, rs *web.Request, req registerForm, errs []string) {
	h.render(c, rs, http.StatusUnprocessableEntity, "users/register", response.Page{
		Title:  "Register",
		Errors: errs,
		Form:   map[string]string{"name": req.Name, "email": req.Email},
	})
}

func (h *UserHandler) ShowLogin(c *gin.Context, rs *web.Request) error {
	h.render(c, rs, http.StatusOK, "users/login", response.Page{Title: "Log in"})
	return nil
}

// Login replaces the cookie with a fresh session token on success. A failed
// attempt leaves the current session untouched.
func (h *UserHandler) Login(c *gin.Context, rs *web.Request) error {
	var req loginForm
	if err := c.ShouldBind(&req); err != nil {
		return Fail("/users/login", "", err)
	}

	u, sess, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		return Fail("/users/login", "", err)
	}

	h.Cookies.SetSession(c, sess.Token, sess.ExpiresAt)
	rs.User, rs.Token = u, sess.Token
	response.Redirect(c, "/tasks")
	return nil
}

// Logout destroys the session and carries the notice on a new anonymous
// token.
func (h *UserHandler) Logout(c *gin.Context, rs *web.Request) error {
	if rs.Token != "" {
		if err := h.Svc.Logout(c.Request.Context(), rs.Token); err != nil {
			return err
		}
	}
	h.Cookies.Clear(c)
	rs.User, rs.Token = nil, ""

	h.Flash.Success(c, "You are logged out")
	response.Redirect(c, "/users/login")
	return nil
}
