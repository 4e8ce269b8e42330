package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-task-tracker/internal/application"
	"github.com/oksasatya/go-task-tracker/internal/domain/entity"
	"github.com/oksasatya/go-task-tracker/internal/interface/web"
	"github.com/oksasatya/go-task-tracker/pkg/helpers"
	"github.com/oksasatya/go-task-tracker/pkg/validation"
)

type recordedFlashes struct {
	items []entity.Flash
}

func (r *recordedFlashes) NewToken() (string, error) { return "anon", nil }
func (r *recordedFlashes) PushFlash(_ context.Context, _ string, f entity.Flash) error {
	r.items = append(r.items, f)
	return nil
}
func (r *recordedFlashes) PopFlash(context.Context, string) ([]entity.Flash, error) {
	out := r.items
	r.items = nil
	return out, nil
}

func runBoundary(t *testing.T, user *entity.User, h HandlerFunc) (*httptest.ResponseRecorder, []entity.Flash) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := &recordedFlashes{}
	flash := web.NewFlashes(store, helpers.NewCookie("sid", "", false), helpers.NewNopLogger(), time.Second)
	b := NewBoundary(flash, helpers.NewNopLogger())

	r := gin.New()
	r.Use(func(c *gin.Context) {
		web.Set(c, &web.Request{User: user, Token: "tok"})
		c.Next()
	})
	r.POST("/x", b.Wrap(h))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/x", nil))
	return w, store.items
}

func TestBoundary_MapsErrorKinds(t *testing.T) {
	ada := &entity.User{ID: "u1"}
	verr := &application.ValidationError{Fields: []validation.FieldError{
		{Field: "title", Message: "Title is required"},
		{Field: "dueDate", Message: "Invalid date format"},
	}}

	tests := []struct {
		name    string
		user    *entity.User
		err     error
		wantMsg string
		wantTo  string
	}{
		{"validation goes back to form", ada, Fail("/tasks/new", "", verr), "Title is required", "/tasks/new"},
		{"not found", ada, Fail("/tasks/1/edit", "Error fetching task", application.ErrNotFound), "Task not found", "/tasks"},
		{"unauthenticated", nil, application.ErrUnauthenticated, "Please log in to view that resource", "/users/login"},
		{"bad credentials", nil, Fail("/users/login", "", application.ErrInvalidCredentials), "Invalid email or password", "/users/login"},
		{"duplicate email", nil, application.ErrDuplicateEmail, "Email already exists", "/users/register"},
		{"store outage with fallback", ada, Fail("/tasks", "Error deleting task", storeOutage()), "Error deleting task", "/tasks"},
		{"unknown error signed in", ada, errors.New("boom"), "Something went wrong, please try again", "/tasks"},
		{"unknown error anonymous", nil, errors.New("boom"), "Something went wrong, please try again", "/users/login"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, flashes := runBoundary(t, tt.user, func(*gin.Context, *web.Request) error { return tt.err })

			assert.Equal(t, http.StatusSeeOther, w.Code)
			assert.Equal(t, tt.wantTo, w.Header().Get("Location"))
			require.Len(t, flashes, 1)
			assert.Equal(t, entity.FlashError, flashes[0].Kind)
			assert.Equal(t, tt.wantMsg, flashes[0].Message)
			assert.NotContains(t, w.Body.String(), "boom")
		})
	}
}

func TestBoundary_RecoversPanics(t *testing.T) {
	w, flashes := runBoundary(t, &entity.User{ID: "u1"}, func(*gin.Context, *web.Request) error {
		panic("nil map")
	})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/tasks", w.Header().Get("Location"))
	require.Len(t, flashes, 1)
	assert.Equal(t, msgGeneric, flashes[0].Message)
}

func TestBoundary_PassesThroughSuccess(t *testing.T) {
	w, flashes := runBoundary(t, nil, func(c *gin.Context, _ *web.Request) error {
		c.String(http.StatusOK, "ok")
		return nil
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, flashes)
}

func storeOutage() error {
	return errors.Join(application.ErrStoreUnavailable, errors.New("dial tcp: refused"))
}
