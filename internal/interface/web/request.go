// Package web carries per-request state between middleware and handlers:
// the resolved user, the session token and one-time flash notices.
package web

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-task-tracker/internal/domain/entity"
)

const requestKey = "web.request"

// Request is the explicit per-request context. User is nil for anonymous
// clients; Token may still be set when it only carries flash notices.
type Request struct {
	User  *entity.User
	Token string
}

func (r *Request) Authenticated() bool { return r != nil && r.User != nil }

// UserID returns "" for anonymous requests.
func (r *Request) UserID() string {
	if r == nil || r.User == nil {
		return ""
	}
	return r.User.ID
}

func Set(c *gin.Context, r *Request) { c.Set(requestKey, r) }

// From returns the request state, creating an anonymous one if no
// middleware attached it.
func From(c *gin.Context) *Request {
	if v, ok := c.Get(requestKey); ok {
		if r, ok := v.(*Request); ok {
			return r
		}
	}
	r := &Request{}
	Set(c, r)
	return r
}
