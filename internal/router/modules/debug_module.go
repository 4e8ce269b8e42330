package modules

import (
	"expvar"

	"github.com/gin-gonic/gin"
)

// DebugModule exposes expvar counters at GET /debug/vars.
type DebugModule struct {
	Limiter Limiter
}

func NewDebugModule(l Limiter) *DebugModule { return &DebugModule{Limiter: l} }

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	rg.GET("/debug/vars", m.Limiter.PerIP(120), gin.WrapH(expvar.Handler()))
}
