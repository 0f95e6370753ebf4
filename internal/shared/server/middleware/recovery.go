package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"career-coach/internal/shared/server/respond"
	"career-coach/internal/shared/telemetry"
)

// Recovery turns a handler panic into the same 500 body the coach handlers use for
// unclassified failures. The panic value and stack only go to the log.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			telemetry.Error("http.panic", map[string]any{
				"request_id": RequestIDFromContext(c),
				"panic":      rec,
				"stack":      string(debug.Stack()),
				"route":      c.FullPath(),
				"method":     c.Request.Method,
			})
			if c.Writer.Written() {
				// Status and part of the body are already out.
				c.Abort()
				return
			}
			respond.Error(c, http.StatusInternalServerError, "internal_error", "something went wrong", nil)
		}()
		c.Next()
	}
}
