package respond

import "github.com/gin-gonic/gin"

// RequestIDKey is the gin context key holding the per-request correlation ID.
const RequestIDKey = "requestId"

// RequestID returns the correlation ID set by the request ID middleware, or "".
func RequestID(c *gin.Context) string {
	if c == nil {
		return ""
	}
	return c.GetString(RequestIDKey)
}
