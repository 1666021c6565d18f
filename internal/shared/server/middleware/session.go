package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const sessionIDKey = "sessionId"

// Session resolves the caller's session from the X-Session-Id header, assigning
// a fresh ID when the header is absent. The assigned ID is echoed back so the
// dashboard can pin it for subsequent requests.
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Session-Id")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(sessionIDKey, id)
		c.Writer.Header().Set("X-Session-Id", id)
		c.Next()
	}
}

// SessionIDFromContext fetches the session ID stored by Session middleware.
func SessionIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(sessionIDKey)
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}
