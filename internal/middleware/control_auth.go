package middleware

import (
	"crypto/subtle"
	"strings"

	"report-runtime/pkg/response"

	"github.com/gin-gonic/gin"
)

const controlKeyHeader = "X-Control-Key"

// ControlAuth checks the X-Control-Key header (or a Bearer token) against the
// configured control key.
func (m Middleware) ControlAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.controlKey == "" {
			c.Next()
			return
		}

		key := c.GetHeader(controlKeyHeader)
		if key == "" {
			key = strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		}
		if key == "" || subtle.ConstantTimeCompare([]byte(key), []byte(m.controlKey)) != 1 {
			m.l.Warnf(c.Request.Context(), "middleware.ControlAuth: rejected %s %s", c.Request.Method, c.Request.URL.Path)
			response.Unauthorized(c)
			c.Abort()
			return
		}
		c.Next()
	}
}
