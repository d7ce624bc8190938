package middleware

import (
	"report-runtime/pkg/response"

	"github.com/gin-gonic/gin"
)

// Recovery turns a handler panic into a 500 and reports it.
func (m Middleware) Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			m.l.Errorf(c.Request.Context(), "middleware.Recovery: %s %s panicked: %v", c.Request.Method, c.FullPath(), rec)
			response.PanicError(c, rec, m.discord)
			c.Abort()
		}()
		c.Next()
	}
}
