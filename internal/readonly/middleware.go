// Package readonly serves the word API without letting clients change it.
package readonly

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Middleware blocks every mutating request while enabled.
// GET, HEAD and OPTIONS always pass.
type Middleware struct {
	enabled bool
}

// NewMiddleware creates a read-only mode middleware.
func NewMiddleware(enabled bool) *Middleware {
	return &Middleware{enabled: enabled}
}

// IsEnabled returns whether read-only mode is active.
func (m *Middleware) IsEnabled() bool {
	return m != nil && m.enabled
}

// Handler returns a Gin middleware that rejects writes with 403.
func (m *Middleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.IsEnabled() {
			c.Next()
			return
		}

		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error": "the word list is read-only",
			"code":  "read_only",
		})
	}
}
