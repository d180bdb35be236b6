package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"team-pulse/pkg/log"
	"team-pulse/pkg/response"
)

// Middleware bundles the cross-cutting gin handlers.
type Middleware struct {
	l      log.Logger
	apiKey string
}

// New creates the middleware bundle. apiKey may be empty, disabling auth.
func New(l log.Logger, apiKey string) Middleware {
	return Middleware{
		l:      l,
		apiKey: apiKey,
	}
}

// RequestLogger logs method, path, status and latency for every request.
func (m Middleware) RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		m.l.Infof(c.Request.Context(), "%s %s -> %d (%s)",
			c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}

// Auth rejects requests missing the shared API key. No-op when no key is
// configured.
func (m Middleware) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.apiKey == "" {
			c.Next()
			return
		}
		if c.GetHeader("X-API-Key") != m.apiKey {
			c.AbortWithStatusJSON(401, response.Resp{ErrorCode: 401, Message: "Unauthorized"})
			return
		}
		c.Next()
	}
}
