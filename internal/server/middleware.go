package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"

	"github.com/mancafe-dev/gateway/internal/session"
)

const (
	requestIDKey    = "request_id"
	requestIDHeader = "X-Request-ID"

	adminRole = "admin"
)

// requestIDMiddleware tags every request with a ULID for log correlation
func (s *Server) requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := ulid.Make().String()
		c.Set(requestIDKey, id)
		c.Writer.Header().Set(requestIDHeader, id)
		c.Next()
	}
}

// requestID returns the ULID assigned to the current request
func requestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// routeGuard gates every request before handler logic runs. It decides,
// from the path and the session cookies alone, whether the request may
// proceed, must redirect to login, or is insufficiently privileged.
//
// The guard never mutates session state: a non-admin authenticated user
// hitting an admin path is denied this path, not logged out.
func (s *Server) routeGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		class := s.policy.Classify(path)

		if !class.NeedsUser && !class.NeedsAdmin {
			c.Next()
			return
		}

		token, _ := c.Cookie(session.CookieToken)
		if token == "" {
			s.logger.Debug().
				Str("request_id", requestID(c)).
				Str("path", path).
				Msg("Unauthenticated request to protected path")
			c.Redirect(http.StatusFound, "/auth/login?next="+queryEscape(path))
			c.Abort()
			return
		}

		if class.NeedsAdmin {
			role, _ := c.Cookie(session.CookieRole)
			if role != adminRole {
				s.logger.Warn().
					Str("request_id", requestID(c)).
					Str("path", path).
					Str("role", role).
					Msg("Non-admin request to admin path")
				c.Redirect(http.StatusFound, "/auth/login?error=admin")
				c.Abort()
				return
			}
		}

		c.Next()
	}
}
