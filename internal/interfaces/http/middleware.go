package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/fivemlab/commute-expense/internal/auth"
)

const sessionKey = "session"

// sessionMiddleware verifies the Bearer token and stores the caller's
// session in the request context.
func (s *Server) sessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, Response{
				Success: false,
				Error:   "authorization header required",
			})
			return
		}

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, Response{
				Success: false,
				Error:   "authorization header must be a Bearer token",
			})
			return
		}

		session, err := s.tokens.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, Response{
				Success: false,
				Error:   "invalid or expired token",
			})
			return
		}

		c.Set(sessionKey, session)
		c.Next()
	}
}

// sessionFrom returns the session stored by sessionMiddleware.
func sessionFrom(c *gin.Context) auth.Session {
	if v, ok := c.Get(sessionKey); ok {
		if session, ok := v.(auth.Session); ok {
			return session
		}
	}
	return auth.Session{}
}
