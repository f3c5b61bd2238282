package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/evjourney-backend-go/internal/service"
	"github.com/jengzang/evjourney-backend-go/internal/session"
	"github.com/jengzang/evjourney-backend-go/pkg/response"
)

const sessionKey = "journey_session"

// RequireSession resolves the session token sent as a bearer token or in the
// token query parameter
func RequireSession(svc *service.JourneyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			token = c.Query("token")
		}
		if token == "" {
			response.Unauthorized(c, "Missing session token")
			c.Abort()
			return
		}

		sess, err := svc.Resolve(token)
		if err != nil {
			writeError(c, err, "Failed to resolve session")
			c.Abort()
			return
		}

		c.Set(sessionKey, sess)
		c.Next()
	}
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// currentSession returns the session set by RequireSession
func currentSession(c *gin.Context) *session.Session {
	v, _ := c.Get(sessionKey)
	sess, _ := v.(*session.Session)
	return sess
}
