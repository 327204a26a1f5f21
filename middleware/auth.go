package middleware

import (
	"context"
	"errors"
	"folio/logger"
	"folio/models"
	"folio/session"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const sessionKey = "session"

// SessionLookup resolves a bearer token to a live session.
type SessionLookup interface {
	Lookup(ctx context.Context, token string) (*models.Session, error)
}

// AuthRequired rejects requests without a valid admin session and stores
// the session in the context for handlers to use.
func AuthRequired(sessions SessionLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := BearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
			return
		}

		sess, err := sessions.Lookup(c.Request.Context(), token)
		if err != nil {
			if !errors.Is(err, session.ErrInvalidToken) {
				logger.FromGin(c).Error("session lookup failed", zap.Error(err))
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired session"})
			return
		}

		c.Set(sessionKey, sess)
		c.Next()
	}
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header.
func BearerToken(c *gin.Context) (string, bool) {
	parts := strings.Fields(c.GetHeader("Authorization"))
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

// SessionFrom returns the session stored by AuthRequired.
func SessionFrom(c *gin.Context) (*models.Session, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil, false
	}
	sess, ok := v.(*models.Session)
	return sess, ok
}
