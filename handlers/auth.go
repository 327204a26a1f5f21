package handlers

import (
	"context"
	"errors"
	"folio/database"
	"folio/logger"
	"folio/middleware"
	"folio/models"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionIssuer creates and revokes admin sessions.
type SessionIssuer interface {
	Issue(ctx context.Context, admin models.Admin) (*models.Session, error)
	Revoke(ctx context.Context, token string) error
}

// CodeInvalidCredentials marks a login rejected for a wrong email or
// password, as opposed to a rejected API key.
const CodeInvalidCredentials = "invalid_credentials"

func Login(admins AdminStore, sessions SessionIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var creds models.Credentials
		if err := c.ShouldBindJSON(&creds); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx := c.Request.Context()
		admin, err := admins.AuthenticateAdmin(ctx, creds.Email, creds.Password)
		if err != nil {
			if errors.Is(err, database.ErrInvalidCredentials) {
				logger.FromGin(c).Info("rejected login", zap.String("email", creds.Email))
				c.JSON(http.StatusUnauthorized, gin.H{
					"error": database.ErrInvalidCredentials.Error(),
					"code":  CodeInvalidCredentials,
				})
				return
			}
			respondError(c, err, "failed to sign in")
			return
		}

		sess, err := sessions.Issue(ctx, *admin)
		if err != nil {
			respondError(c, err, "failed to sign in")
			return
		}

		logger.FromGin(c).Info("admin signed in", zap.String("admin_id", admin.ID.String()))
		c.JSON(http.StatusOK, sess)
	}
}

// GetSession echoes the session resolved by middleware.AuthRequired.
func GetSession(c *gin.Context) {
	sess, ok := middleware.SessionFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no session"})
		return
	}
	c.JSON(http.StatusOK, sess)
}

func Logout(sessions SessionIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := middleware.BearerToken(c)
		if err := sessions.Revoke(c.Request.Context(), token); err != nil {
			respondError(c, err, "failed to sign out")
			return
		}
		c.Status(http.StatusNoContent)
	}
}
