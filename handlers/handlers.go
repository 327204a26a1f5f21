// Package handlers implements the HTTP API on top of the content store.
//
// Each handler depends on the narrowest store interface it needs;
// *database.DB satisfies all of them.
package handlers

import (
	"context"
	"errors"
	"folio/database"
	"folio/logger"
	"folio/models"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ProjectStore interface {
	ListProjects(ctx context.Context, filter models.ProjectFilter) ([]models.Project, error)
	GetProject(ctx context.Context, id uuid.UUID) (*models.Project, error)
	CreateProject(ctx context.Context, in models.ProjectInput) (*models.Project, error)
	UpdateProject(ctx context.Context, id uuid.UUID, in models.ProjectInput) (*models.Project, error)
	DeleteProject(ctx context.Context, id uuid.UUID) error
}

type SkillStore interface {
	ListSkills(ctx context.Context, filter models.SkillFilter) ([]models.Skill, error)
	GetSkill(ctx context.Context, id uuid.UUID) (*models.Skill, error)
	CreateSkill(ctx context.Context, in models.SkillInput) (*models.Skill, error)
	UpdateSkill(ctx context.Context, id uuid.UUID, in models.SkillInput) (*models.Skill, error)
	DeleteSkill(ctx context.Context, id uuid.UUID) error
}

type ContactStore interface {
	CreateContact(ctx context.Context, in models.ContactInput) (*models.Contact, error)
	ListContacts(ctx context.Context, filter database.ContactFilter) ([]models.Contact, error)
}

type ProfileStore interface {
	ListExperiences(ctx context.Context) ([]models.Experience, error)
	ListEducation(ctx context.Context) ([]models.Education, error)
}

type CVStore interface {
	CurrentCV(ctx context.Context) (*models.CVDocument, error)
	ReplaceCV(ctx context.Context, doc models.CVDocument) (*models.CVDocument, error)
}

type AdminStore interface {
	AuthenticateAdmin(ctx context.Context, email, password string) (*models.Admin, error)
}

type Pinger interface {
	Ping(ctx context.Context) error
}

// respondError maps store and validation errors onto status codes.
// Anything unrecognised is logged and reported as a 500 with msg.
func respondError(c *gin.Context, err error, msg string) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "field": verr.Field})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		logger.FromGin(c).Error(msg, zap.Error(err))
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
	}
}

func parseID(c *gin.Context, what string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + what + " ID"})
		return uuid.Nil, false
	}
	return id, true
}
