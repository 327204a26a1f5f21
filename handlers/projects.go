package handlers

import (
	"folio/logger"
	"folio/models"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func ListProjects(db ProjectStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var filter models.ProjectFilter
		if err := c.ShouldBindQuery(&filter); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if filter.Category != "" && !models.ProjectCategory(filter.Category).Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown category", "field": "category"})
			return
		}

		projects, err := db.ListProjects(c.Request.Context(), filter)
		if err != nil {
			respondError(c, err, "failed to list projects")
			return
		}

		c.JSON(http.StatusOK, models.ProjectsResponse{
			Projects: projects,
			Total:    len(projects),
		})
	}
}

func GetProject(db ProjectStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "project")
		if !ok {
			return
		}

		project, err := db.GetProject(c.Request.Context(), id)
		if err != nil {
			respondError(c, err, "failed to get project")
			return
		}
		c.JSON(http.StatusOK, project)
	}
}

func CreateProject(db ProjectStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		in, ok := bindProject(c)
		if !ok {
			return
		}

		project, err := db.CreateProject(c.Request.Context(), in)
		if err != nil {
			respondError(c, err, "failed to create project")
			return
		}

		logger.FromGin(c).Info("project created", zap.String("id", project.ID.String()))
		c.JSON(http.StatusCreated, project)
	}
}

func UpdateProject(db ProjectStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "project")
		if !ok {
			return
		}
		in, ok := bindProject(c)
		if !ok {
			return
		}

		project, err := db.UpdateProject(c.Request.Context(), id, in)
		if err != nil {
			respondError(c, err, "failed to update project")
			return
		}
		c.JSON(http.StatusOK, project)
	}
}

func DeleteProject(db ProjectStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "project")
		if !ok {
			return
		}

		if err := db.DeleteProject(c.Request.Context(), id); err != nil {
			respondError(c, err, "failed to delete project")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "project deleted"})
	}
}

func bindProject(c *gin.Context) (models.ProjectInput, bool) {
	var req models.ProjectInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return req, false
	}
	in, err := req.Prepare()
	if err != nil {
		respondError(c, err, "invalid project")
		return in, false
	}
	return in, true
}
