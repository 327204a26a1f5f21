package handlers

import (
	"folio/models"
	"net/http"

	"github.com/gin-gonic/gin"
)

func ListExperiences(db ProfileStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := db.ListExperiences(c.Request.Context())
		if err != nil {
			respondError(c, err, "failed to list experiences")
			return
		}
		c.JSON(http.StatusOK, models.ExperiencesResponse{Experiences: items, Total: len(items)})
	}
}

func ListEducation(db ProfileStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := db.ListEducation(c.Request.Context())
		if err != nil {
			respondError(c, err, "failed to list education")
			return
		}
		c.JSON(http.StatusOK, models.EducationResponse{Education: items, Total: len(items)})
	}
}
