package handlers

import (
	"folio/logger"
	"folio/models"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func ListSkills(db SkillStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var filter models.SkillFilter
		if err := c.ShouldBindQuery(&filter); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if filter.Category != "" && !models.SkillCategory(filter.Category).Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown category", "field": "category"})
			return
		}

		skills, err := db.ListSkills(c.Request.Context(), filter)
		if err != nil {
			respondError(c, err, "failed to list skills")
			return
		}
		c.JSON(http.StatusOK, models.SkillsResponse{Skills: skills, Total: len(skills)})
	}
}

func GetSkill(db SkillStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "skill")
		if !ok {
			return
		}
		skill, err := db.GetSkill(c.Request.Context(), id)
		if err != nil {
			respondError(c, err, "failed to get skill")
			return
		}
		c.JSON(http.StatusOK, skill)
	}
}

func CreateSkill(db SkillStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		in, ok := bindSkill(c)
		if !ok {
			return
		}
		skill, err := db.CreateSkill(c.Request.Context(), in)
		if err != nil {
			respondError(c, err, "failed to create skill")
			return
		}
		logger.FromGin(c).Info("skill created", zap.String("id", skill.ID.String()))
		c.JSON(http.StatusCreated, skill)
	}
}

func UpdateSkill(db SkillStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "skill")
		if !ok {
			return
		}
		in, ok := bindSkill(c)
		if !ok {
			return
		}
		skill, err := db.UpdateSkill(c.Request.Context(), id, in)
		if err != nil {
			respondError(c, err, "failed to update skill")
			return
		}
		c.JSON(http.StatusOK, skill)
	}
}

func DeleteSkill(db SkillStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "skill")
		if !ok {
			return
		}
		if err := db.DeleteSkill(c.Request.Context(), id); err != nil {
			respondError(c, err, "failed to delete skill")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "skill deleted"})
	}
}

func bindSkill(c *gin.Context) (models.SkillInput, bool) {
	var req models.SkillInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return req, false
	}
	in, err := req.Prepare()
	if err != nil {
		respondError(c, err, "invalid skill")
		return in, false
	}
	return in, true
}
