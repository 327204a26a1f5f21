package handlers

import (
	"folio/database"
	"folio/logger"
	"folio/models"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SubmitContact stores a public contact form message.
func SubmitContact(db ContactStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ContactInput
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		in, err := req.Prepare()
		if err != nil {
			respondError(c, err, "invalid contact")
			return
		}

		contact, err := db.CreateContact(c.Request.Context(), in)
		if err != nil {
			respondError(c, err, "failed to send message")
			return
		}

		logger.FromGin(c).Info("contact received", zap.String("id", contact.ID.String()))
		c.JSON(http.StatusCreated, contact)
	}
}

func ListContacts(db ContactStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var filter database.ContactFilter
		if err := c.ShouldBindQuery(&filter); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		contacts, err := db.ListContacts(c.Request.Context(), filter)
		if err != nil {
			respondError(c, err, "failed to list contacts")
			return
		}
		c.JSON(http.StatusOK, models.ContactsResponse{Contacts: contacts, Total: len(contacts)})
	}
}
