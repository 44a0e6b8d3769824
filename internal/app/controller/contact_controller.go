package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/florashop/flora-backend/internal/app/service"
	apperrors "github.com/florashop/flora-backend/internal/errors"
	"github.com/florashop/flora-backend/internal/middleware"
)

type ContactController struct {
	contactService service.ContactService
}

func NewContactController(contactService service.ContactService) *ContactController {
	return &ContactController{
		contactService: contactService,
	}
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Form returns the empty contact form payload
// GET /contact/
func (ctrl *ContactController) Form(c *gin.Context) {
	c.JSON(http.StatusOK, contactRequest{})
}

// Submit stores a visitor message and acknowledges it explicitly.
// POST /contact/
func (ctrl *ContactController) Submit(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Malformed contact body", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidFormat, "Request body must be valid JSON")
		return
	}

	contact, err := ctrl.contactService.Submit(req.Name, req.Email, req.Message)
	if err != nil {
		log.Error("Failed to store contact message", err)
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Thank you for your message. We will get back to you soon",
		"contact_id": contact.ID,
	})
}
