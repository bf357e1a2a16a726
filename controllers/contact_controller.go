package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/d2cx/foundations-backend/services"
	"github.com/d2cx/foundations-backend/utils"
)

// ContactController exposes the contact-form HTTP surface.
type ContactController struct {
	service *services.ContactService
}

// NewContactController wires a ContactController.
func NewContactController(service *services.ContactService) *ContactController {
	return &ContactController{service: service}
}

// Submit handles POST /api/contact
func (cc *ContactController) Submit(c *gin.Context) {
	utils.LogInfo("Contact form submission received")

	var input services.ContactInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.LogError("Invalid contact request: %v", err)
		utils.BadRequest(c, "Invalid input data", err.Error())
		return
	}

	if err := cc.service.Submit(c.Request.Context(), input); err != nil {
		if appErr := utils.GetAppError(err); appErr != nil && utils.IsValidationError(err) {
			utils.BadRequest(c, appErr.Message, appErr.Err)
			return
		}
		utils.InternalServerError(c, "Failed to submit your request. Please try again later.", nil)
		return
	}

	utils.Success(c, "Your request has been submitted successfully. We'll notify you soon via email or WhatsApp.", nil)
}
