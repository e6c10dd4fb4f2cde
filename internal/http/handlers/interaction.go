package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tesserahq/contacts-backend/internal/http/response"
	"github.com/tesserahq/contacts-backend/internal/pkg/pagination"
	"github.com/tesserahq/contacts-backend/internal/services"
)

type InteractionHandler struct {
	interactionService services.InteractionService
}

func NewInteractionHandler(interactionService services.InteractionService) *InteractionHandler {
	return &InteractionHandler{interactionService: interactionService}
}

// GET /interactions/actions
func (ih *InteractionHandler) Actions(c *gin.Context) {
	response.RespondOK(c, gin.H{"actions": ih.interactionService.Actions()})
}

// POST /contacts/:contact_id/interactions
func (ih *InteractionHandler) Create(c *gin.Context) {
	owner, ok := callerID(c)
	if !ok {
		return
	}
	contactID, ok := pathUUID(c, "contact_id")
	if !ok {
		return
	}
	var req services.InteractionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "validation_error", err)
		return
	}
	interaction, err := ih.interactionService.Create(c.Request.Context(), owner, contactID, req)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, interaction)
}

// GET /contacts/:contact_id/interactions
func (ih *InteractionHandler) ListByContact(c *gin.Context) {
	owner, ok := callerID(c)
	if !ok {
		return
	}
	contactID, ok := pathUUID(c, "contact_id")
	if !ok {
		return
	}
	page, err := ih.interactionService.ListByContact(c.Request.Context(), owner, contactID, pagination.FromQuery(c))
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, page)
}

// PATCH /interactions/:interaction_id
func (ih *InteractionHandler) Update(c *gin.Context) {
	owner, ok := callerID(c)
	if !ok {
		return
	}
	interactionID, ok := pathUUID(c, "interaction_id")
	if !ok {
		return
	}
	var req services.InteractionUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "validation_error", err)
		return
	}
	interaction, err := ih.interactionService.Update(c.Request.Context(), owner, interactionID, req)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, interaction)
}

// DELETE /interactions/:interaction_id
func (ih *InteractionHandler) Delete(c *gin.Context) {
	owner, ok := callerID(c)
	if !ok {
		return
	}
	interactionID, ok := pathUUID(c, "interaction_id")
	if !ok {
		return
	}
	if err := ih.interactionService.Delete(c.Request.Context(), owner, interactionID); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondNoContent(c)
}

// GET /interactions/upcoming
func (ih *InteractionHandler) Upcoming(c *gin.Context) {
	owner, ok := callerID(c)
	if !ok {
		return
	}
	upcoming, err := ih.interactionService.Upcoming(c.Request.Context(), owner)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"upcoming": upcoming})
}
