package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tesserahq/contacts-backend/internal/http/response"
	"github.com/tesserahq/contacts-backend/internal/pkg/pagination"
	"github.com/tesserahq/contacts-backend/internal/services"
)

type ContactListHandler struct {
	listService services.ContactListService
}

func NewContactListHandler(listService services.ContactListService) *ContactListHandler {
	return &ContactListHandler{listService: listService}
}

// POST /contact-lists
func (clh *ContactListHandler) Create(c *gin.Context) {
	owner, ok := callerID(c)
	if !ok {
		return
	}
	var req services.ContactListInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "validation_error", err)
		return
	}
	list, err := clh.listService.Create(c.Request.Context(), owner, req)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, list)
}

// GET /contact-lists
func (clh *ContactListHandler) List(c *gin.Context) {
	owner, ok := callerID(c)
	if !ok {
		return
	}
	page, err := clh.listService.List(c.Request.Context(), owner, pagination.FromQuery(c))
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, page)
}

// GET /contact-lists/:list_id
func (clh *ContactListHandler) Get(c *gin.Context) {
	owner, ok := callerID(c)
	if !ok {
		return
	}
	listID, ok := pathUUID(c, "list_id")
	if !ok {
		return
	}
	list, err := clh.listService.Get(c.Request.Context(), owner, listID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, list)
}

// PATCH /contact-lists/:list_id
func (clh *ContactListHandler) Update(c *gin.Context) {
	owner, ok := callerID(c)
	if !ok {
		return
	}
	listID, ok := pathUUID(c, "list_id")
	if !ok {
		return
	}
	var req services.ContactListUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "validation_error", err)
		return
	}
	list, err := clh.listService.Update(c.Request.Context(), owner, listID, req)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, list)
}

// DELETE /contact-lists/:list_id
func (clh *ContactListHandler) Delete(c *gin.Context) {
	owner, ok := callerID(c)
	if !ok {
		return
	}
	listID, ok := pathUUID(c, "list_id")
	if !ok {
		return
	}
	if err := clh.listService.Delete(c.Request.Context(), owner, listID); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondNoContent(c)
}

// POST /contact-lists/:list_id/contacts
// body: { "contact_ids": [ ... ] }
func (clh *ContactListHandler) AddContacts(c *gin.Context) {
	owner, ok := callerID(c)
	if !ok {
		return
	}
	listID, ok := pathUUID(c, "list_id")
	if !ok {
		return
	}
	var req struct {
		ContactIDs []uuid.UUID `json:"contact_ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "validation_error", err)
		return
	}
	result, err := clh.listService.AddContacts(c.Request.Context(), owner, listID, req.ContactIDs)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, result)
}

// GET /contact-lists/:list_id/contacts
func (clh *ContactListHandler) Members(c *gin.Context) {
	owner, ok := callerID(c)
	if !ok {
		return
	}
	listID, ok := pathUUID(c, "list_id")
	if !ok {
		return
	}
	page, err := clh.listService.Members(c.Request.Context(), owner, listID, pagination.FromQuery(c))
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, page)
}

// GET /contact-lists/:list_id/contacts/count
func (clh *ContactListHandler) MemberCount(c *gin.Context) {
	owner, ok := callerID(c)
	if !ok {
		return
	}
	listID, ok := pathUUID(c, "list_id")
	if !ok {
		return
	}
	count, err := clh.listService.MemberCount(c.Request.Context(), owner, listID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"count": count})
}

// GET /contact-lists/:list_id/contacts/:contact_id
func (clh *ContactListHandler) IsMember(c *gin.Context) {
	owner, ok := callerID(c)
	if !ok {
		return
	}
	listID, ok := pathUUID(c, "list_id")
	if !ok {
		return
	}
	contactID, ok := pathUUID(c, "contact_id")
	if !ok {
		return
	}
	isMember, err := clh.listService.IsMember(c.Request.Context(), owner, listID, contactID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"is_member": isMember})
}

// DELETE /contact-lists/:list_id/contacts/:contact_id
func (clh *ContactListHandler) RemoveContact(c *gin.Context) {
	owner, ok := callerID(c)
	if !ok {
		return
	}
	listID, ok := pathUUID(c, "list_id")
	if !ok {
		return
	}
	contactID, ok := pathUUID(c, "contact_id")
	if !ok {
		return
	}
	if err := clh.listService.RemoveContact(c.Request.Context(), owner, listID, contactID); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondNoContent(c)
}

// DELETE /contact-lists/:list_id/contacts
func (clh *ContactListHandler) ClearContacts(c *gin.Context) {
	owner, ok := callerID(c)
	if !ok {
		return
	}
	listID, ok := pathUUID(c, "list_id")
	if !ok {
		return
	}
	removed, err := clh.listService.ClearContacts(c.Request.Context(), owner, listID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"removed_count": removed})
}
