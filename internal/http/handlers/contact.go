package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tesserahq/contacts-backend/internal/http/response"
	"github.com/tesserahq/contacts-backend/internal/pkg/pagination"
	"github.com/tesserahq/contacts-backend/internal/requestdata"
	"github.com/tesserahq/contacts-backend/internal/services"
)

type ContactHandler struct {
	contactService services.ContactService
	listService    services.ContactListService
	waitingService services.WaitingListService
}

func NewContactHandler(contactService services.ContactService, listService services.ContactListService, waitingService services.WaitingListService) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
		listService:    listService,
		waitingService: waitingService,
	}
}

// callerID pulls the authenticated user id out of the request context. The
// auth middleware guarantees it is set on protected routes.
func callerID(c *gin.Context) (uuid.UUID, bool) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", fmt.Errorf("missing caller identity"))
		return uuid.Nil, false
	}
	return rd.UserID, true
}

func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "validation_error", fmt.Errorf("invalid %s", name))
		return uuid.Nil, false
	}
	return id, true
}

// POST /contacts
func (ch *ContactHandler) Create(c *gin.Context) {
	owner, ok := callerID(c)
	if !ok {
		return
	}
	var req services.ContactInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "validation_error", err)
		return
	}
	contact, err := ch.contactService.Create(c.Request.Context(), owner, req)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, contact)
}

// POST /contacts/batch
// body: { "contacts": [ ... ] }
func (ch *ContactHandler) CreateBatch(c *gin.Context) {
	owner, ok := callerID(c)
	if !ok {
		return
	}
	var req struct {
		Contacts []services.ContactInput `json:"contacts"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "validation_error", err)
		return
	}
	created, err := ch.contactService.CreateBatch(c.Request.Context(), owner, req.Contacts)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"contacts": created, "created_count": len(created)})
}

// GET /contacts
func (ch *ContactHandler) List(c *gin.Context) {
	owner, ok := callerID(c)
	if !ok {
		return
	}
	page, err := ch.contactService.List(c.Request.Context(), owner, pagination.FromQuery(c))
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, page)
}

// GET /contacts/search?q=term
func (ch *ContactHandler) Search(c *gin.Context) {
	owner, ok := callerID(c)
	if !ok {
		return
	}
	page, err := ch.contactService.Search(c.Request.Context(), owner, c.Query("q"), pagination.FromQuery(c))
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, page)
}

// GET /contacts/:contact_id
func (ch *ContactHandler) Get(c *gin.Context) {
	owner, ok := callerID(c)
	if !ok {
		return
	}
	contactID, ok := pathUUID(c, "contact_id")
	if !ok {
		return
	}
	contact, err := ch.contactService.Get(c.Request.Context(), owner, contactID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, contact)
}

// PATCH /contacts/:contact_id
func (ch *ContactHandler) Update(c *gin.Context) {
	owner, ok := callerID(c)
	if !ok {
		return
	}
	contactID, ok := pathUUID(c, "contact_id")
	if !ok {
		return
	}
	var req services.ContactUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "validation_error", err)
		return
	}
	contact, err := ch.contactService.Update(c.Request.Context(), owner, contactID, req)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, contact)
}

// DELETE /contacts/:contact_id
func (ch *ContactHandler) Delete(c *gin.Context) {
	owner, ok := callerID(c)
	if !ok {
		return
	}
	contactID, ok := pathUUID(c, "contact_id")
	if !ok {
		return
	}
	if err := ch.contactService.Delete(c.Request.Context(), owner, contactID); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondNoContent(c)
}

// GET /contacts/:contact_id/lists
func (ch *ContactHandler) Lists(c *gin.Context) {
	owner, ok := callerID(c)
	if !ok {
		return
	}
	contactID, ok := pathUUID(c, "contact_id")
	if !ok {
		return
	}
	lists, err := ch.listService.ListsForContact(c.Request.Context(), owner, contactID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"lists": lists})
}

// GET /contacts/:contact_id/waiting-lists
func (ch *ContactHandler) WaitingLists(c *gin.Context) {
	owner, ok := callerID(c)
	if !ok {
		return
	}
	contactID, ok := pathUUID(c, "contact_id")
	if !ok {
		return
	}
	lists, err := ch.waitingService.ListsForContact(c.Request.Context(), owner, contactID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"waiting_lists": lists})
}
