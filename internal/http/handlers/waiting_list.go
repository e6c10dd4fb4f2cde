package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tesserahq/contacts-backend/internal/http/response"
	"github.com/tesserahq/contacts-backend/internal/pkg/pagination"
	"github.com/tesserahq/contacts-backend/internal/services"
)

type WaitingListHandler struct {
	waitingService services.WaitingListService
}

func NewWaitingListHandler(waitingService services.WaitingListService) *WaitingListHandler {
	return &WaitingListHandler{waitingService: waitingService}
}

// GET /waiting-lists/member-statuses
func (wlh *WaitingListHandler) Statuses(c *gin.Context) {
	response.RespondOK(c, gin.H{"statuses": wlh.waitingService.MemberStatuses()})
}

// POST /waiting-lists
func (wlh *WaitingListHandler) Create(c *gin.Context) {
	owner, ok := callerID(c)
	if !ok {
		return
	}
	var req services.WaitingListInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "validation_error", err)
		return
	}
	list, err := wlh.waitingService.Create(c.Request.Context(), owner, req)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, list)
}

// GET /waiting-lists
func (wlh *WaitingListHandler) List(c *gin.Context) {
	owner, ok := callerID(c)
	if !ok {
		return
	}
	page, err := wlh.waitingService.List(c.Request.Context(), owner, pagination.FromQuery(c))
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, page)
}

// GET /waiting-lists/:list_id
func (wlh *WaitingListHandler) Get(c *gin.Context) {
	owner, ok := callerID(c)
	if !ok {
		return
	}
	listID, ok := pathUUID(c, "list_id")
	if !ok {
		return
	}
	list, err := wlh.waitingService.Get(c.Request.Context(), owner, listID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, list)
}

// PATCH /waiting-lists/:list_id
func (wlh *WaitingListHandler) Update(c *gin.Context) {
	owner, ok := callerID(c)
	if !ok {
		return
	}
	listID, ok := pathUUID(c, "list_id")
	if !ok {
		return
	}
	var req services.WaitingListUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "validation_error", err)
		return
	}
	list, err := wlh.waitingService.Update(c.Request.Context(), owner, listID, req)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, list)
}

// DELETE /waiting-lists/:list_id
func (wlh *WaitingListHandler) Delete(c *gin.Context) {
	owner, ok := callerID(c)
	if !ok {
		return
	}
	listID, ok := pathUUID(c, "list_id")
	if !ok {
		return
	}
	if err := wlh.waitingService.Delete(c.Request.Context(), owner, listID); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondNoContent(c)
}

// POST /waiting-lists/:list_id/members
// body: { "contact_ids": [ ... ], "status": "pending" } (status optional)
func (wlh *WaitingListHandler) AddMembers(c *gin.Context) {
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
		Status     string      `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "validation_error", err)
		return
	}
	result, err := wlh.waitingService.AddMembers(c.Request.Context(), owner, listID, req.ContactIDs, req.Status)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, result)
}

// GET /waiting-lists/:list_id/members
func (wlh *WaitingListHandler) Members(c *gin.Context) {
	owner, ok := callerID(c)
	if !ok {
		return
	}
	listID, ok := pathUUID(c, "list_id")
	if !ok {
		return
	}
	page, err := wlh.waitingService.Members(c.Request.Context(), owner, listID, pagination.FromQuery(c))
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, page)
}

// GET /waiting-lists/:list_id/members/count
func (wlh *WaitingListHandler) MemberCount(c *gin.Context) {
	owner, ok := callerID(c)
	if !ok {
		return
	}
	listID, ok := pathUUID(c, "list_id")
	if !ok {
		return
	}
	count, err := wlh.waitingService.MemberCount(c.Request.Context(), owner, listID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"count": count})
}

// GET /waiting-lists/:list_id/members/by-status/:status
func (wlh *WaitingListHandler) MembersByStatus(c *gin.Context) {
	owner, ok := callerID(c)
	if !ok {
		return
	}
	listID, ok := pathUUID(c, "list_id")
	if !ok {
		return
	}
	page, err := wlh.waitingService.MembersByStatus(c.Request.Context(), owner, listID, c.Param("status"), pagination.FromQuery(c))
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, page)
}

// GET /waiting-lists/:list_id/members/by-status/:status/count
func (wlh *WaitingListHandler) CountByStatus(c *gin.Context) {
	owner, ok := callerID(c)
	if !ok {
		return
	}
	listID, ok := pathUUID(c, "list_id")
	if !ok {
		return
	}
	status := c.Param("status")
	count, err := wlh.waitingService.CountByStatus(c.Request.Context(), owner, listID, status)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"status": status, "count": count})
}

// GET /waiting-lists/:list_id/members/:contact_id
func (wlh *WaitingListHandler) IsMember(c *gin.Context) {
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
	isMember, err := wlh.waitingService.IsMember(c.Request.Context(), owner, listID, contactID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"is_member": isMember})
}

// GET /waiting-lists/:list_id/members/:contact_id/status
func (wlh *WaitingListHandler) MemberStatus(c *gin.Context) {
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
	info, err := wlh.waitingService.MemberStatus(c.Request.Context(), owner, listID, contactID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, info)
}

// PATCH /waiting-lists/:list_id/members/:contact_id/status
// body: { "status": "approved" }
func (wlh *WaitingListHandler) UpdateMemberStatus(c *gin.Context) {
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
	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "validation_error", err)
		return
	}
	info, err := wlh.waitingService.UpdateMemberStatus(c.Request.Context(), owner, listID, contactID, req.Status)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, info)
}

// PATCH /waiting-lists/:list_id/members/status
// body: { "contact_ids": [ ... ], "status": "notified" }
func (wlh *WaitingListHandler) BulkUpdateStatus(c *gin.Context) {
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
		Status     string      `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "validation_error", err)
		return
	}
	result, err := wlh.waitingService.BulkUpdateStatus(c.Request.Context(), owner, listID, req.ContactIDs, req.Status)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, result)
}

// DELETE /waiting-lists/:list_id/members/:contact_id
func (wlh *WaitingListHandler) RemoveMember(c *gin.Context) {
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
	if err := wlh.waitingService.RemoveMember(c.Request.Context(), owner, listID, contactID); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondNoContent(c)
}

// DELETE /waiting-lists/:list_id/members
func (wlh *WaitingListHandler) ClearMembers(c *gin.Context) {
	owner, ok := callerID(c)
	if !ok {
		return
	}
	listID, ok := pathUUID(c, "list_id")
	if !ok {
		return
	}
	removed, err := wlh.waitingService.ClearMembers(c.Request.Context(), owner, listID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"removed_count": removed})
}
