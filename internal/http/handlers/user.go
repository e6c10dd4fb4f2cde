package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tesserahq/contacts-backend/internal/http/response"
	"github.com/tesserahq/contacts-backend/internal/pkg/pagination"
	"github.com/tesserahq/contacts-backend/internal/services"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GET /me
func (uh *UserHandler) GetMe(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}
	me, err := uh.userService.Get(c.Request.Context(), caller)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, me)
}

// POST /users
func (uh *UserHandler) Create(c *gin.Context) {
	var req services.UserInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "validation_error", err)
		return
	}
	user, err := uh.userService.Create(c.Request.Context(), req)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, user)
}

// GET /users
func (uh *UserHandler) List(c *gin.Context) {
	page, err := uh.userService.List(c.Request.Context(), pagination.FromQuery(c))
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, page)
}

// GET /users/:user_id
func (uh *UserHandler) Get(c *gin.Context) {
	userID, ok := pathUUID(c, "user_id")
	if !ok {
		return
	}
	user, err := uh.userService.Get(c.Request.Context(), userID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, user)
}

// PATCH /users/:user_id
func (uh *UserHandler) Update(c *gin.Context) {
	userID, ok := pathUUID(c, "user_id")
	if !ok {
		return
	}
	var req services.UserUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "validation_error", err)
		return
	}
	user, err := uh.userService.Update(c.Request.Context(), userID, req)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, user)
}

// POST /users/:user_id/verify
func (uh *UserHandler) Verify(c *gin.Context) {
	userID, ok := pathUUID(c, "user_id")
	if !ok {
		return
	}
	user, err := uh.userService.Verify(c.Request.Context(), userID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, user)
}

// DELETE /users/:user_id
func (uh *UserHandler) Delete(c *gin.Context) {
	userID, ok := pathUUID(c, "user_id")
	if !ok {
		return
	}
	if err := uh.userService.Delete(c.Request.Context(), userID); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondNoContent(c)
}
