package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/tesserahq/contacts-backend/internal/http/response"
	"github.com/tesserahq/contacts-backend/internal/services"
)

type StatsHandler struct {
	statsService services.StatsService
}

func NewStatsHandler(statsService services.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// GET /stats
func (sh *StatsHandler) OwnerStats(c *gin.Context) {
	owner, ok := callerID(c)
	if !ok {
		return
	}
	stats, err := sh.statsService.OwnerStats(c.Request.Context(), owner)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, stats)
}
