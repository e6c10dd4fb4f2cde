package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tesserahq/contacts-backend/internal/pkg/logger"
	"github.com/tesserahq/contacts-backend/internal/requestdata"
	"github.com/tesserahq/contacts-backend/internal/services"
)

type StatsCacheMiddleware struct {
	log   *logger.Logger
	stats services.StatsService
}

func NewStatsCacheMiddleware(log *logger.Logger, stats services.StatsService) *StatsCacheMiddleware {
	middlewareLogger := log.With("middleware", "StatsCacheMiddleware")
	return &StatsCacheMiddleware{log: middlewareLogger, stats: stats}
}

// InvalidateOnWrite drops the caller's cached stats after any successful
// mutating request, so the dashboard never serves a stale rollup longer
// than one read.
func (sm *StatsCacheMiddleware) InvalidateOnWrite() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Request.Method == http.MethodGet || c.Writer.Status() >= http.StatusBadRequest {
			return
		}
		rd := requestdata.GetRequestData(c.Request.Context())
		if rd == nil {
			return
		}
		if err := sm.stats.Invalidate(c.Request.Context(), rd.UserID); err != nil {
			sm.log.Warn("Failed to invalidate cached stats", "user_id", rd.UserID, "error", err)
		}
	}
}
