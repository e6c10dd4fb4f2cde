package app

import (
	"github.com/gin-gonic/gin"

	"github.com/tesserahq/contacts-backend/internal/http"
	httpH "github.com/tesserahq/contacts-backend/internal/http/handlers"
	httpMW "github.com/tesserahq/contacts-backend/internal/http/middleware"
	"github.com/tesserahq/contacts-backend/internal/pkg/logger"
)

type Middleware struct {
	Auth       *httpMW.AuthMiddleware
	StatsCache *httpMW.StatsCacheMiddleware
}

type Handlers struct {
	Health      *httpH.HealthHandler
	User        *httpH.UserHandler
	Contact     *httpH.ContactHandler
	ContactList *httpH.ContactListHandler
	WaitingList *httpH.WaitingListHandler
	Interaction *httpH.InteractionHandler
	Stats       *httpH.StatsHandler
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:      httpH.NewHealthHandler(),
		User:        httpH.NewUserHandler(services.User),
		Contact:     httpH.NewContactHandler(services.Contact, services.ContactList, services.WaitingList),
		ContactList: httpH.NewContactListHandler(services.ContactList),
		WaitingList: httpH.NewWaitingListHandler(services.WaitingList),
		Interaction: httpH.NewInteractionHandler(services.Interaction),
		Stats:       httpH.NewStatsHandler(services.Stats),
	}
}

func wireMiddleware(log *logger.Logger, services Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth:       httpMW.NewAuthMiddleware(log, services.Auth),
		StatsCache: httpMW.NewStatsCacheMiddleware(log, services.Stats),
	}
}

func wireRouter(log *logger.Logger, cfg Config, handlers Handlers, middleware Middleware) *gin.Engine {
	return http.NewRouter(http.RouterConfig{
		Log:                  log,
		CORSAllowedOrigins:   cfg.CORSAllowedOrigins,
		AuthMiddleware:       middleware.Auth,
		StatsCacheMiddleware: middleware.StatsCache,
		HealthHandler:        handlers.Health,
		UserHandler:          handlers.User,
		ContactHandler:       handlers.Contact,
		ContactListHandler:   handlers.ContactList,
		WaitingListHandler:   handlers.WaitingList,
		InteractionHandler:   handlers.Interaction,
		StatsHandler:         handlers.Stats,
	})
}
