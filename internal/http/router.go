package http

import (
	"github.com/gin-gonic/gin"

	httpH "github.com/tesserahq/contacts-backend/internal/http/handlers"
	httpMW "github.com/tesserahq/contacts-backend/internal/http/middleware"
	"github.com/tesserahq/contacts-backend/internal/pkg/logger"
)

type RouterConfig struct {
	Log                *logger.Logger
	CORSAllowedOrigins string

	AuthMiddleware       *httpMW.AuthMiddleware
	StatsCacheMiddleware *httpMW.StatsCacheMiddleware

	HealthHandler      *httpH.HealthHandler
	UserHandler        *httpH.UserHandler
	ContactHandler     *httpH.ContactHandler
	ContactListHandler *httpH.ContactListHandler
	WaitingListHandler *httpH.WaitingListHandler
	InteractionHandler *httpH.InteractionHandler
	StatsHandler       *httpH.StatsHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.Log != nil {
		r.Use(httpMW.RequestLogger(cfg.Log))
	}
	r.Use(httpMW.CORS(cfg.CORSAllowedOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		// Account provisioning (public): the identity provider owns
		// credentials, this just records the account.
		if cfg.UserHandler != nil {
			api.POST("/users", cfg.UserHandler.Create)
		}
	}

	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}
		if cfg.StatsCacheMiddleware != nil {
			protected.Use(cfg.StatsCacheMiddleware.InvalidateOnWrite())
		}

		// User
		if cfg.UserHandler != nil {
			protected.GET("/me", cfg.UserHandler.GetMe)
			protected.GET("/users", cfg.UserHandler.List)
			protected.GET("/users/:user_id", cfg.UserHandler.Get)
			protected.PATCH("/users/:user_id", cfg.UserHandler.Update)
			protected.POST("/users/:user_id/verify", cfg.UserHandler.Verify)
			protected.DELETE("/users/:user_id", cfg.UserHandler.Delete)
		}

		// Contacts
		if cfg.ContactHandler != nil {
			protected.POST("/contacts", cfg.ContactHandler.Create)
			protected.POST("/contacts/batch", cfg.ContactHandler.CreateBatch)
			protected.GET("/contacts", cfg.ContactHandler.List)
			protected.GET("/contacts/search", cfg.ContactHandler.Search)
			protected.GET("/contacts/:contact_id", cfg.ContactHandler.Get)
			protected.PATCH("/contacts/:contact_id", cfg.ContactHandler.Update)
			protected.DELETE("/contacts/:contact_id", cfg.ContactHandler.Delete)
			protected.GET("/contacts/:contact_id/lists", cfg.ContactHandler.Lists)
			protected.GET("/contacts/:contact_id/waiting-lists", cfg.ContactHandler.WaitingLists)
		}

		// Contact lists
		if cfg.ContactListHandler != nil {
			protected.POST("/contact-lists", cfg.ContactListHandler.Create)
			protected.GET("/contact-lists", cfg.ContactListHandler.List)
			protected.GET("/contact-lists/:list_id", cfg.ContactListHandler.Get)
			protected.PATCH("/contact-lists/:list_id", cfg.ContactListHandler.Update)
			protected.DELETE("/contact-lists/:list_id", cfg.ContactListHandler.Delete)
			protected.POST("/contact-lists/:list_id/contacts", cfg.ContactListHandler.AddContacts)
			protected.GET("/contact-lists/:list_id/contacts", cfg.ContactListHandler.Members)
			protected.GET("/contact-lists/:list_id/contacts/count", cfg.ContactListHandler.MemberCount)
			protected.GET("/contact-lists/:list_id/contacts/:contact_id", cfg.ContactListHandler.IsMember)
			protected.DELETE("/contact-lists/:list_id/contacts/:contact_id", cfg.ContactListHandler.RemoveContact)
			protected.DELETE("/contact-lists/:list_id/contacts", cfg.ContactListHandler.ClearContacts)
		}

		// Waiting lists
		if cfg.WaitingListHandler != nil {
			protected.GET("/waiting-lists/member-statuses", cfg.WaitingListHandler.Statuses)
			protected.POST("/waiting-lists", cfg.WaitingListHandler.Create)
			protected.GET("/waiting-lists", cfg.WaitingListHandler.List)
			protected.GET("/waiting-lists/:list_id", cfg.WaitingListHandler.Get)
			protected.PATCH("/waiting-lists/:list_id", cfg.WaitingListHandler.Update)
			protected.DELETE("/waiting-lists/:list_id", cfg.WaitingListHandler.Delete)
			protected.POST("/waiting-lists/:list_id/members", cfg.WaitingListHandler.AddMembers)
			protected.GET("/waiting-lists/:list_id/members", cfg.WaitingListHandler.Members)
			protected.GET("/waiting-lists/:list_id/members/count", cfg.WaitingListHandler.MemberCount)
			protected.GET("/waiting-lists/:list_id/members/by-status/:status", cfg.WaitingListHandler.MembersByStatus)
			protected.GET("/waiting-lists/:list_id/members/by-status/:status/count", cfg.WaitingListHandler.CountByStatus)
			protected.GET("/waiting-lists/:list_id/members/:contact_id", cfg.WaitingListHandler.IsMember)
			protected.GET("/waiting-lists/:list_id/members/:contact_id/status", cfg.WaitingListHandler.MemberStatus)
			protected.PATCH("/waiting-lists/:list_id/members/:contact_id/status", cfg.WaitingListHandler.UpdateMemberStatus)
			protected.PATCH("/waiting-lists/:list_id/members/status", cfg.WaitingListHandler.BulkUpdateStatus)
			protected.DELETE("/waiting-lists/:list_id/members/:contact_id", cfg.WaitingListHandler.RemoveMember)
			protected.DELETE("/waiting-lists/:list_id/members", cfg.WaitingListHandler.ClearMembers)
		}

		// Interactions
		if cfg.InteractionHandler != nil {
			protected.GET("/interactions/actions", cfg.InteractionHandler.Actions)
			protected.GET("/interactions/upcoming", cfg.InteractionHandler.Upcoming)
			protected.POST("/contacts/:contact_id/interactions", cfg.InteractionHandler.Create)
			protected.GET("/contacts/:contact_id/interactions", cfg.InteractionHandler.ListByContact)
			protected.PATCH("/interactions/:interaction_id", cfg.InteractionHandler.Update)
			protected.DELETE("/interactions/:interaction_id", cfg.InteractionHandler.Delete)
		}

		// Stats
		if cfg.StatsHandler != nil {
			protected.GET("/stats", cfg.StatsHandler.OwnerStats)
		}
	}

	return r
}
