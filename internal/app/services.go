package app

import (
	"gorm.io/gorm"

	redisclient "github.com/tesserahq/contacts-backend/internal/clients/redis"
	"github.com/tesserahq/contacts-backend/internal/pkg/logger"
	"github.com/tesserahq/contacts-backend/internal/services"
)

type Services struct {
	Auth        services.AuthService
	User        services.UserService
	Contact     services.ContactService
	ContactList services.ContactListService
	WaitingList services.WaitingListService
	Interaction services.InteractionService
	Stats       services.StatsService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos, cache *redisclient.Cache) Services {
	log.Info("Wiring services...")
	interactionService := services.NewInteractionService(db, log, reposet.Interaction, reposet.Contact)
	return Services{
		Auth:        services.NewAuthService(db, log, reposet.User, cfg.JWTSecretKey, cfg.AuthDisabled, cfg.DevUserID),
		User:        services.NewUserService(db, log, reposet.User),
		Contact:     services.NewContactService(db, log, reposet.Contact),
		ContactList: services.NewContactListService(db, log, reposet.ContactList, reposet.ContactListMember, reposet.Contact),
		WaitingList: services.NewWaitingListService(db, log, reposet.WaitingList, reposet.WaitingListMember, reposet.Contact),
		Interaction: interactionService,
		Stats: services.NewStatsService(db, log, cache,
			reposet.Contact, reposet.ContactList,
			reposet.WaitingList, reposet.WaitingListMember,
			interactionService),
	}
}
