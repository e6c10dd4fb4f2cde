package app

import (
	"gorm.io/gorm"

	"github.com/tesserahq/contacts-backend/internal/data/repos"
	"github.com/tesserahq/contacts-backend/internal/pkg/logger"
)

type Repos struct {
	User              repos.UserRepo
	Contact           repos.ContactRepo
	Interaction       repos.ContactInteractionRepo
	ContactList       repos.ContactListRepo
	ContactListMember repos.ContactListMemberRepo
	WaitingList       repos.WaitingListRepo
	WaitingListMember repos.WaitingListMemberRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:              repos.NewUserRepo(db, log),
		Contact:           repos.NewContactRepo(db, log),
		Interaction:       repos.NewContactInteractionRepo(db, log),
		ContactList:       repos.NewContactListRepo(db, log),
		ContactListMember: repos.NewContactListMemberRepo(db, log),
		WaitingList:       repos.NewWaitingListRepo(db, log),
		WaitingListMember: repos.NewWaitingListMemberRepo(db, log),
	}
}
