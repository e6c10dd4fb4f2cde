package repos

import (
	"gorm.io/gorm"

	"github.com/tesserahq/contacts-backend/internal/data/repos/contacts"
	"github.com/tesserahq/contacts-backend/internal/data/repos/lists"
	"github.com/tesserahq/contacts-backend/internal/data/repos/users"
	"github.com/tesserahq/contacts-backend/internal/data/repos/waitlists"
	"github.com/tesserahq/contacts-backend/internal/pkg/logger"
)

type UserRepo = users.UserRepo

type ContactRepo = contacts.ContactRepo
type ContactInteractionRepo = contacts.InteractionRepo

type ContactListRepo = lists.ContactListRepo
type ContactListMemberRepo = lists.MemberRepo

type WaitingListRepo = waitlists.WaitingListRepo
type WaitingListMemberRepo = waitlists.MemberRepo

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo { return users.NewUserRepo(db, baseLog) }

func NewContactRepo(db *gorm.DB, baseLog *logger.Logger) ContactRepo {
	return contacts.NewContactRepo(db, baseLog)
}
func NewContactInteractionRepo(db *gorm.DB, baseLog *logger.Logger) ContactInteractionRepo {
	return contacts.NewInteractionRepo(db, baseLog)
}

func NewContactListRepo(db *gorm.DB, baseLog *logger.Logger) ContactListRepo {
	return lists.NewContactListRepo(db, baseLog)
}
func NewContactListMemberRepo(db *gorm.DB, baseLog *logger.Logger) ContactListMemberRepo {
	return lists.NewMemberRepo(db, baseLog)
}

func NewWaitingListRepo(db *gorm.DB, baseLog *logger.Logger) WaitingListRepo {
	return waitlists.NewWaitingListRepo(db, baseLog)
}
func NewWaitingListMemberRepo(db *gorm.DB, baseLog *logger.Logger) WaitingListMemberRepo {
	return waitlists.NewMemberRepo(db, baseLog)
}
