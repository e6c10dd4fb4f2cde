package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tesserahq/contacts-backend/internal/data/repos"
	types "github.com/tesserahq/contacts-backend/internal/domain"
	apperrors "github.com/tesserahq/contacts-backend/internal/pkg/errors"
	"github.com/tesserahq/contacts-backend/internal/pkg/logger"
	"github.com/tesserahq/contacts-backend/internal/pkg/pagination"
)

type ContactListInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	IsPublic    *bool  `json:"is_public"`
}

type ContactListUpdate struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsPublic    *bool   `json:"is_public"`
}

// AddResult reports how many of the requested contacts were newly linked.
// Contacts already on the list count toward requested but not added.
type AddResult struct {
	AddedCount     int `json:"added_count"`
	RequestedCount int `json:"requested_count"`
}

type ContactListService interface {
	Create(ctx context.Context, ownerID uuid.UUID, input ContactListInput) (*types.ContactList, error)
	Get(ctx context.Context, ownerID, listID uuid.UUID) (*types.ContactList, error)
	List(ctx context.Context, ownerID uuid.UUID, params pagination.Params) (*pagination.Page, error)
	Update(ctx context.Context, ownerID, listID uuid.UUID, update ContactListUpdate) (*types.ContactList, error)
	Delete(ctx context.Context, ownerID, listID uuid.UUID) error

	AddContacts(ctx context.Context, ownerID, listID uuid.UUID, contactIDs []uuid.UUID) (*AddResult, error)
	RemoveContact(ctx context.Context, ownerID, listID, contactID uuid.UUID) error
	ClearContacts(ctx context.Context, ownerID, listID uuid.UUID) (int64, error)
	Members(ctx context.Context, ownerID, listID uuid.UUID, params pagination.Params) (*pagination.Page, error)
	MemberCount(ctx context.Context, ownerID, listID uuid.UUID) (int64, error)
	IsMember(ctx context.Context, ownerID, listID, contactID uuid.UUID) (bool, error)
	ListsForContact(ctx context.Context, ownerID, contactID uuid.UUID) ([]*types.ContactList, error)
}

type contactListService struct {
	db          *gorm.DB
	log         *logger.Logger
	listRepo    repos.ContactListRepo
	memberRepo  repos.ContactListMemberRepo
	contactRepo repos.ContactRepo
}

func NewContactListService(db *gorm.DB, log *logger.Logger, listRepo repos.ContactListRepo, memberRepo repos.ContactListMemberRepo, contactRepo repos.ContactRepo) ContactListService {
	serviceLog := log.With("service", "ContactListService")
	return &contactListService{
		db:          db,
		log:         serviceLog,
		listRepo:    listRepo,
		memberRepo:  memberRepo,
		contactRepo: contactRepo,
	}
}

func (cls *contactListService) Create(ctx context.Context, ownerID uuid.UUID, input ContactListInput) (*types.ContactList, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("name is required: %w", apperrors.ErrInvalidArgument)
	}

	var created *types.ContactList
	if err := cls.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := cls.listRepo.NameExists(ctx, tx, ownerID, name, uuid.Nil)
		if err != nil {
			return fmt.Errorf("check list name: %w", err)
		}
		if exists {
			return fmt.Errorf("a list named %q already exists: %w", name, apperrors.ErrConflict)
		}

		row := &types.ContactList{
			ID:          uuid.New(),
			Name:        name,
			Description: input.Description,
			CreatedByID: ownerID,
		}
		if input.IsPublic != nil {
			row.IsPublic = *input.IsPublic
		}
		rows, err := cls.listRepo.Create(ctx, tx, []*types.ContactList{row})
		if err != nil {
			return fmt.Errorf("create list: %w", err)
		}
		created = rows[0]
		return nil
	}); err != nil {
		return nil, err
	}
	return created, nil
}

func (cls *contactListService) Get(ctx context.Context, ownerID, listID uuid.UUID) (*types.ContactList, error) {
	list, err := cls.listRepo.GetByID(ctx, nil, ownerID, listID)
	if err != nil {
		return nil, fmt.Errorf("fetch list: %w", err)
	}
	if list == nil {
		return nil, fmt.Errorf("contact list %s: %w", listID, apperrors.ErrNotFound)
	}
	return list, nil
}

func (cls *contactListService) List(ctx context.Context, ownerID uuid.UUID, params pagination.Params) (*pagination.Page, error) {
	var (
		rows  []*types.ContactList
		total int64
	)
	if err := cls.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		rows, err = cls.listRepo.List(ctx, tx, ownerID, params.Limit(), params.Offset())
		if err != nil {
			return fmt.Errorf("list contact lists: %w", err)
		}
		total, err = cls.listRepo.Count(ctx, tx, ownerID, nil)
		if err != nil {
			return fmt.Errorf("count contact lists: %w", err)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return pagination.NewPage(rows, params, total), nil
}

func (cls *contactListService) Update(ctx context.Context, ownerID, listID uuid.UUID, update ContactListUpdate) (*types.ContactList, error) {
	updates := map[string]any{}
	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, fmt.Errorf("name cannot be empty: %w", apperrors.ErrInvalidArgument)
		}
		updates["name"] = name
	}
	if update.Description != nil {
		updates["description"] = *update.Description
	}
	if update.IsPublic != nil {
		updates["is_public"] = *update.IsPublic
	}
	if len(updates) == 0 {
		return nil, fmt.Errorf("no fields to update: %w", apperrors.ErrInvalidArgument)
	}

	var updated *types.ContactList
	if err := cls.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if name, ok := updates["name"].(string); ok {
			exists, err := cls.listRepo.NameExists(ctx, tx, ownerID, name, listID)
			if err != nil {
				return fmt.Errorf("check list name: %w", err)
			}
			if exists {
				return fmt.Errorf("a list named %q already exists: %w", name, apperrors.ErrConflict)
			}
		}

		rows, err := cls.listRepo.Update(ctx, tx, ownerID, listID, updates)
		if err != nil {
			return fmt.Errorf("update list: %w", err)
		}
		if rows == 0 {
			return fmt.Errorf("contact list %s: %w", listID, apperrors.ErrNotFound)
		}
		updated, err = cls.listRepo.GetByID(ctx, tx, ownerID, listID)
		if err != nil {
			return fmt.Errorf("reload list: %w", err)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return updated, nil
}

func (cls *contactListService) Delete(ctx context.Context, ownerID, listID uuid.UUID) error {
	return cls.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rows, err := cls.listRepo.SoftDelete(ctx, tx, ownerID, listID)
		if err != nil {
			return fmt.Errorf("delete list: %w", err)
		}
		if rows == 0 {
			return fmt.Errorf("contact list %s: %w", listID, apperrors.ErrNotFound)
		}
		// Membership rows go with the list.
		if _, err := cls.memberRepo.Clear(ctx, tx, listID); err != nil {
			return fmt.Errorf("clear list members: %w", err)
		}
		return nil
	})
}

// AddContacts links the given contacts to the list inside one transaction.
// Already-linked contacts are skipped, so the call is idempotent.
func (cls *contactListService) AddContacts(ctx context.Context, ownerID, listID uuid.UUID, contactIDs []uuid.UUID) (*AddResult, error) {
	if len(contactIDs) == 0 {
		return nil, fmt.Errorf("contact_ids is required: %w", apperrors.ErrInvalidArgument)
	}

	result := &AddResult{RequestedCount: len(contactIDs)}
	if err := cls.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		list, err := cls.listRepo.GetByID(ctx, tx, ownerID, listID)
		if err != nil {
			return fmt.Errorf("fetch list: %w", err)
		}
		if list == nil {
			return fmt.Errorf("contact list %s: %w", listID, apperrors.ErrNotFound)
		}

		existing, err := cls.contactRepo.ExistingIDs(ctx, tx, ownerID, dedupeUUIDs(contactIDs))
		if err != nil {
			return fmt.Errorf("resolve contacts: %w", err)
		}
		if len(existing) != len(dedupeUUIDs(contactIDs)) {
			return fmt.Errorf("one or more contacts do not exist: %w", apperrors.ErrNotFound)
		}

		already, err := cls.memberRepo.ActiveContactIDs(ctx, tx, listID, existing)
		if err != nil {
			return fmt.Errorf("resolve current members: %w", err)
		}
		alreadySet := make(map[uuid.UUID]struct{}, len(already))
		for _, id := range already {
			alreadySet[id] = struct{}{}
		}

		toAdd := make([]*types.ContactListMember, 0, len(existing))
		for _, id := range existing {
			if _, ok := alreadySet[id]; ok {
				continue
			}
			toAdd = append(toAdd, &types.ContactListMember{
				ID:            uuid.New(),
				ContactListID: listID,
				ContactID:     id,
			})
		}
		if _, err := cls.memberRepo.Create(ctx, tx, toAdd); err != nil {
			return fmt.Errorf("add members: %w", err)
		}
		result.AddedCount = len(toAdd)
		return nil
	}); err != nil {
		return nil, err
	}
	return result, nil
}

func (cls *contactListService) RemoveContact(ctx context.Context, ownerID, listID, contactID uuid.UUID) error {
	return cls.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		list, err := cls.listRepo.GetByID(ctx, tx, ownerID, listID)
		if err != nil {
			return fmt.Errorf("fetch list: %w", err)
		}
		if list == nil {
			return fmt.Errorf("contact list %s: %w", listID, apperrors.ErrNotFound)
		}
		rows, err := cls.memberRepo.SoftDeletePair(ctx, tx, listID, contactID)
		if err != nil {
			return fmt.Errorf("remove member: %w", err)
		}
		if rows == 0 {
			return fmt.Errorf("contact %s is not on the list: %w", contactID, apperrors.ErrNotFound)
		}
		return nil
	})
}

func (cls *contactListService) ClearContacts(ctx context.Context, ownerID, listID uuid.UUID) (int64, error) {
	var removed int64
	if err := cls.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		list, err := cls.listRepo.GetByID(ctx, tx, ownerID, listID)
		if err != nil {
			return fmt.Errorf("fetch list: %w", err)
		}
		if list == nil {
			return fmt.Errorf("contact list %s: %w", listID, apperrors.ErrNotFound)
		}
		removed, err = cls.memberRepo.Clear(ctx, tx, listID)
		if err != nil {
			return fmt.Errorf("clear members: %w", err)
		}
		return nil
	}); err != nil {
		return 0, err
	}
	return removed, nil
}

func (cls *contactListService) Members(ctx context.Context, ownerID, listID uuid.UUID, params pagination.Params) (*pagination.Page, error) {
	var (
		rows  []*types.Contact
		total int64
	)
	if err := cls.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		list, err := cls.listRepo.GetByID(ctx, tx, ownerID, listID)
		if err != nil {
			return fmt.Errorf("fetch list: %w", err)
		}
		if list == nil {
			return fmt.Errorf("contact list %s: %w", listID, apperrors.ErrNotFound)
		}
		rows, err = cls.memberRepo.ListMemberContacts(ctx, tx, listID, params.Limit(), params.Offset())
		if err != nil {
			return fmt.Errorf("list members: %w", err)
		}
		total, err = cls.memberRepo.CountActive(ctx, tx, listID)
		if err != nil {
			return fmt.Errorf("count members: %w", err)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return pagination.NewPage(rows, params, total), nil
}

func (cls *contactListService) MemberCount(ctx context.Context, ownerID, listID uuid.UUID) (int64, error) {
	list, err := cls.listRepo.GetByID(ctx, nil, ownerID, listID)
	if err != nil {
		return 0, fmt.Errorf("fetch list: %w", err)
	}
	if list == nil {
		return 0, fmt.Errorf("contact list %s: %w", listID, apperrors.ErrNotFound)
	}
	return cls.memberRepo.CountActive(ctx, nil, listID)
}

func (cls *contactListService) IsMember(ctx context.Context, ownerID, listID, contactID uuid.UUID) (bool, error) {
	list, err := cls.listRepo.GetByID(ctx, nil, ownerID, listID)
	if err != nil {
		return false, fmt.Errorf("fetch list: %w", err)
	}
	if list == nil {
		return false, fmt.Errorf("contact list %s: %w", listID, apperrors.ErrNotFound)
	}
	member, err := cls.memberRepo.GetActive(ctx, nil, listID, contactID)
	if err != nil {
		return false, fmt.Errorf("fetch membership: %w", err)
	}
	return member != nil, nil
}

func (cls *contactListService) ListsForContact(ctx context.Context, ownerID, contactID uuid.UUID) ([]*types.ContactList, error) {
	contact, err := cls.contactRepo.GetByID(ctx, nil, ownerID, contactID)
	if err != nil {
		return nil, fmt.Errorf("fetch contact: %w", err)
	}
	if contact == nil {
		return nil, fmt.Errorf("contact %s: %w", contactID, apperrors.ErrNotFound)
	}
	return cls.memberRepo.ListsForContact(ctx, nil, ownerID, contactID)
}

func dedupeUUIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
