package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tesserahq/contacts-backend/internal/data/repos"
	"github.com/tesserahq/contacts-backend/internal/data/repos/waitlists"
	types "github.com/tesserahq/contacts-backend/internal/domain"
	apperrors "github.com/tesserahq/contacts-backend/internal/pkg/errors"
	"github.com/tesserahq/contacts-backend/internal/pkg/logger"
	"github.com/tesserahq/contacts-backend/internal/pkg/pagination"
)

type WaitingListInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type WaitingListUpdate struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// BulkStatusResult reports how many of the requested members a bulk status
// change actually touched. Contacts not enrolled simply do not count.
type BulkStatusResult struct {
	UpdatedCount   int `json:"updated_count"`
	RequestedCount int `json:"requested_count"`
}

// MemberStatusInfo is a single member's enrollment state.
type MemberStatusInfo struct {
	ContactID       uuid.UUID `json:"contact_id"`
	Status          string    `json:"status"`
	JoinedAt        time.Time `json:"joined_at"`
	StatusChangedAt time.Time `json:"status_changed_at"`
}

type WaitingListService interface {
	Create(ctx context.Context, ownerID uuid.UUID, input WaitingListInput) (*types.WaitingList, error)
	Get(ctx context.Context, ownerID, listID uuid.UUID) (*types.WaitingList, error)
	List(ctx context.Context, ownerID uuid.UUID, params pagination.Params) (*pagination.Page, error)
	Update(ctx context.Context, ownerID, listID uuid.UUID, update WaitingListUpdate) (*types.WaitingList, error)
	Delete(ctx context.Context, ownerID, listID uuid.UUID) error

	AddMembers(ctx context.Context, ownerID, listID uuid.UUID, contactIDs []uuid.UUID, status string) (*AddResult, error)
	RemoveMember(ctx context.Context, ownerID, listID, contactID uuid.UUID) error
	ClearMembers(ctx context.Context, ownerID, listID uuid.UUID) (int64, error)
	Members(ctx context.Context, ownerID, listID uuid.UUID, params pagination.Params) (*pagination.Page, error)
	MemberCount(ctx context.Context, ownerID, listID uuid.UUID) (int64, error)
	MembersByStatus(ctx context.Context, ownerID, listID uuid.UUID, status string, params pagination.Params) (*pagination.Page, error)
	CountByStatus(ctx context.Context, ownerID, listID uuid.UUID, status string) (int64, error)
	IsMember(ctx context.Context, ownerID, listID, contactID uuid.UUID) (bool, error)
	MemberStatus(ctx context.Context, ownerID, listID, contactID uuid.UUID) (*MemberStatusInfo, error)
	UpdateMemberStatus(ctx context.Context, ownerID, listID, contactID uuid.UUID, status string) (*MemberStatusInfo, error)
	BulkUpdateStatus(ctx context.Context, ownerID, listID uuid.UUID, contactIDs []uuid.UUID, status string) (*BulkStatusResult, error)
	ListsForContact(ctx context.Context, ownerID, contactID uuid.UUID) ([]*types.WaitingList, error)
	MemberStatuses() []string
}

type waitingListService struct {
	db          *gorm.DB
	log         *logger.Logger
	listRepo    repos.WaitingListRepo
	memberRepo  repos.WaitingListMemberRepo
	contactRepo repos.ContactRepo
}

func NewWaitingListService(db *gorm.DB, log *logger.Logger, listRepo repos.WaitingListRepo, memberRepo repos.WaitingListMemberRepo, contactRepo repos.ContactRepo) WaitingListService {
	serviceLog := log.With("service", "WaitingListService")
	return &waitingListService{
		db:          db,
		log:         serviceLog,
		listRepo:    listRepo,
		memberRepo:  memberRepo,
		contactRepo: contactRepo,
	}
}

func validateStatus(status string) error {
	if !types.ValidMemberStatus(status) {
		return fmt.Errorf("unknown status %q, valid statuses are %s: %w",
			status, strings.Join(types.MemberStatusValues(), ", "), apperrors.ErrInvalidArgument)
	}
	return nil
}

func (ws *waitingListService) Create(ctx context.Context, ownerID uuid.UUID, input WaitingListInput) (*types.WaitingList, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("name is required: %w", apperrors.ErrInvalidArgument)
	}

	var created *types.WaitingList
	if err := ws.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := ws.listRepo.NameExists(ctx, tx, ownerID, name, uuid.Nil)
		if err != nil {
			return fmt.Errorf("check list name: %w", err)
		}
		if exists {
			return fmt.Errorf("a waiting list named %q already exists: %w", name, apperrors.ErrConflict)
		}

		rows, err := ws.listRepo.Create(ctx, tx, []*types.WaitingList{{
			ID:          uuid.New(),
			Name:        name,
			Description: input.Description,
			CreatedByID: ownerID,
		}})
		if err != nil {
			return fmt.Errorf("create waiting list: %w", err)
		}
		created = rows[0]
		return nil
	}); err != nil {
		return nil, err
	}
	return created, nil
}

func (ws *waitingListService) Get(ctx context.Context, ownerID, listID uuid.UUID) (*types.WaitingList, error) {
	list, err := ws.listRepo.GetByID(ctx, nil, ownerID, listID)
	if err != nil {
		return nil, fmt.Errorf("fetch waiting list: %w", err)
	}
	if list == nil {
		return nil, fmt.Errorf("waiting list %s: %w", listID, apperrors.ErrNotFound)
	}
	return list, nil
}

func (ws *waitingListService) List(ctx context.Context, ownerID uuid.UUID, params pagination.Params) (*pagination.Page, error) {
	var (
		rows  []*types.WaitingList
		total int64
	)
	if err := ws.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		rows, err = ws.listRepo.List(ctx, tx, ownerID, params.Limit(), params.Offset())
		if err != nil {
			return fmt.Errorf("list waiting lists: %w", err)
		}
		total, err = ws.listRepo.Count(ctx, tx, ownerID)
		if err != nil {
			return fmt.Errorf("count waiting lists: %w", err)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return pagination.NewPage(rows, params, total), nil
}

func (ws *waitingListService) Update(ctx context.Context, ownerID, listID uuid.UUID, update WaitingListUpdate) (*types.WaitingList, error) {
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
	if len(updates) == 0 {
		return nil, fmt.Errorf("no fields to update: %w", apperrors.ErrInvalidArgument)
	}

	var updated *types.WaitingList
	if err := ws.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if name, ok := updates["name"].(string); ok {
			exists, err := ws.listRepo.NameExists(ctx, tx, ownerID, name, listID)
			if err != nil {
				return fmt.Errorf("check list name: %w", err)
			}
			if exists {
				return fmt.Errorf("a waiting list named %q already exists: %w", name, apperrors.ErrConflict)
			}
		}

		rows, err := ws.listRepo.Update(ctx, tx, ownerID, listID, updates)
		if err != nil {
			return fmt.Errorf("update waiting list: %w", err)
		}
		if rows == 0 {
			return fmt.Errorf("waiting list %s: %w", listID, apperrors.ErrNotFound)
		}
		updated, err = ws.listRepo.GetByID(ctx, tx, ownerID, listID)
		if err != nil {
			return fmt.Errorf("reload waiting list: %w", err)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return updated, nil
}

func (ws *waitingListService) Delete(ctx context.Context, ownerID, listID uuid.UUID) error {
	return ws.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rows, err := ws.listRepo.SoftDelete(ctx, tx, ownerID, listID)
		if err != nil {
			return fmt.Errorf("delete waiting list: %w", err)
		}
		if rows == 0 {
			return fmt.Errorf("waiting list %s: %w", listID, apperrors.ErrNotFound)
		}
		if _, err := ws.memberRepo.Clear(ctx, tx, listID); err != nil {
			return fmt.Errorf("clear members: %w", err)
		}
		return nil
	})
}

// AddMembers enrolls the given contacts with the initial status (pending
// when empty) inside one transaction. Contacts already enrolled are skipped,
// which keeps repeat calls idempotent.
func (ws *waitingListService) AddMembers(ctx context.Context, ownerID, listID uuid.UUID, contactIDs []uuid.UUID, status string) (*AddResult, error) {
	if len(contactIDs) == 0 {
		return nil, fmt.Errorf("contact_ids is required: %w", apperrors.ErrInvalidArgument)
	}
	if status == "" {
		status = types.StatusPending.String()
	}
	if err := validateStatus(status); err != nil {
		return nil, err
	}

	result := &AddResult{RequestedCount: len(contactIDs)}
	if err := ws.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		list, err := ws.listRepo.GetByID(ctx, tx, ownerID, listID)
		if err != nil {
			return fmt.Errorf("fetch waiting list: %w", err)
		}
		if list == nil {
			return fmt.Errorf("waiting list %s: %w", listID, apperrors.ErrNotFound)
		}

		requested := dedupeUUIDs(contactIDs)
		existing, err := ws.contactRepo.ExistingIDs(ctx, tx, ownerID, requested)
		if err != nil {
			return fmt.Errorf("resolve contacts: %w", err)
		}
		if len(existing) != len(requested) {
			return fmt.Errorf("one or more contacts do not exist: %w", apperrors.ErrNotFound)
		}

		already, err := ws.memberRepo.ActiveContactIDs(ctx, tx, listID, existing)
		if err != nil {
			return fmt.Errorf("resolve current members: %w", err)
		}
		alreadySet := make(map[uuid.UUID]struct{}, len(already))
		for _, id := range already {
			alreadySet[id] = struct{}{}
		}

		now := time.Now().UTC()
		toAdd := make([]*types.WaitingListMember, 0, len(existing))
		for _, id := range existing {
			if _, ok := alreadySet[id]; ok {
				continue
			}
			toAdd = append(toAdd, &types.WaitingListMember{
				ID:              uuid.New(),
				WaitingListID:   listID,
				ContactID:       id,
				Status:          status,
				JoinedAt:        now,
				StatusChangedAt: now,
			})
		}
		if _, err := ws.memberRepo.Create(ctx, tx, toAdd); err != nil {
			return fmt.Errorf("enroll members: %w", err)
		}
		result.AddedCount = len(toAdd)
		return nil
	}); err != nil {
		return nil, err
	}
	return result, nil
}

func (ws *waitingListService) RemoveMember(ctx context.Context, ownerID, listID, contactID uuid.UUID) error {
	return ws.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		list, err := ws.listRepo.GetByID(ctx, tx, ownerID, listID)
		if err != nil {
			return fmt.Errorf("fetch waiting list: %w", err)
		}
		if list == nil {
			return fmt.Errorf("waiting list %s: %w", listID, apperrors.ErrNotFound)
		}
		rows, err := ws.memberRepo.SoftDeletePair(ctx, tx, listID, contactID)
		if err != nil {
			return fmt.Errorf("remove member: %w", err)
		}
		if rows == 0 {
			return fmt.Errorf("contact %s is not on the waiting list: %w", contactID, apperrors.ErrNotFound)
		}
		return nil
	})
}

func (ws *waitingListService) ClearMembers(ctx context.Context, ownerID, listID uuid.UUID) (int64, error) {
	var removed int64
	if err := ws.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		list, err := ws.listRepo.GetByID(ctx, tx, ownerID, listID)
		if err != nil {
			return fmt.Errorf("fetch waiting list: %w", err)
		}
		if list == nil {
			return fmt.Errorf("waiting list %s: %w", listID, apperrors.ErrNotFound)
		}
		removed, err = ws.memberRepo.Clear(ctx, tx, listID)
		if err != nil {
			return fmt.Errorf("clear members: %w", err)
		}
		return nil
	}); err != nil {
		return 0, err
	}
	return removed, nil
}

func (ws *waitingListService) Members(ctx context.Context, ownerID, listID uuid.UUID, params pagination.Params) (*pagination.Page, error) {
	var (
		rows  []waitlists.MemberWithContact
		total int64
	)
	if err := ws.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		list, err := ws.listRepo.GetByID(ctx, tx, ownerID, listID)
		if err != nil {
			return fmt.Errorf("fetch waiting list: %w", err)
		}
		if list == nil {
			return fmt.Errorf("waiting list %s: %w", listID, apperrors.ErrNotFound)
		}
		rows, err = ws.memberRepo.MembersWithContacts(ctx, tx, listID, params.Limit(), params.Offset())
		if err != nil {
			return fmt.Errorf("list members: %w", err)
		}
		total, err = ws.memberRepo.CountActive(ctx, tx, listID)
		if err != nil {
			return fmt.Errorf("count members: %w", err)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return pagination.NewPage(rows, params, total), nil
}

func (ws *waitingListService) MemberCount(ctx context.Context, ownerID, listID uuid.UUID) (int64, error) {
	list, err := ws.listRepo.GetByID(ctx, nil, ownerID, listID)
	if err != nil {
		return 0, fmt.Errorf("fetch waiting list: %w", err)
	}
	if list == nil {
		return 0, fmt.Errorf("waiting list %s: %w", listID, apperrors.ErrNotFound)
	}
	return ws.memberRepo.CountActive(ctx, nil, listID)
}

func (ws *waitingListService) MembersByStatus(ctx context.Context, ownerID, listID uuid.UUID, status string, params pagination.Params) (*pagination.Page, error) {
	if err := validateStatus(status); err != nil {
		return nil, err
	}

	var (
		rows  []*types.Contact
		total int64
	)
	if err := ws.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		list, err := ws.listRepo.GetByID(ctx, tx, ownerID, listID)
		if err != nil {
			return fmt.Errorf("fetch waiting list: %w", err)
		}
		if list == nil {
			return fmt.Errorf("waiting list %s: %w", listID, apperrors.ErrNotFound)
		}
		rows, err = ws.memberRepo.ContactsByStatus(ctx, tx, listID, status, params.Limit(), params.Offset())
		if err != nil {
			return fmt.Errorf("list members by status: %w", err)
		}
		total, err = ws.memberRepo.CountByStatus(ctx, tx, listID, status)
		if err != nil {
			return fmt.Errorf("count members by status: %w", err)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return pagination.NewPage(rows, params, total), nil
}

func (ws *waitingListService) CountByStatus(ctx context.Context, ownerID, listID uuid.UUID, status string) (int64, error) {
	if err := validateStatus(status); err != nil {
		return 0, err
	}
	list, err := ws.listRepo.GetByID(ctx, nil, ownerID, listID)
	if err != nil {
		return 0, fmt.Errorf("fetch waiting list: %w", err)
	}
	if list == nil {
		return 0, fmt.Errorf("waiting list %s: %w", listID, apperrors.ErrNotFound)
	}
	return ws.memberRepo.CountByStatus(ctx, nil, listID, status)
}

func (ws *waitingListService) IsMember(ctx context.Context, ownerID, listID, contactID uuid.UUID) (bool, error) {
	list, err := ws.listRepo.GetByID(ctx, nil, ownerID, listID)
	if err != nil {
		return false, fmt.Errorf("fetch waiting list: %w", err)
	}
	if list == nil {
		return false, fmt.Errorf("waiting list %s: %w", listID, apperrors.ErrNotFound)
	}
	member, err := ws.memberRepo.GetActive(ctx, nil, listID, contactID)
	if err != nil {
		return false, fmt.Errorf("fetch membership: %w", err)
	}
	return member != nil, nil
}

func (ws *waitingListService) MemberStatus(ctx context.Context, ownerID, listID, contactID uuid.UUID) (*MemberStatusInfo, error) {
	list, err := ws.listRepo.GetByID(ctx, nil, ownerID, listID)
	if err != nil {
		return nil, fmt.Errorf("fetch waiting list: %w", err)
	}
	if list == nil {
		return nil, fmt.Errorf("waiting list %s: %w", listID, apperrors.ErrNotFound)
	}
	member, err := ws.memberRepo.GetActive(ctx, nil, listID, contactID)
	if err != nil {
		return nil, fmt.Errorf("fetch membership: %w", err)
	}
	if member == nil {
		return nil, fmt.Errorf("contact %s is not on the waiting list: %w", contactID, apperrors.ErrNotFound)
	}
	return &MemberStatusInfo{
		ContactID:       member.ContactID,
		Status:          member.Status,
		JoinedAt:        member.JoinedAt,
		StatusChangedAt: member.StatusChangedAt,
	}, nil
}

// UpdateMemberStatus sets a member's status. Any status can move to any
// other; there is deliberately no transition graph.
func (ws *waitingListService) UpdateMemberStatus(ctx context.Context, ownerID, listID, contactID uuid.UUID, status string) (*MemberStatusInfo, error) {
	if err := validateStatus(status); err != nil {
		return nil, err
	}

	var info *MemberStatusInfo
	if err := ws.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		list, err := ws.listRepo.GetByID(ctx, tx, ownerID, listID)
		if err != nil {
			return fmt.Errorf("fetch waiting list: %w", err)
		}
		if list == nil {
			return fmt.Errorf("waiting list %s: %w", listID, apperrors.ErrNotFound)
		}

		now := time.Now().UTC()
		rows, err := ws.memberRepo.UpdateStatus(ctx, tx, listID, contactID, status, now)
		if err != nil {
			return fmt.Errorf("update status: %w", err)
		}
		if rows == 0 {
			return fmt.Errorf("contact %s is not on the waiting list: %w", contactID, apperrors.ErrNotFound)
		}

		member, err := ws.memberRepo.GetActive(ctx, tx, listID, contactID)
		if err != nil {
			return fmt.Errorf("reload membership: %w", err)
		}
		info = &MemberStatusInfo{
			ContactID:       member.ContactID,
			Status:          member.Status,
			JoinedAt:        member.JoinedAt,
			StatusChangedAt: member.StatusChangedAt,
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return info, nil
}

// BulkUpdateStatus moves every enrolled contact in the request to status
// with a single UPDATE in one transaction. The result reports how many of
// the requested contacts were actually enrolled and updated.
func (ws *waitingListService) BulkUpdateStatus(ctx context.Context, ownerID, listID uuid.UUID, contactIDs []uuid.UUID, status string) (*BulkStatusResult, error) {
	if err := validateStatus(status); err != nil {
		return nil, err
	}
	if len(contactIDs) == 0 {
		return nil, fmt.Errorf("contact_ids is required: %w", apperrors.ErrInvalidArgument)
	}

	result := &BulkStatusResult{RequestedCount: len(contactIDs)}
	if err := ws.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		list, err := ws.listRepo.GetByID(ctx, tx, ownerID, listID)
		if err != nil {
			return fmt.Errorf("fetch waiting list: %w", err)
		}
		if list == nil {
			return fmt.Errorf("waiting list %s: %w", listID, apperrors.ErrNotFound)
		}

		updated, err := ws.memberRepo.BulkUpdateStatus(ctx, tx, listID, dedupeUUIDs(contactIDs), status, time.Now().UTC())
		if err != nil {
			return fmt.Errorf("bulk update status: %w", err)
		}
		result.UpdatedCount = int(updated)
		return nil
	}); err != nil {
		return nil, err
	}
	return result, nil
}

func (ws *waitingListService) ListsForContact(ctx context.Context, ownerID, contactID uuid.UUID) ([]*types.WaitingList, error) {
	contact, err := ws.contactRepo.GetByID(ctx, nil, ownerID, contactID)
	if err != nil {
		return nil, fmt.Errorf("fetch contact: %w", err)
	}
	if contact == nil {
		return nil, fmt.Errorf("contact %s: %w", contactID, apperrors.ErrNotFound)
	}
	return ws.memberRepo.ListsForContact(ctx, nil, ownerID, contactID)
}

// MemberStatuses exposes the fixed status vocabulary for clients.
func (ws *waitingListService) MemberStatuses() []string {
	return types.MemberStatusValues()
}
