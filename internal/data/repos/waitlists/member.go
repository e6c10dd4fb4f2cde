package waitlists

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/tesserahq/contacts-backend/internal/domain"
	"github.com/tesserahq/contacts-backend/internal/pkg/logger"
)

// MemberWithContact pairs an enrollment row with its contact for the
// list-members endpoints.
type MemberWithContact struct {
	Member  *types.WaitingListMember `json:"member"`
	Contact *types.Contact           `json:"contact"`
}

type MemberRepo interface {
	GetActive(ctx context.Context, tx *gorm.DB, listID, contactID uuid.UUID) (*types.WaitingListMember, error)
	ActiveContactIDs(ctx context.Context, tx *gorm.DB, listID uuid.UUID, contactIDs []uuid.UUID) ([]uuid.UUID, error)
	Create(ctx context.Context, tx *gorm.DB, members []*types.WaitingListMember) ([]*types.WaitingListMember, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, listID, contactID uuid.UUID, status string, changedAt time.Time) (int64, error)
	BulkUpdateStatus(ctx context.Context, tx *gorm.DB, listID uuid.UUID, contactIDs []uuid.UUID, status string, changedAt time.Time) (int64, error)
	CountActive(ctx context.Context, tx *gorm.DB, listID uuid.UUID) (int64, error)
	CountByStatus(ctx context.Context, tx *gorm.DB, listID uuid.UUID, status string) (int64, error)
	MembersWithContacts(ctx context.Context, tx *gorm.DB, listID uuid.UUID, limit, offset int) ([]MemberWithContact, error)
	ContactsByStatus(ctx context.Context, tx *gorm.DB, listID uuid.UUID, status string, limit, offset int) ([]*types.Contact, error)
	ListsForContact(ctx context.Context, tx *gorm.DB, ownerID, contactID uuid.UUID) ([]*types.WaitingList, error)
	SoftDeletePair(ctx context.Context, tx *gorm.DB, listID, contactID uuid.UUID) (int64, error)
	Clear(ctx context.Context, tx *gorm.DB, listID uuid.UUID) (int64, error)
}

type memberRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMemberRepo(db *gorm.DB, baseLog *logger.Logger) MemberRepo {
	repoLog := baseLog.With("repo", "WaitingListMemberRepo")
	return &memberRepo{db: db, log: repoLog}
}

func (mr *memberRepo) GetActive(ctx context.Context, tx *gorm.DB, listID, contactID uuid.UUID) (*types.WaitingListMember, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	var results []*types.WaitingListMember
	if err := transaction.WithContext(ctx).
		Where("waiting_list_id = ? AND contact_id = ?", listID, contactID).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

// ActiveContactIDs returns the subset of contactIDs already enrolled, so
// repeat adds stay idempotent.
func (mr *memberRepo) ActiveContactIDs(ctx context.Context, tx *gorm.DB, listID uuid.UUID, contactIDs []uuid.UUID) ([]uuid.UUID, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	var results []uuid.UUID
	if len(contactIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Model(&types.WaitingListMember{}).
		Where("waiting_list_id = ? AND contact_id IN ?", listID, contactIDs).
		Pluck("contact_id", &results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (mr *memberRepo) Create(ctx context.Context, tx *gorm.DB, members []*types.WaitingListMember) ([]*types.WaitingListMember, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	if len(members) == 0 {
		return []*types.WaitingListMember{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

func (mr *memberRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, listID, contactID uuid.UUID, status string, changedAt time.Time) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	result := transaction.WithContext(ctx).
		Model(&types.WaitingListMember{}).
		Where("waiting_list_id = ? AND contact_id = ?", listID, contactID).
		Updates(map[string]any{
			"status":            status,
			"status_changed_at": changedAt,
		})
	return result.RowsAffected, result.Error
}

// BulkUpdateStatus moves every listed active enrollment to status in a
// single UPDATE. Rows already deleted or never enrolled are simply not
// matched; the caller compares the returned count against the request.
func (mr *memberRepo) BulkUpdateStatus(ctx context.Context, tx *gorm.DB, listID uuid.UUID, contactIDs []uuid.UUID, status string, changedAt time.Time) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	if len(contactIDs) == 0 {
		return 0, nil
	}

	result := transaction.WithContext(ctx).
		Model(&types.WaitingListMember{}).
		Where("waiting_list_id = ? AND contact_id IN ?", listID, contactIDs).
		Updates(map[string]any{
			"status":            status,
			"status_changed_at": changedAt,
		})
	return result.RowsAffected, result.Error
}

// CountActive joins contact the same way MembersWithContacts does so the
// total always matches what the list query would return.
func (mr *memberRepo) CountActive(ctx context.Context, tx *gorm.DB, listID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.WaitingListMember{}).
		Joins("JOIN contact ON contact.id = waiting_list_member.contact_id AND contact.deleted_at IS NULL").
		Where("waiting_list_member.waiting_list_id = ?", listID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (mr *memberRepo) CountByStatus(ctx context.Context, tx *gorm.DB, listID uuid.UUID, status string) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.WaitingListMember{}).
		Joins("JOIN contact ON contact.id = waiting_list_member.contact_id AND contact.deleted_at IS NULL").
		Where("waiting_list_member.waiting_list_id = ? AND waiting_list_member.status = ?", listID, status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// MembersWithContacts returns enrollments with their contacts, oldest
// enrollment first. Deleted contacts drop out via the join.
func (mr *memberRepo) MembersWithContacts(ctx context.Context, tx *gorm.DB, listID uuid.UUID, limit, offset int) ([]MemberWithContact, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	var members []*types.WaitingListMember
	if err := transaction.WithContext(ctx).
		Joins("JOIN contact ON contact.id = waiting_list_member.contact_id AND contact.deleted_at IS NULL").
		Where("waiting_list_member.waiting_list_id = ?", listID).
		Order("waiting_list_member.joined_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&members).Error; err != nil {
		return nil, err
	}

	if len(members) == 0 {
		return []MemberWithContact{}, nil
	}

	contactIDs := make([]uuid.UUID, 0, len(members))
	for _, m := range members {
		contactIDs = append(contactIDs, m.ContactID)
	}
	var contactRows []*types.Contact
	if err := transaction.WithContext(ctx).
		Where("id IN ?", contactIDs).
		Find(&contactRows).Error; err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*types.Contact, len(contactRows))
	for _, c := range contactRows {
		byID[c.ID] = c
	}

	out := make([]MemberWithContact, 0, len(members))
	for _, m := range members {
		out = append(out, MemberWithContact{Member: m, Contact: byID[m.ContactID]})
	}
	return out, nil
}

func (mr *memberRepo) ContactsByStatus(ctx context.Context, tx *gorm.DB, listID uuid.UUID, status string, limit, offset int) ([]*types.Contact, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	var results []*types.Contact
	if err := transaction.WithContext(ctx).
		Model(&types.Contact{}).
		Joins("JOIN waiting_list_member ON waiting_list_member.contact_id = contact.id AND waiting_list_member.deleted_at IS NULL").
		Where("waiting_list_member.waiting_list_id = ? AND waiting_list_member.status = ?", listID, status).
		Order("waiting_list_member.joined_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// ListsForContact is the reverse lookup: every non-deleted waiting list
// owned by ownerID that currently has the contact enrolled.
func (mr *memberRepo) ListsForContact(ctx context.Context, tx *gorm.DB, ownerID, contactID uuid.UUID) ([]*types.WaitingList, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	var results []*types.WaitingList
	if err := transaction.WithContext(ctx).
		Model(&types.WaitingList{}).
		Joins("JOIN waiting_list_member ON waiting_list_member.waiting_list_id = waiting_list.id AND waiting_list_member.deleted_at IS NULL").
		Where("waiting_list_member.contact_id = ?", contactID).
		Where("waiting_list.created_by_id = ?", ownerID).
		Order("waiting_list.created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (mr *memberRepo) SoftDeletePair(ctx context.Context, tx *gorm.DB, listID, contactID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	result := transaction.WithContext(ctx).
		Where("waiting_list_id = ? AND contact_id = ?", listID, contactID).
		Delete(&types.WaitingListMember{})
	return result.RowsAffected, result.Error
}

func (mr *memberRepo) Clear(ctx context.Context, tx *gorm.DB, listID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	result := transaction.WithContext(ctx).
		Where("waiting_list_id = ?", listID).
		Delete(&types.WaitingListMember{})
	return result.RowsAffected, result.Error
}
