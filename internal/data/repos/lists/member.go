package lists

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/tesserahq/contacts-backend/internal/domain"
	"github.com/tesserahq/contacts-backend/internal/pkg/logger"
)

type MemberRepo interface {
	GetActive(ctx context.Context, tx *gorm.DB, listID, contactID uuid.UUID) (*types.ContactListMember, error)
	ActiveContactIDs(ctx context.Context, tx *gorm.DB, listID uuid.UUID, contactIDs []uuid.UUID) ([]uuid.UUID, error)
	Create(ctx context.Context, tx *gorm.DB, members []*types.ContactListMember) ([]*types.ContactListMember, error)
	CountActive(ctx context.Context, tx *gorm.DB, listID uuid.UUID) (int64, error)
	ListMemberContacts(ctx context.Context, tx *gorm.DB, listID uuid.UUID, limit, offset int) ([]*types.Contact, error)
	ListsForContact(ctx context.Context, tx *gorm.DB, ownerID, contactID uuid.UUID) ([]*types.ContactList, error)
	SoftDeletePair(ctx context.Context, tx *gorm.DB, listID, contactID uuid.UUID) (int64, error)
	Clear(ctx context.Context, tx *gorm.DB, listID uuid.UUID) (int64, error)
}

type memberRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMemberRepo(db *gorm.DB, baseLog *logger.Logger) MemberRepo {
	repoLog := baseLog.With("repo", "ContactListMemberRepo")
	return &memberRepo{db: db, log: repoLog}
}

func (mr *memberRepo) GetActive(ctx context.Context, tx *gorm.DB, listID, contactID uuid.UUID) (*types.ContactListMember, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	var results []*types.ContactListMember
	if err := transaction.WithContext(ctx).
		Where("contact_list_id = ? AND contact_id = ?", listID, contactID).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

// ActiveContactIDs returns the subset of contactIDs already enrolled in the
// list. Used to keep membership adds idempotent.
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
		Model(&types.ContactListMember{}).
		Where("contact_list_id = ? AND contact_id IN ?", listID, contactIDs).
		Pluck("contact_id", &results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (mr *memberRepo) Create(ctx context.Context, tx *gorm.DB, members []*types.ContactListMember) ([]*types.ContactListMember, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	if len(members) == 0 {
		return []*types.ContactListMember{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// CountActive joins contact the same way ListMemberContacts does so the
// total always matches what the list query would return.
func (mr *memberRepo) CountActive(ctx context.Context, tx *gorm.DB, listID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.ContactListMember{}).
		Joins("JOIN contact ON contact.id = contact_list_member.contact_id AND contact.deleted_at IS NULL").
		Where("contact_list_member.contact_list_id = ?", listID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ListMemberContacts resolves a list's membership to contact rows. The join
// filters deleted membership rows explicitly because gorm's soft-delete
// scope only covers the outer model.
func (mr *memberRepo) ListMemberContacts(ctx context.Context, tx *gorm.DB, listID uuid.UUID, limit, offset int) ([]*types.Contact, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	var results []*types.Contact
	if err := transaction.WithContext(ctx).
		Model(&types.Contact{}).
		Joins("JOIN contact_list_member ON contact_list_member.contact_id = contact.id AND contact_list_member.deleted_at IS NULL").
		Where("contact_list_member.contact_list_id = ?", listID).
		Order("contact_list_member.created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// ListsForContact is the reverse lookup: every non-deleted list owned by
// ownerID that the contact is currently a member of.
func (mr *memberRepo) ListsForContact(ctx context.Context, tx *gorm.DB, ownerID, contactID uuid.UUID) ([]*types.ContactList, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	var results []*types.ContactList
	if err := transaction.WithContext(ctx).
		Model(&types.ContactList{}).
		Joins("JOIN contact_list_member ON contact_list_member.contact_list_id = contact_list.id AND contact_list_member.deleted_at IS NULL").
		Where("contact_list_member.contact_id = ?", contactID).
		Where("contact_list.created_by_id = ?", ownerID).
		Order("contact_list.created_at DESC").
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
		Where("contact_list_id = ? AND contact_id = ?", listID, contactID).
		Delete(&types.ContactListMember{})
	return result.RowsAffected, result.Error
}

func (mr *memberRepo) Clear(ctx context.Context, tx *gorm.DB, listID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	result := transaction.WithContext(ctx).
		Where("contact_list_id = ?", listID).
		Delete(&types.ContactListMember{})
	return result.RowsAffected, result.Error
}
