package lists

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/tesserahq/contacts-backend/internal/domain"
	"github.com/tesserahq/contacts-backend/internal/pkg/logger"
)

type ContactListRepo interface {
	Create(ctx context.Context, tx *gorm.DB, lists []*types.ContactList) ([]*types.ContactList, error)
	GetByID(ctx context.Context, tx *gorm.DB, ownerID, listID uuid.UUID) (*types.ContactList, error)
	List(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, limit, offset int) ([]*types.ContactList, error)
	Count(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, isPublic *bool) (int64, error)
	NameExists(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, name string, excludeID uuid.UUID) (bool, error)
	Update(ctx context.Context, tx *gorm.DB, ownerID, listID uuid.UUID, updates map[string]any) (int64, error)
	SoftDelete(ctx context.Context, tx *gorm.DB, ownerID, listID uuid.UUID) (int64, error)
}

type contactListRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewContactListRepo(db *gorm.DB, baseLog *logger.Logger) ContactListRepo {
	repoLog := baseLog.With("repo", "ContactListRepo")
	return &contactListRepo{db: db, log: repoLog}
}

func (clr *contactListRepo) Create(ctx context.Context, tx *gorm.DB, lists []*types.ContactList) ([]*types.ContactList, error) {
	transaction := tx
	if transaction == nil {
		transaction = clr.db
	}

	if len(lists) == 0 {
		return []*types.ContactList{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&lists).Error; err != nil {
		return nil, err
	}
	return lists, nil
}

func (clr *contactListRepo) GetByID(ctx context.Context, tx *gorm.DB, ownerID, listID uuid.UUID) (*types.ContactList, error) {
	transaction := tx
	if transaction == nil {
		transaction = clr.db
	}

	var results []*types.ContactList
	if err := transaction.WithContext(ctx).
		Where("id = ? AND created_by_id = ?", listID, ownerID).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (clr *contactListRepo) List(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, limit, offset int) ([]*types.ContactList, error) {
	transaction := tx
	if transaction == nil {
		transaction = clr.db
	}

	var results []*types.ContactList
	if err := transaction.WithContext(ctx).
		Where("created_by_id = ?", ownerID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// Count tallies the owner's lists, optionally restricted by visibility when
// isPublic is non-nil.
func (clr *contactListRepo) Count(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, isPublic *bool) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = clr.db
	}

	query := transaction.WithContext(ctx).
		Model(&types.ContactList{}).
		Where("created_by_id = ?", ownerID)
	if isPublic != nil {
		query = query.Where("is_public = ?", *isPublic)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (clr *contactListRepo) NameExists(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, name string, excludeID uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = clr.db
	}

	query := transaction.WithContext(ctx).
		Model(&types.ContactList{}).
		Where("created_by_id = ? AND name = ?", ownerID, name)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (clr *contactListRepo) Update(ctx context.Context, tx *gorm.DB, ownerID, listID uuid.UUID, updates map[string]any) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = clr.db
	}

	if len(updates) == 0 {
		return 0, nil
	}

	result := transaction.WithContext(ctx).
		Model(&types.ContactList{}).
		Where("id = ? AND created_by_id = ?", listID, ownerID).
		Updates(updates)
	return result.RowsAffected, result.Error
}

func (clr *contactListRepo) SoftDelete(ctx context.Context, tx *gorm.DB, ownerID, listID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = clr.db
	}

	result := transaction.WithContext(ctx).
		Where("id = ? AND created_by_id = ?", listID, ownerID).
		Delete(&types.ContactList{})
	return result.RowsAffected, result.Error
}
