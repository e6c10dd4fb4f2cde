package waitlists

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/tesserahq/contacts-backend/internal/domain"
	"github.com/tesserahq/contacts-backend/internal/pkg/logger"
)

type WaitingListRepo interface {
	Create(ctx context.Context, tx *gorm.DB, lists []*types.WaitingList) ([]*types.WaitingList, error)
	GetByID(ctx context.Context, tx *gorm.DB, ownerID, listID uuid.UUID) (*types.WaitingList, error)
	List(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, limit, offset int) ([]*types.WaitingList, error)
	Count(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) (int64, error)
	NameExists(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, name string, excludeID uuid.UUID) (bool, error)
	Update(ctx context.Context, tx *gorm.DB, ownerID, listID uuid.UUID, updates map[string]any) (int64, error)
	SoftDelete(ctx context.Context, tx *gorm.DB, ownerID, listID uuid.UUID) (int64, error)
}

type waitingListRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewWaitingListRepo(db *gorm.DB, baseLog *logger.Logger) WaitingListRepo {
	repoLog := baseLog.With("repo", "WaitingListRepo")
	return &waitingListRepo{db: db, log: repoLog}
}

func (wr *waitingListRepo) Create(ctx context.Context, tx *gorm.DB, lists []*types.WaitingList) ([]*types.WaitingList, error) {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}

	if len(lists) == 0 {
		return []*types.WaitingList{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&lists).Error; err != nil {
		return nil, err
	}
	return lists, nil
}

func (wr *waitingListRepo) GetByID(ctx context.Context, tx *gorm.DB, ownerID, listID uuid.UUID) (*types.WaitingList, error) {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}

	var results []*types.WaitingList
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

func (wr *waitingListRepo) List(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, limit, offset int) ([]*types.WaitingList, error) {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}

	var results []*types.WaitingList
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

func (wr *waitingListRepo) Count(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.WaitingList{}).
		Where("created_by_id = ?", ownerID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (wr *waitingListRepo) NameExists(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, name string, excludeID uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}

	query := transaction.WithContext(ctx).
		Model(&types.WaitingList{}).
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

func (wr *waitingListRepo) Update(ctx context.Context, tx *gorm.DB, ownerID, listID uuid.UUID, updates map[string]any) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}

	if len(updates) == 0 {
		return 0, nil
	}

	result := transaction.WithContext(ctx).
		Model(&types.WaitingList{}).
		Where("id = ? AND created_by_id = ?", listID, ownerID).
		Updates(updates)
	return result.RowsAffected, result.Error
}

func (wr *waitingListRepo) SoftDelete(ctx context.Context, tx *gorm.DB, ownerID, listID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}

	result := transaction.WithContext(ctx).
		Where("id = ? AND created_by_id = ?", listID, ownerID).
		Delete(&types.WaitingList{})
	return result.RowsAffected, result.Error
}
