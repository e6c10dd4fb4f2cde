package contacts

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/tesserahq/contacts-backend/internal/domain"
	"github.com/tesserahq/contacts-backend/internal/pkg/logger"
)

type ContactRepo interface {
	Create(ctx context.Context, tx *gorm.DB, contacts []*types.Contact) ([]*types.Contact, error)
	GetByID(ctx context.Context, tx *gorm.DB, ownerID, contactID uuid.UUID) (*types.Contact, error)
	List(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, limit, offset int) ([]*types.Contact, error)
	Count(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) (int64, error)
	ExistingIDs(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, contactIDs []uuid.UUID) ([]uuid.UUID, error)
	EmailInUse(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, email string, excludeID uuid.UUID) (bool, error)
	PhoneInUse(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, phone string, excludeID uuid.UUID) (bool, error)
	Update(ctx context.Context, tx *gorm.DB, ownerID, contactID uuid.UUID, updates map[string]any) (int64, error)
	SoftDelete(ctx context.Context, tx *gorm.DB, ownerID, contactID uuid.UUID) (int64, error)
	Restore(ctx context.Context, tx *gorm.DB, ownerID, contactID uuid.UUID) error
	Search(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, term string, limit, offset int) ([]*types.Contact, error)
	SearchCount(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, term string) (int64, error)
}

type contactRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewContactRepo(db *gorm.DB, baseLog *logger.Logger) ContactRepo {
	repoLog := baseLog.With("repo", "ContactRepo")
	return &contactRepo{db: db, log: repoLog}
}

func (cr *contactRepo) Create(ctx context.Context, tx *gorm.DB, contacts []*types.Contact) ([]*types.Contact, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	if len(contacts) == 0 {
		return []*types.Contact{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&contacts).Error; err != nil {
		return nil, err
	}
	return contacts, nil
}

func (cr *contactRepo) GetByID(ctx context.Context, tx *gorm.DB, ownerID, contactID uuid.UUID) (*types.Contact, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var results []*types.Contact
	if err := transaction.WithContext(ctx).
		Where("id = ? AND created_by_id = ?", contactID, ownerID).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (cr *contactRepo) List(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, limit, offset int) ([]*types.Contact, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var results []*types.Contact
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

func (cr *contactRepo) Count(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Contact{}).
		Where("created_by_id = ?", ownerID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistingIDs filters contactIDs down to the ones that exist, are not
// soft-deleted, and belong to ownerID.
func (cr *contactRepo) ExistingIDs(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, contactIDs []uuid.UUID) ([]uuid.UUID, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var results []uuid.UUID
	if len(contactIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Model(&types.Contact{}).
		Where("created_by_id = ? AND id IN ?", ownerID, contactIDs).
		Pluck("id", &results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *contactRepo) EmailInUse(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, email string, excludeID uuid.UUID) (bool, error) {
	return cr.fieldInUse(ctx, tx, ownerID, "email", email, excludeID)
}

func (cr *contactRepo) PhoneInUse(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, phone string, excludeID uuid.UUID) (bool, error) {
	return cr.fieldInUse(ctx, tx, ownerID, "phone", phone, excludeID)
}

func (cr *contactRepo) fieldInUse(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, column, value string, excludeID uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	if value == "" {
		return false, nil
	}

	query := transaction.WithContext(ctx).
		Model(&types.Contact{}).
		Where("created_by_id = ?", ownerID).
		Where("LOWER("+column+") = ?", strings.ToLower(value))
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (cr *contactRepo) Update(ctx context.Context, tx *gorm.DB, ownerID, contactID uuid.UUID, updates map[string]any) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	if len(updates) == 0 {
		return 0, nil
	}

	result := transaction.WithContext(ctx).
		Model(&types.Contact{}).
		Where("id = ? AND created_by_id = ?", contactID, ownerID).
		Updates(updates)
	return result.RowsAffected, result.Error
}

func (cr *contactRepo) SoftDelete(ctx context.Context, tx *gorm.DB, ownerID, contactID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	result := transaction.WithContext(ctx).
		Where("id = ? AND created_by_id = ?", contactID, ownerID).
		Delete(&types.Contact{})
	return result.RowsAffected, result.Error
}

// Restore clears deleted_at. Data-level operation only, never exposed over
// the API.
func (cr *contactRepo) Restore(ctx context.Context, tx *gorm.DB, ownerID, contactID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	return transaction.WithContext(ctx).
		Unscoped().
		Model(&types.Contact{}).
		Where("id = ? AND created_by_id = ?", contactID, ownerID).
		Update("deleted_at", nil).Error
}

// Search runs the weighted full-text query against the generated fts
// column, ranked by ts_rank with newest-first as the tiebreaker.
func (cr *contactRepo) Search(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, term string, limit, offset int) ([]*types.Contact, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var results []*types.Contact
	if err := transaction.WithContext(ctx).
		Where("created_by_id = ?", ownerID).
		Where("fts @@ plainto_tsquery('simple', ?)", term).
		Order(clause.OrderBy{Expression: clause.Expr{
			SQL:  "ts_rank(fts, plainto_tsquery('simple', ?)) DESC, created_at DESC",
			Vars: []interface{}{term},
		}}).
		Limit(limit).
		Offset(offset).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *contactRepo) SearchCount(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, term string) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Contact{}).
		Where("created_by_id = ?", ownerID).
		Where("fts @@ plainto_tsquery('simple', ?)", term).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
