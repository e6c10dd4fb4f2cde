package contacts

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/tesserahq/contacts-backend/internal/domain"
	"github.com/tesserahq/contacts-backend/internal/pkg/logger"
)

// InteractionWithContact pairs an interaction with its contact row for the
// upcoming-actions dashboard query.
type InteractionWithContact struct {
	Interaction *types.ContactInteraction `json:"interaction"`
	Contact     *types.Contact            `json:"contact"`
}

type InteractionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.ContactInteraction) ([]*types.ContactInteraction, error)
	GetByID(ctx context.Context, tx *gorm.DB, ownerID, interactionID uuid.UUID) (*types.ContactInteraction, error)
	ListByContact(ctx context.Context, tx *gorm.DB, contactID uuid.UUID, limit, offset int) ([]*types.ContactInteraction, error)
	CountByContact(ctx context.Context, tx *gorm.DB, contactID uuid.UUID) (int64, error)
	Update(ctx context.Context, tx *gorm.DB, ownerID, interactionID uuid.UUID, updates map[string]any) (int64, error)
	SoftDelete(ctx context.Context, tx *gorm.DB, ownerID, interactionID uuid.UUID) (int64, error)
	Upcoming(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, from, to time.Time) ([]InteractionWithContact, error)
}

type interactionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewInteractionRepo(db *gorm.DB, baseLog *logger.Logger) InteractionRepo {
	repoLog := baseLog.With("repo", "InteractionRepo")
	return &interactionRepo{db: db, log: repoLog}
}

func (ir *interactionRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.ContactInteraction) ([]*types.ContactInteraction, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}

	if len(rows) == 0 {
		return []*types.ContactInteraction{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (ir *interactionRepo) GetByID(ctx context.Context, tx *gorm.DB, ownerID, interactionID uuid.UUID) (*types.ContactInteraction, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}

	var results []*types.ContactInteraction
	if err := transaction.WithContext(ctx).
		Where("id = ? AND created_by_id = ?", interactionID, ownerID).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (ir *interactionRepo) ListByContact(ctx context.Context, tx *gorm.DB, contactID uuid.UUID, limit, offset int) ([]*types.ContactInteraction, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}

	var results []*types.ContactInteraction
	if err := transaction.WithContext(ctx).
		Where("contact_id = ?", contactID).
		Order("interaction_timestamp DESC").
		Limit(limit).
		Offset(offset).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ir *interactionRepo) CountByContact(ctx context.Context, tx *gorm.DB, contactID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.ContactInteraction{}).
		Where("contact_id = ?", contactID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (ir *interactionRepo) Update(ctx context.Context, tx *gorm.DB, ownerID, interactionID uuid.UUID, updates map[string]any) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}

	if len(updates) == 0 {
		return 0, nil
	}

	result := transaction.WithContext(ctx).
		Model(&types.ContactInteraction{}).
		Where("id = ? AND created_by_id = ?", interactionID, ownerID).
		Updates(updates)
	return result.RowsAffected, result.Error
}

func (ir *interactionRepo) SoftDelete(ctx context.Context, tx *gorm.DB, ownerID, interactionID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}

	result := transaction.WithContext(ctx).
		Where("id = ? AND created_by_id = ?", interactionID, ownerID).
		Delete(&types.ContactInteraction{})
	return result.RowsAffected, result.Error
}

// Upcoming returns interactions whose follow-up action falls inside
// [from, to], joined with their (non-deleted) contacts, soonest first.
func (ir *interactionRepo) Upcoming(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, from, to time.Time) ([]InteractionWithContact, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}

	var interactions []*types.ContactInteraction
	if err := transaction.WithContext(ctx).
		Joins("JOIN contact ON contact.id = contact_interaction.contact_id AND contact.deleted_at IS NULL").
		Where("contact_interaction.created_by_id = ?", ownerID).
		Where("contact_interaction.action IS NOT NULL AND contact_interaction.action <> ''").
		Where("contact_interaction.action_timestamp >= ? AND contact_interaction.action_timestamp <= ?", from, to).
		Order("contact_interaction.action_timestamp ASC").
		Find(&interactions).Error; err != nil {
		return nil, err
	}

	if len(interactions) == 0 {
		return []InteractionWithContact{}, nil
	}

	contactIDs := make([]uuid.UUID, 0, len(interactions))
	for _, row := range interactions {
		contactIDs = append(contactIDs, row.ContactID)
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

	out := make([]InteractionWithContact, 0, len(interactions))
	for _, row := range interactions {
		out = append(out, InteractionWithContact{Interaction: row, Contact: byID[row.ContactID]})
	}
	return out, nil
}
