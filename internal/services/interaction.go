package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tesserahq/contacts-backend/internal/data/repos"
	"github.com/tesserahq/contacts-backend/internal/data/repos/contacts"
	types "github.com/tesserahq/contacts-backend/internal/domain"
	apperrors "github.com/tesserahq/contacts-backend/internal/pkg/errors"
	"github.com/tesserahq/contacts-backend/internal/pkg/logger"
	"github.com/tesserahq/contacts-backend/internal/pkg/pagination"
)

// upcomingWindow is how far ahead the upcoming-actions view looks.
const upcomingWindow = 5 * 24 * time.Hour

type InteractionInput struct {
	Note                    string     `json:"note"`
	InteractionTimestamp    *time.Time `json:"interaction_timestamp"`
	Action                  string     `json:"action"`
	CustomActionDescription string     `json:"custom_action_description"`
	ActionTimestamp         *time.Time `json:"action_timestamp"`
}

type InteractionUpdate struct {
	Note                    *string    `json:"note"`
	InteractionTimestamp    *time.Time `json:"interaction_timestamp"`
	Action                  *string    `json:"action"`
	CustomActionDescription *string    `json:"custom_action_description"`
	ActionTimestamp         *time.Time `json:"action_timestamp"`
}

type InteractionService interface {
	Create(ctx context.Context, ownerID, contactID uuid.UUID, input InteractionInput) (*types.ContactInteraction, error)
	ListByContact(ctx context.Context, ownerID, contactID uuid.UUID, params pagination.Params) (*pagination.Page, error)
	Update(ctx context.Context, ownerID, interactionID uuid.UUID, update InteractionUpdate) (*types.ContactInteraction, error)
	Delete(ctx context.Context, ownerID, interactionID uuid.UUID) error
	Upcoming(ctx context.Context, ownerID uuid.UUID) ([]contacts.InteractionWithContact, error)
	Actions() []string
}

type interactionService struct {
	db              *gorm.DB
	log             *logger.Logger
	interactionRepo repos.ContactInteractionRepo
	contactRepo     repos.ContactRepo
}

func NewInteractionService(db *gorm.DB, log *logger.Logger, interactionRepo repos.ContactInteractionRepo, contactRepo repos.ContactRepo) InteractionService {
	serviceLog := log.With("service", "InteractionService")
	return &interactionService{
		db:              db,
		log:             serviceLog,
		interactionRepo: interactionRepo,
		contactRepo:     contactRepo,
	}
}

func validateAction(action, customDescription string) error {
	if action == "" {
		return nil
	}
	if !types.ValidInteractionAction(action) {
		return fmt.Errorf("unknown action %q: %w", action, apperrors.ErrInvalidArgument)
	}
	if action == string(types.ActionCustom) && strings.TrimSpace(customDescription) == "" {
		return fmt.Errorf("custom actions need a description: %w", apperrors.ErrInvalidArgument)
	}
	return nil
}

func (is *interactionService) Create(ctx context.Context, ownerID, contactID uuid.UUID, input InteractionInput) (*types.ContactInteraction, error) {
	note := strings.TrimSpace(input.Note)
	if note == "" {
		return nil, fmt.Errorf("note is required: %w", apperrors.ErrInvalidArgument)
	}
	if err := validateAction(input.Action, input.CustomActionDescription); err != nil {
		return nil, err
	}

	var created *types.ContactInteraction
	if err := is.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		contact, err := is.contactRepo.GetByID(ctx, tx, ownerID, contactID)
		if err != nil {
			return fmt.Errorf("fetch contact: %w", err)
		}
		if contact == nil {
			return fmt.Errorf("contact %s: %w", contactID, apperrors.ErrNotFound)
		}

		when := time.Now().UTC()
		if input.InteractionTimestamp != nil {
			when = *input.InteractionTimestamp
		}
		rows, err := is.interactionRepo.Create(ctx, tx, []*types.ContactInteraction{{
			ID:                      uuid.New(),
			ContactID:               contactID,
			Note:                    note,
			InteractionTimestamp:    when,
			Action:                  input.Action,
			CustomActionDescription: input.CustomActionDescription,
			ActionTimestamp:         input.ActionTimestamp,
			CreatedByID:             ownerID,
		}})
		if err != nil {
			return fmt.Errorf("create interaction: %w", err)
		}
		created = rows[0]
		return nil
	}); err != nil {
		return nil, err
	}
	return created, nil
}

func (is *interactionService) ListByContact(ctx context.Context, ownerID, contactID uuid.UUID, params pagination.Params) (*pagination.Page, error) {
	var (
		rows  []*types.ContactInteraction
		total int64
	)
	if err := is.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		contact, err := is.contactRepo.GetByID(ctx, tx, ownerID, contactID)
		if err != nil {
			return fmt.Errorf("fetch contact: %w", err)
		}
		if contact == nil {
			return fmt.Errorf("contact %s: %w", contactID, apperrors.ErrNotFound)
		}
		rows, err = is.interactionRepo.ListByContact(ctx, tx, contactID, params.Limit(), params.Offset())
		if err != nil {
			return fmt.Errorf("list interactions: %w", err)
		}
		total, err = is.interactionRepo.CountByContact(ctx, tx, contactID)
		if err != nil {
			return fmt.Errorf("count interactions: %w", err)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return pagination.NewPage(rows, params, total), nil
}

func (is *interactionService) Update(ctx context.Context, ownerID, interactionID uuid.UUID, update InteractionUpdate) (*types.ContactInteraction, error) {
	updates := map[string]any{}
	if update.Note != nil {
		note := strings.TrimSpace(*update.Note)
		if note == "" {
			return nil, fmt.Errorf("note cannot be empty: %w", apperrors.ErrInvalidArgument)
		}
		updates["note"] = note
	}
	if update.InteractionTimestamp != nil {
		updates["interaction_timestamp"] = *update.InteractionTimestamp
	}
	if update.Action != nil {
		custom := ""
		if update.CustomActionDescription != nil {
			custom = *update.CustomActionDescription
		}
		if err := validateAction(*update.Action, custom); err != nil {
			return nil, err
		}
		updates["action"] = *update.Action
	}
	if update.CustomActionDescription != nil {
		updates["custom_action_description"] = *update.CustomActionDescription
	}
	if update.ActionTimestamp != nil {
		updates["action_timestamp"] = *update.ActionTimestamp
	}
	if len(updates) == 0 {
		return nil, fmt.Errorf("no fields to update: %w", apperrors.ErrInvalidArgument)
	}

	var updated *types.ContactInteraction
	if err := is.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rows, err := is.interactionRepo.Update(ctx, tx, ownerID, interactionID, updates)
		if err != nil {
			return fmt.Errorf("update interaction: %w", err)
		}
		if rows == 0 {
			return fmt.Errorf("interaction %s: %w", interactionID, apperrors.ErrNotFound)
		}
		updated, err = is.interactionRepo.GetByID(ctx, tx, ownerID, interactionID)
		if err != nil {
			return fmt.Errorf("reload interaction: %w", err)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return updated, nil
}

func (is *interactionService) Delete(ctx context.Context, ownerID, interactionID uuid.UUID) error {
	rows, err := is.interactionRepo.SoftDelete(ctx, nil, ownerID, interactionID)
	if err != nil {
		return fmt.Errorf("delete interaction: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("interaction %s: %w", interactionID, apperrors.ErrNotFound)
	}
	return nil
}

// Upcoming returns the owner's follow-up actions due within the next
// five days, soonest first.
func (is *interactionService) Upcoming(ctx context.Context, ownerID uuid.UUID) ([]contacts.InteractionWithContact, error) {
	now := time.Now().UTC()
	return is.interactionRepo.Upcoming(ctx, nil, ownerID, now, now.Add(upcomingWindow))
}

func (is *interactionService) Actions() []string {
	return types.InteractionActionValues()
}
