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

// ContactInput carries the writable contact fields. Pointer fields on
// ContactUpdate distinguish "leave alone" from "set to empty".
type ContactInput struct {
	FirstName    string `json:"first_name"`
	MiddleName   string `json:"middle_name"`
	LastName     string `json:"last_name"`
	Company      string `json:"company"`
	Job          string `json:"job"`
	ContactType  string `json:"contact_type"`
	PhoneType    string `json:"phone_type"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	Website      string `json:"website"`
	AddressLine1 string `json:"address_line_1"`
	AddressLine2 string `json:"address_line_2"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zip_code"`
	Country      string `json:"country"`
	Notes        string `json:"notes"`
	IsActive     *bool  `json:"is_active"`
}

type ContactUpdate struct {
	FirstName    *string `json:"first_name"`
	MiddleName   *string `json:"middle_name"`
	LastName     *string `json:"last_name"`
	Company      *string `json:"company"`
	Job          *string `json:"job"`
	ContactType  *string `json:"contact_type"`
	PhoneType    *string `json:"phone_type"`
	Phone        *string `json:"phone"`
	Email        *string `json:"email"`
	Website      *string `json:"website"`
	AddressLine1 *string `json:"address_line_1"`
	AddressLine2 *string `json:"address_line_2"`
	City         *string `json:"city"`
	State        *string `json:"state"`
	ZipCode      *string `json:"zip_code"`
	Country      *string `json:"country"`
	Notes        *string `json:"notes"`
	IsActive     *bool   `json:"is_active"`
}

type ContactService interface {
	Create(ctx context.Context, ownerID uuid.UUID, input ContactInput) (*types.Contact, error)
	CreateBatch(ctx context.Context, ownerID uuid.UUID, inputs []ContactInput) ([]*types.Contact, error)
	Get(ctx context.Context, ownerID, contactID uuid.UUID) (*types.Contact, error)
	List(ctx context.Context, ownerID uuid.UUID, params pagination.Params) (*pagination.Page, error)
	Update(ctx context.Context, ownerID, contactID uuid.UUID, update ContactUpdate) (*types.Contact, error)
	Delete(ctx context.Context, ownerID, contactID uuid.UUID) error
	Search(ctx context.Context, ownerID uuid.UUID, term string, params pagination.Params) (*pagination.Page, error)
}

type contactService struct {
	db          *gorm.DB
	log         *logger.Logger
	contactRepo repos.ContactRepo
}

var validContactTypes = map[string]struct{}{
	"personal":     {},
	"professional": {},
	"family":       {},
	"other":        {},
}

var validPhoneTypes = map[string]struct{}{
	"mobile": {},
	"home":   {},
	"work":   {},
	"other":  {},
}

func NewContactService(db *gorm.DB, log *logger.Logger, contactRepo repos.ContactRepo) ContactService {
	serviceLog := log.With("service", "ContactService")
	return &contactService{
		db:          db,
		log:         serviceLog,
		contactRepo: contactRepo,
	}
}

func (cs *contactService) validateInput(input ContactInput) error {
	if strings.TrimSpace(input.FirstName) == "" && strings.TrimSpace(input.LastName) == "" {
		return fmt.Errorf("first_name or last_name is required: %w", apperrors.ErrInvalidArgument)
	}
	if input.ContactType != "" {
		if _, ok := validContactTypes[input.ContactType]; !ok {
			return fmt.Errorf("unknown contact_type %q: %w", input.ContactType, apperrors.ErrInvalidArgument)
		}
	}
	if input.PhoneType != "" {
		if _, ok := validPhoneTypes[input.PhoneType]; !ok {
			return fmt.Errorf("unknown phone_type %q: %w", input.PhoneType, apperrors.ErrInvalidArgument)
		}
	}
	return nil
}

// checkDuplicates enforces the per-owner uniqueness rules for email and
// phone. excludeID skips the row being updated.
func (cs *contactService) checkDuplicates(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, email, phone string, excludeID uuid.UUID) error {
	if email != "" {
		inUse, err := cs.contactRepo.EmailInUse(ctx, tx, ownerID, email, excludeID)
		if err != nil {
			return fmt.Errorf("check email: %w", err)
		}
		if inUse {
			return fmt.Errorf("a contact with email %q already exists: %w", email, apperrors.ErrConflict)
		}
	}
	if phone != "" {
		inUse, err := cs.contactRepo.PhoneInUse(ctx, tx, ownerID, phone, excludeID)
		if err != nil {
			return fmt.Errorf("check phone: %w", err)
		}
		if inUse {
			return fmt.Errorf("a contact with phone %q already exists: %w", phone, apperrors.ErrConflict)
		}
	}
	return nil
}

func contactFromInput(ownerID uuid.UUID, input ContactInput) *types.Contact {
	contactType := input.ContactType
	if contactType == "" {
		contactType = "personal"
	}
	phoneType := input.PhoneType
	if phoneType == "" {
		phoneType = "mobile"
	}
	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}
	return &types.Contact{
		ID:           uuid.New(),
		FirstName:    strings.TrimSpace(input.FirstName),
		MiddleName:   strings.TrimSpace(input.MiddleName),
		LastName:     strings.TrimSpace(input.LastName),
		Company:      input.Company,
		Job:          input.Job,
		ContactType:  contactType,
		PhoneType:    phoneType,
		Phone:        strings.TrimSpace(input.Phone),
		Email:        strings.TrimSpace(input.Email),
		Website:      input.Website,
		AddressLine1: input.AddressLine1,
		AddressLine2: input.AddressLine2,
		City:         input.City,
		State:        input.State,
		ZipCode:      input.ZipCode,
		Country:      input.Country,
		Notes:        input.Notes,
		IsActive:     isActive,
		CreatedByID:  ownerID,
	}
}

func (cs *contactService) Create(ctx context.Context, ownerID uuid.UUID, input ContactInput) (*types.Contact, error) {
	created, err := cs.CreateBatch(ctx, ownerID, []ContactInput{input})
	if err != nil {
		return nil, err
	}
	return created[0], nil
}

// CreateBatch validates and inserts every contact inside one transaction;
// any failure rolls the whole batch back.
func (cs *contactService) CreateBatch(ctx context.Context, ownerID uuid.UUID, inputs []ContactInput) ([]*types.Contact, error) {
	if ownerID == uuid.Nil {
		return nil, fmt.Errorf("owner id is required: %w", apperrors.ErrInvalidArgument)
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("at least one contact is required: %w", apperrors.ErrInvalidArgument)
	}

	var created []*types.Contact
	if err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seenEmails := make(map[string]struct{}, len(inputs))
		seenPhones := make(map[string]struct{}, len(inputs))
		rows := make([]*types.Contact, 0, len(inputs))
		for _, input := range inputs {
			if err := cs.validateInput(input); err != nil {
				return err
			}
			if err := cs.checkDuplicates(ctx, tx, ownerID, strings.TrimSpace(input.Email), strings.TrimSpace(input.Phone), uuid.Nil); err != nil {
				return err
			}
			row := contactFromInput(ownerID, input)
			if row.Email != "" {
				key := strings.ToLower(row.Email)
				if _, dup := seenEmails[key]; dup {
					return fmt.Errorf("duplicate email %q in batch: %w", row.Email, apperrors.ErrConflict)
				}
				seenEmails[key] = struct{}{}
			}
			if row.Phone != "" {
				if _, dup := seenPhones[row.Phone]; dup {
					return fmt.Errorf("duplicate phone %q in batch: %w", row.Phone, apperrors.ErrConflict)
				}
				seenPhones[row.Phone] = struct{}{}
			}
			rows = append(rows, row)
		}

		inserted, err := cs.contactRepo.Create(ctx, tx, rows)
		if err != nil {
			return fmt.Errorf("create contacts: %w", err)
		}
		created = inserted
		return nil
	}); err != nil {
		cs.log.Warn("CreateBatch failed", "owner_id", ownerID, "count", len(inputs), "error", err)
		return nil, err
	}
	return created, nil
}

func (cs *contactService) Get(ctx context.Context, ownerID, contactID uuid.UUID) (*types.Contact, error) {
	contact, err := cs.contactRepo.GetByID(ctx, nil, ownerID, contactID)
	if err != nil {
		return nil, fmt.Errorf("fetch contact: %w", err)
	}
	if contact == nil {
		return nil, fmt.Errorf("contact %s: %w", contactID, apperrors.ErrNotFound)
	}
	return contact, nil
}

func (cs *contactService) List(ctx context.Context, ownerID uuid.UUID, params pagination.Params) (*pagination.Page, error) {
	var (
		rows  []*types.Contact
		total int64
	)
	if err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		rows, err = cs.contactRepo.List(ctx, tx, ownerID, params.Limit(), params.Offset())
		if err != nil {
			return fmt.Errorf("list contacts: %w", err)
		}
		total, err = cs.contactRepo.Count(ctx, tx, ownerID)
		if err != nil {
			return fmt.Errorf("count contacts: %w", err)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return pagination.NewPage(rows, params, total), nil
}

func (cs *contactService) Update(ctx context.Context, ownerID, contactID uuid.UUID, update ContactUpdate) (*types.Contact, error) {
	updates := map[string]any{}
	setString := func(column string, v *string) {
		if v != nil {
			updates[column] = strings.TrimSpace(*v)
		}
	}
	setString("first_name", update.FirstName)
	setString("middle_name", update.MiddleName)
	setString("last_name", update.LastName)
	setString("company", update.Company)
	setString("job", update.Job)
	setString("phone", update.Phone)
	setString("email", update.Email)
	setString("website", update.Website)
	setString("address_line_1", update.AddressLine1)
	setString("address_line_2", update.AddressLine2)
	setString("city", update.City)
	setString("state", update.State)
	setString("zip_code", update.ZipCode)
	setString("country", update.Country)
	setString("notes", update.Notes)
	if update.ContactType != nil {
		if _, ok := validContactTypes[*update.ContactType]; !ok {
			return nil, fmt.Errorf("unknown contact_type %q: %w", *update.ContactType, apperrors.ErrInvalidArgument)
		}
		updates["contact_type"] = *update.ContactType
	}
	if update.PhoneType != nil {
		if _, ok := validPhoneTypes[*update.PhoneType]; !ok {
			return nil, fmt.Errorf("unknown phone_type %q: %w", *update.PhoneType, apperrors.ErrInvalidArgument)
		}
		updates["phone_type"] = *update.PhoneType
	}
	if update.IsActive != nil {
		updates["is_active"] = *update.IsActive
	}
	if len(updates) == 0 {
		return nil, fmt.Errorf("no fields to update: %w", apperrors.ErrInvalidArgument)
	}

	var updated *types.Contact
	if err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		email := ""
		if update.Email != nil {
			email = strings.TrimSpace(*update.Email)
		}
		phone := ""
		if update.Phone != nil {
			phone = strings.TrimSpace(*update.Phone)
		}
		if err := cs.checkDuplicates(ctx, tx, ownerID, email, phone, contactID); err != nil {
			return err
		}

		rows, err := cs.contactRepo.Update(ctx, tx, ownerID, contactID, updates)
		if err != nil {
			return fmt.Errorf("update contact: %w", err)
		}
		if rows == 0 {
			return fmt.Errorf("contact %s: %w", contactID, apperrors.ErrNotFound)
		}
		updated, err = cs.contactRepo.GetByID(ctx, tx, ownerID, contactID)
		if err != nil {
			return fmt.Errorf("reload contact: %w", err)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return updated, nil
}

func (cs *contactService) Delete(ctx context.Context, ownerID, contactID uuid.UUID) error {
	rows, err := cs.contactRepo.SoftDelete(ctx, nil, ownerID, contactID)
	if err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("contact %s: %w", contactID, apperrors.ErrNotFound)
	}
	return nil
}

func (cs *contactService) Search(ctx context.Context, ownerID uuid.UUID, term string, params pagination.Params) (*pagination.Page, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, fmt.Errorf("search term is required: %w", apperrors.ErrInvalidArgument)
	}

	var (
		rows  []*types.Contact
		total int64
	)
	if err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		rows, err = cs.contactRepo.Search(ctx, tx, ownerID, term, params.Limit(), params.Offset())
		if err != nil {
			return fmt.Errorf("search contacts: %w", err)
		}
		total, err = cs.contactRepo.SearchCount(ctx, tx, ownerID, term)
		if err != nil {
			return fmt.Errorf("count search results: %w", err)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return pagination.NewPage(rows, params, total), nil
}
