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

type UserInput struct {
	Email     string `json:"email"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Bio       string `json:"bio"`
	AvatarURL string `json:"avatar_url"`
}

type UserUpdate struct {
	Email     *string `json:"email"`
	Username  *string `json:"username"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Bio       *string `json:"bio"`
	AvatarURL *string `json:"avatar_url"`
}

type UserService interface {
	Create(ctx context.Context, input UserInput) (*types.User, error)
	Get(ctx context.Context, userID uuid.UUID) (*types.User, error)
	List(ctx context.Context, params pagination.Params) (*pagination.Page, error)
	Update(ctx context.Context, userID uuid.UUID, update UserUpdate) (*types.User, error)
	Verify(ctx context.Context, userID uuid.UUID) (*types.User, error)
	Delete(ctx context.Context, userID uuid.UUID) error
}

type userService struct {
	db       *gorm.DB
	log      *logger.Logger
	userRepo repos.UserRepo
}

func NewUserService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo) UserService {
	serviceLog := log.With("service", "UserService")
	return &userService{
		db:       db,
		log:      serviceLog,
		userRepo: userRepo,
	}
}

func (us *userService) Create(ctx context.Context, input UserInput) (*types.User, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("a valid email is required: %w", apperrors.ErrInvalidArgument)
	}

	var created *types.User
	if err := us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := us.userRepo.EmailExists(ctx, tx, email, uuid.Nil)
		if err != nil {
			return fmt.Errorf("check email: %w", err)
		}
		if exists {
			return fmt.Errorf("a user with email %q already exists: %w", email, apperrors.ErrConflict)
		}

		rows, err := us.userRepo.Create(ctx, tx, []*types.User{{
			ID:        uuid.New(),
			Email:     email,
			Username:  strings.TrimSpace(input.Username),
			FirstName: strings.TrimSpace(input.FirstName),
			LastName:  strings.TrimSpace(input.LastName),
			Bio:       input.Bio,
			AvatarURL: input.AvatarURL,
		}})
		if err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		created = rows[0]
		return nil
	}); err != nil {
		return nil, err
	}
	return created, nil
}

func (us *userService) Get(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	user, err := us.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("fetch user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %s: %w", userID, apperrors.ErrNotFound)
	}
	return user, nil
}

func (us *userService) List(ctx context.Context, params pagination.Params) (*pagination.Page, error) {
	var (
		rows  []*types.User
		total int64
	)
	if err := us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		rows, err = us.userRepo.List(ctx, tx, params.Limit(), params.Offset())
		if err != nil {
			return fmt.Errorf("list users: %w", err)
		}
		total, err = us.userRepo.Count(ctx, tx)
		if err != nil {
			return fmt.Errorf("count users: %w", err)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return pagination.NewPage(rows, params, total), nil
}

func (us *userService) Update(ctx context.Context, userID uuid.UUID, update UserUpdate) (*types.User, error) {
	updates := map[string]any{}
	if update.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*update.Email))
		if email == "" || !strings.Contains(email, "@") {
			return nil, fmt.Errorf("a valid email is required: %w", apperrors.ErrInvalidArgument)
		}
		updates["email"] = email
	}
	if update.Username != nil {
		updates["username"] = strings.TrimSpace(*update.Username)
	}
	if update.FirstName != nil {
		updates["first_name"] = strings.TrimSpace(*update.FirstName)
	}
	if update.LastName != nil {
		updates["last_name"] = strings.TrimSpace(*update.LastName)
	}
	if update.Bio != nil {
		updates["bio"] = *update.Bio
	}
	if update.AvatarURL != nil {
		updates["avatar_url"] = *update.AvatarURL
	}
	if len(updates) == 0 {
		return nil, fmt.Errorf("no fields to update: %w", apperrors.ErrInvalidArgument)
	}

	var updated *types.User
	if err := us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if email, ok := updates["email"].(string); ok {
			exists, err := us.userRepo.EmailExists(ctx, tx, email, userID)
			if err != nil {
				return fmt.Errorf("check email: %w", err)
			}
			if exists {
				return fmt.Errorf("a user with email %q already exists: %w", email, apperrors.ErrConflict)
			}
		}

		rows, err := us.userRepo.Update(ctx, tx, userID, updates)
		if err != nil {
			return fmt.Errorf("update user: %w", err)
		}
		if rows == 0 {
			return fmt.Errorf("user %s: %w", userID, apperrors.ErrNotFound)
		}
		updated, err = us.userRepo.GetByID(ctx, tx, userID)
		if err != nil {
			return fmt.Errorf("reload user: %w", err)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return updated, nil
}

func (us *userService) Verify(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	var verified *types.User
	if err := us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rows, err := us.userRepo.SetVerified(ctx, tx, userID, true)
		if err != nil {
			return fmt.Errorf("verify user: %w", err)
		}
		if rows == 0 {
			return fmt.Errorf("user %s: %w", userID, apperrors.ErrNotFound)
		}
		verified, err = us.userRepo.GetByID(ctx, tx, userID)
		if err != nil {
			return fmt.Errorf("reload user: %w", err)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return verified, nil
}

func (us *userService) Delete(ctx context.Context, userID uuid.UUID) error {
	rows, err := us.userRepo.SoftDelete(ctx, nil, userID)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("user %s: %w", userID, apperrors.ErrNotFound)
	}
	return nil
}
