package services

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tesserahq/contacts-backend/internal/data/repos"
	apperrors "github.com/tesserahq/contacts-backend/internal/pkg/errors"
	"github.com/tesserahq/contacts-backend/internal/pkg/logger"
)

type JWTClaims struct {
	jwt.RegisteredClaims
}

// AuthService verifies bearer tokens minted by the external identity
// provider and resolves them to a local user id. This service never issues
// tokens itself.
type AuthService interface {
	ResolveToken(ctx context.Context, tokenString string) (uuid.UUID, error)
}

type authService struct {
	db           *gorm.DB
	log          *logger.Logger
	userRepo     repos.UserRepo
	jwtSecretKey string
	disabled     bool
	devUserID    uuid.UUID
}

// NewAuthService wires token verification. When disabled is true every
// request resolves to devUserID, which exists purely for local testing.
func NewAuthService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo, jwtSecretKey string, disabled bool, devUserID uuid.UUID) AuthService {
	serviceLog := log.With("service", "AuthService")
	if disabled {
		serviceLog.Warn("Authentication is disabled, all requests act as the dev user", "dev_user_id", devUserID)
	}
	return &authService{
		db:           db,
		log:          serviceLog,
		userRepo:     userRepo,
		jwtSecretKey: jwtSecretKey,
		disabled:     disabled,
		devUserID:    devUserID,
	}
}

func (as *authService) ResolveToken(ctx context.Context, tokenString string) (uuid.UUID, error) {
	if as.disabled {
		if as.devUserID == uuid.Nil {
			return uuid.Nil, fmt.Errorf("AUTH_DISABLED requires DEV_USER_ID: %w", apperrors.ErrUnauthorized)
		}
		return as.devUserID, nil
	}

	if tokenString == "" {
		return uuid.Nil, fmt.Errorf("missing bearer token: %w", apperrors.ErrUnauthorized)
	}

	parsedToken, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("parse token: %v: %w", err, apperrors.ErrUnauthorized)
	}
	claims, ok := parsedToken.Claims.(*JWTClaims)
	if !ok || !parsedToken.Valid {
		return uuid.Nil, fmt.Errorf("invalid or expired token: %w", apperrors.ErrUnauthorized)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid subject in token: %w", apperrors.ErrUnauthorized)
	}

	user, err := as.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("resolve user: %w", err)
	}
	if user == nil {
		return uuid.Nil, fmt.Errorf("token subject has no account: %w", apperrors.ErrUnauthorized)
	}
	return user.ID, nil
}
