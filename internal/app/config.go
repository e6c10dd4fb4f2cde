package app

import (
	"github.com/google/uuid"

	"github.com/tesserahq/contacts-backend/internal/pkg/logger"
	"github.com/tesserahq/contacts-backend/internal/utils"
)

type Config struct {
	Port               string
	JWTSecretKey       string
	AuthDisabled       bool
	DevUserID          uuid.UUID
	CORSAllowedOrigins string
}

func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		Port:               utils.GetEnv("PORT", "8080", log),
		JWTSecretKey:       utils.GetEnv("AUTH_JWT_SECRET", "defaultsecret", log),
		AuthDisabled:       utils.GetEnvAsBool("AUTH_DISABLED", false, log),
		CORSAllowedOrigins: utils.GetEnv("CORS_ALLOWED_ORIGINS", "", log),
	}
	if cfg.AuthDisabled {
		raw := utils.GetEnv("DEV_USER_ID", "", log)
		devUserID, err := uuid.Parse(raw)
		if err != nil {
			log.Warn("AUTH_DISABLED is set but DEV_USER_ID is not a valid uuid, requests will be rejected", "provided", raw)
		} else {
			cfg.DevUserID = devUserID
		}
	}
	return cfg
}
