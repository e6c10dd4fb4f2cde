package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/tesserahq/contacts-backend/internal/domain"
	"github.com/tesserahq/contacts-backend/internal/pkg/logger"
	"github.com/tesserahq/contacts-backend/internal/utils"
)

type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
	serviceLog := log.With("service", "PostgresService")

	postgresHost := utils.GetEnv("POSTGRES_HOST", "localhost", log)
	postgresPort := utils.GetEnv("POSTGRES_PORT", "5432", log)
	postgresUser := utils.GetEnv("POSTGRES_USER", "postgres", log)
	postgresPassword := utils.GetEnv("POSTGRES_PASSWORD", "", log)
	postgresName := utils.GetEnv("POSTGRES_NAME", "contacts", log)

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)

	serviceLog.Info("Connecting to Postgres...")
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		serviceLog.Error("Failed to connect to Postgres", "error", err)
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		serviceLog.Error("Failed to enable uuid-ossp extension", "error", err)
		return nil, fmt.Errorf("enable uuid-ossp extension: %w", err)
	}

	return &PostgresService{db: db, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	err := s.db.AutoMigrate(
		&domain.User{},
		&domain.Contact{},
		&domain.ContactList{},
		&domain.ContactListMember{},
		&domain.WaitingList{},
		&domain.WaitingListMember{},
		&domain.ContactInteraction{},
	)
	if err != nil {
		s.log.Error("Auto migration failed for postgres tables", "error", err)
		return err
	}

	s.log.Info("Configuring foreign key relationships for postgres tables...")
	fks := []struct{ table, name, column, refTable string }{
		{"contact", "fk_contact_created_by_id", "created_by_id", "app_user"},
		{"contact_list", "fk_contact_list_created_by_id", "created_by_id", "app_user"},
		{"contact_list_member", "fk_contact_list_member_list_id", "contact_list_id", "contact_list"},
		{"contact_list_member", "fk_contact_list_member_contact_id", "contact_id", "contact"},
		{"waiting_list", "fk_waiting_list_created_by_id", "created_by_id", "app_user"},
		{"waiting_list_member", "fk_waiting_list_member_list_id", "waiting_list_id", "waiting_list"},
		{"waiting_list_member", "fk_waiting_list_member_contact_id", "contact_id", "contact"},
		{"contact_interaction", "fk_contact_interaction_contact_id", "contact_id", "contact"},
	}
	for _, fk := range fks {
		stmt := fmt.Sprintf(`
			DO $$ BEGIN
				ALTER TABLE %q ADD CONSTRAINT %q
					FOREIGN KEY (%q) REFERENCES %q("id") ON DELETE CASCADE;
			EXCEPTION WHEN duplicate_object THEN NULL;
			END $$;
		`, fk.table, fk.name, fk.column, fk.refTable)
		if err := s.db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("add %s: %w", fk.name, err)
		}
	}

	if err := s.applySearchDDL(); err != nil {
		return err
	}
	return nil
}

// applySearchDDL adds the generated weighted tsvector column on contact
// plus its GIN index. Postgres recomputes the column on every write, which
// keeps the search index derived state, never application state.
func (s *PostgresService) applySearchDDL() error {
	s.log.Info("Ensuring contact full-text search column...")
	if err := s.db.Exec(`
		ALTER TABLE "contact" ADD COLUMN IF NOT EXISTS "fts" tsvector
		GENERATED ALWAYS AS (
			setweight(to_tsvector('simple', coalesce(first_name,'')), 'A') ||
			setweight(to_tsvector('simple', coalesce(middle_name,'')), 'B') ||
			setweight(to_tsvector('simple', coalesce(last_name,'')), 'A') ||
			setweight(to_tsvector('simple', coalesce(company,'')), 'A') ||
			setweight(to_tsvector('simple', coalesce(job,'')), 'B') ||
			setweight(to_tsvector('simple', coalesce(email,'')), 'B') ||
			setweight(to_tsvector('simple', coalesce(phone,'')), 'C') ||
			setweight(to_tsvector('simple', coalesce(notes,'')), 'C') ||
			setweight(to_tsvector('simple', coalesce(address_line_1,'')), 'D') ||
			setweight(to_tsvector('simple', coalesce(address_line_2,'')), 'D') ||
			setweight(to_tsvector('simple', coalesce(city,'')), 'D') ||
			setweight(to_tsvector('simple', coalesce(state,'')), 'D') ||
			setweight(to_tsvector('simple', coalesce(zip_code,'')), 'D') ||
			setweight(to_tsvector('simple', coalesce(country,'')), 'D')
		) STORED;
	`).Error; err != nil {
		s.log.Error("Failed to add contact fts column", "error", err)
		return fmt.Errorf("add contact fts column: %w", err)
	}
	if err := s.db.Exec(`CREATE INDEX IF NOT EXISTS "idx_contact_fts" ON "contact" USING GIN ("fts");`).Error; err != nil {
		return fmt.Errorf("create contact fts index: %w", err)
	}
	return nil
}

func (s *PostgresService) DB() *gorm.DB {
	return s.db
}
