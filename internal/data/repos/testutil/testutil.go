package testutil

import (
	"errors"
	"os"
	"sync"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	types "github.com/tesserahq/contacts-backend/internal/domain"
	"github.com/tesserahq/contacts-backend/internal/pkg/logger"
)

var errMissingDSN = errors.New("missing TEST_POSTGRES_DSN")

var (
	dbOnce sync.Once
	db     *gorm.DB
	dbErr  error

	logOnce sync.Once
	logg    *logger.Logger
	logErr  error
)

func Logger(tb testing.TB) *logger.Logger {
	tb.Helper()
	logOnce.Do(func() {
		logg, logErr = logger.New("test")
	})
	if logErr != nil {
		tb.Fatalf("failed to init logger: %v", logErr)
	}
	return logg
}

func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	dbOnce.Do(func() {
		dsn := os.Getenv("TEST_POSTGRES_DSN")
		if dsn == "" {
			dbErr = errMissingDSN
			return
		}

		var err error
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			DisableForeignKeyConstraintWhenMigrating: true,
			Logger:                                   gormLogger.Default.LogMode(gormLogger.Silent),
		})
		if err != nil {
			dbErr = err
			return
		}

		if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
			dbErr = err
			return
		}

		if err := autoMigrateAll(db); err != nil {
			dbErr = err
			return
		}
	})

	if errors.Is(dbErr, errMissingDSN) {
		tb.Skip("set TEST_POSTGRES_DSN to run repo integration tests")
	}
	if dbErr != nil {
		tb.Fatalf("failed to init test db: %v", dbErr)
	}
	return db
}

func Tx(tb testing.TB, db *gorm.DB) *gorm.DB {
	tb.Helper()
	tx := db.Begin()
	if tx.Error != nil {
		tb.Fatalf("begin tx: %v", tx.Error)
	}
	tb.Cleanup(func() {
		_ = tx.Rollback().Error
	})
	return tx
}

func autoMigrateAll(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&types.User{},
		&types.Contact{},
		&types.ContactList{},
		&types.ContactListMember{},
		&types.WaitingList{},
		&types.WaitingListMember{},
		&types.ContactInteraction{},
	); err != nil {
		return err
	}
	return searchDDL(db)
}

// searchDDL mirrors the generated column the postgres service installs so
// the search queries work under the test schema too.
func searchDDL(db *gorm.DB) error {
	if err := db.Exec(`
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
		return err
	}
	return db.Exec(`CREATE INDEX IF NOT EXISTS "idx_contact_fts" ON "contact" USING GIN ("fts");`).Error
}
