package users

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/tesserahq/contacts-backend/internal/data/repos/testutil"
	types "github.com/tesserahq/contacts-backend/internal/domain"
)

func TestUserRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewUserRepo(db, testutil.Logger(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, tx, []*types.User{
		{
			ID:        uuid.New(),
			Email:     "userrepo@example.com",
			Username:  "userrepo",
			FirstName: "A",
			LastName:  "B",
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(created) != 1 {
		t.Fatalf("Create: expected 1 user, got %d", len(created))
	}

	got, err := repo.GetByID(ctx, tx, created[0].ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got == nil || got.ID != created[0].ID {
		t.Fatalf("GetByID: unexpected result: %+v", got)
	}

	missing, err := repo.GetByID(ctx, tx, uuid.New())
	if err != nil {
		t.Fatalf("GetByID (missing): %v", err)
	}
	if missing != nil {
		t.Fatalf("GetByID (missing): expected nil, got %+v", missing)
	}

	exists, err := repo.EmailExists(ctx, tx, "USERREPO@example.com", uuid.Nil)
	if err != nil {
		t.Fatalf("EmailExists: %v", err)
	}
	if !exists {
		t.Fatalf("EmailExists: expected true for case-insensitive match")
	}

	exists, err = repo.EmailExists(ctx, tx, "userrepo@example.com", created[0].ID)
	if err != nil {
		t.Fatalf("EmailExists (exclude self): %v", err)
	}
	if exists {
		t.Fatalf("EmailExists (exclude self): expected false")
	}

	rows, err := repo.SetVerified(ctx, tx, created[0].ID, true)
	if err != nil {
		t.Fatalf("SetVerified: %v", err)
	}
	if rows != 1 {
		t.Fatalf("SetVerified: expected 1 row, got %d", rows)
	}

	rows, err = repo.SoftDelete(ctx, tx, created[0].ID)
	if err != nil {
		t.Fatalf("SoftDelete: %v", err)
	}
	if rows != 1 {
		t.Fatalf("SoftDelete: expected 1 row, got %d", rows)
	}

	got, err = repo.GetByID(ctx, tx, created[0].ID)
	if err != nil {
		t.Fatalf("GetByID (after delete): %v", err)
	}
	if got != nil {
		t.Fatalf("GetByID (after delete): expected nil, got %+v", got)
	}

	if err := repo.Restore(ctx, tx, created[0].ID); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	got, err = repo.GetByID(ctx, tx, created[0].ID)
	if err != nil {
		t.Fatalf("GetByID (after restore): %v", err)
	}
	if got == nil {
		t.Fatalf("GetByID (after restore): expected user back")
	}
}
