package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"

	"github.com/tesserahq/contacts-backend/internal/data/repos"
	"github.com/tesserahq/contacts-backend/internal/data/repos/testutil"
	apperrors "github.com/tesserahq/contacts-backend/internal/pkg/errors"
	"github.com/tesserahq/contacts-backend/internal/pkg/pagination"
)

func newContactFixture(t *testing.T) (ContactService, uuid.UUID, uuid.UUID) {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)

	svc := NewContactService(db, log, repos.NewContactRepo(db, log))

	ctx := context.Background()
	owner := testutil.SeedUser(t, ctx, db, fmt.Sprintf("contactsvc-%s@example.com", uuid.New()))
	other := testutil.SeedUser(t, ctx, db, fmt.Sprintf("contactsvc-other-%s@example.com", uuid.New()))
	return svc, owner.ID, other.ID
}

func TestContactDuplicateRulesPerOwner(t *testing.T) {
	svc, owner, other := newContactFixture(t)
	ctx := context.Background()

	email := fmt.Sprintf("dup-%s@example.com", uuid.New())
	if _, err := svc.Create(ctx, owner, ContactInput{FirstName: "Ada", Email: email}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Same email for the same owner conflicts, case-insensitively.
	if _, err := svc.Create(ctx, owner, ContactInput{FirstName: "Ada2", Email: email}); !errors.Is(err, apperrors.ErrConflict) {
		t.Fatalf("Create (dup email): expected ErrConflict, got %v", err)
	}

	// A different owner may reuse the email.
	if _, err := svc.Create(ctx, other, ContactInput{FirstName: "Ada3", Email: email}); err != nil {
		t.Fatalf("Create (other owner): %v", err)
	}
}

func TestContactBatchCreateAtomic(t *testing.T) {
	svc, owner, _ := newContactFixture(t)
	ctx := context.Background()

	before, err := svc.List(ctx, owner, pagination.Params{Page: 1, Size: 1})
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	email := fmt.Sprintf("batch-%s@example.com", uuid.New())
	_, err = svc.CreateBatch(ctx, owner, []ContactInput{
		{FirstName: "One", Email: email},
		{FirstName: "Two", Email: email},
	})
	if !errors.Is(err, apperrors.ErrConflict) {
		t.Fatalf("CreateBatch (dup in batch): expected ErrConflict, got %v", err)
	}

	// Nothing from the failed batch may persist.
	after, err := svc.List(ctx, owner, pagination.Params{Page: 1, Size: 1})
	if err != nil {
		t.Fatalf("List (after failed batch): %v", err)
	}
	if after.Total != before.Total {
		t.Fatalf("CreateBatch: expected no rows persisted, total went %d -> %d", before.Total, after.Total)
	}
}

func TestContactSoftDeleteHides(t *testing.T) {
	svc, owner, _ := newContactFixture(t)
	ctx := context.Background()

	contact, err := svc.Create(ctx, owner, ContactInput{FirstName: "Ghost"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.Delete(ctx, owner, contact.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, err := svc.Get(ctx, owner, contact.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("Get (deleted): expected ErrNotFound, got %v", err)
	}
	if err := svc.Delete(ctx, owner, contact.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("Delete (already deleted): expected ErrNotFound, got %v", err)
	}
}

func TestContactOwnerScoping(t *testing.T) {
	svc, owner, other := newContactFixture(t)
	ctx := context.Background()

	contact, err := svc.Create(ctx, owner, ContactInput{FirstName: "Private"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.Get(ctx, other, contact.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("Get (cross owner): expected ErrNotFound, got %v", err)
	}
	if err := svc.Delete(ctx, other, contact.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("Delete (cross owner): expected ErrNotFound, got %v", err)
	}
}

func TestContactValidation(t *testing.T) {
	svc, owner, _ := newContactFixture(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, owner, ContactInput{}); !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Fatalf("Create (no name): expected ErrInvalidArgument, got %v", err)
	}
	if _, err := svc.Create(ctx, owner, ContactInput{FirstName: "X", ContactType: "alien"}); !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Fatalf("Create (bad contact_type): expected ErrInvalidArgument, got %v", err)
	}
	if _, err := svc.Search(ctx, owner, "   ", pagination.Params{Page: 1, Size: 10}); !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Fatalf("Search (empty term): expected ErrInvalidArgument, got %v", err)
	}
}
