package contacts

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/tesserahq/contacts-backend/internal/data/repos/testutil"
	types "github.com/tesserahq/contacts-backend/internal/domain"
)

func TestInteractionRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewInteractionRepo(db, testutil.Logger(t))
	ctx := context.Background()

	owner := testutil.SeedUser(t, ctx, tx, "interactionrepo@example.com")
	contact := testutil.SeedContact(t, ctx, tx, owner.ID, "Ada")

	due := time.Now().UTC().Add(48 * time.Hour)
	created, err := repo.Create(ctx, tx, []*types.ContactInteraction{
		{
			ID:                   uuid.New(),
			ContactID:            contact.ID,
			Note:                 "intro call went well",
			InteractionTimestamp: time.Now().UTC(),
			Action:               "follow_up_call",
			ActionTimestamp:      testutil.PtrTime(due),
			CreatedByID:          owner.ID,
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(created) != 1 {
		t.Fatalf("Create: expected 1 interaction, got %d", len(created))
	}

	listed, err := repo.ListByContact(ctx, tx, contact.ID, 50, 0)
	if err != nil {
		t.Fatalf("ListByContact: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("ListByContact: expected 1, got %d", len(listed))
	}

	upcoming, err := repo.Upcoming(ctx, tx, owner.ID, time.Now().UTC(), time.Now().UTC().Add(5*24*time.Hour))
	if err != nil {
		t.Fatalf("Upcoming: %v", err)
	}
	if len(upcoming) != 1 {
		t.Fatalf("Upcoming: expected 1, got %d", len(upcoming))
	}
	if upcoming[0].Contact == nil || upcoming[0].Contact.ID != contact.ID {
		t.Fatalf("Upcoming: interaction not joined to its contact: %+v", upcoming[0])
	}

	rows, err := repo.SoftDelete(ctx, tx, owner.ID, created[0].ID)
	if err != nil {
		t.Fatalf("SoftDelete: %v", err)
	}
	if rows != 1 {
		t.Fatalf("SoftDelete: expected 1 row, got %d", rows)
	}

	count, err := repo.CountByContact(ctx, tx, contact.ID)
	if err != nil {
		t.Fatalf("CountByContact: %v", err)
	}
	if count != 0 {
		t.Fatalf("CountByContact: expected 0 after delete, got %d", count)
	}
}
