package lists

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/tesserahq/contacts-backend/internal/data/repos/testutil"
	types "github.com/tesserahq/contacts-backend/internal/domain"
)

func TestContactListRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewContactListRepo(db, testutil.Logger(t))
	ctx := context.Background()

	owner := testutil.SeedUser(t, ctx, tx, "listrepo@example.com")

	created, err := repo.Create(ctx, tx, []*types.ContactList{
		{ID: uuid.New(), Name: "Friends", CreatedByID: owner.ID},
		{ID: uuid.New(), Name: "Vendors", IsPublic: true, CreatedByID: owner.ID},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(created) != 2 {
		t.Fatalf("Create: expected 2 lists, got %d", len(created))
	}

	exists, err := repo.NameExists(ctx, tx, owner.ID, "Friends", uuid.Nil)
	if err != nil {
		t.Fatalf("NameExists: %v", err)
	}
	if !exists {
		t.Fatalf("NameExists: expected true")
	}

	total, err := repo.Count(ctx, tx, owner.ID, nil)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if total != 2 {
		t.Fatalf("Count: expected 2, got %d", total)
	}

	public, err := repo.Count(ctx, tx, owner.ID, testutil.PtrBool(true))
	if err != nil {
		t.Fatalf("Count (public): %v", err)
	}
	if public != 1 {
		t.Fatalf("Count (public): expected 1, got %d", public)
	}

	rows, err := repo.SoftDelete(ctx, tx, owner.ID, created[0].ID)
	if err != nil {
		t.Fatalf("SoftDelete: %v", err)
	}
	if rows != 1 {
		t.Fatalf("SoftDelete: expected 1 row, got %d", rows)
	}

	got, err := repo.GetByID(ctx, tx, owner.ID, created[0].ID)
	if err != nil {
		t.Fatalf("GetByID (after delete): %v", err)
	}
	if got != nil {
		t.Fatalf("GetByID (after delete): expected nil, got %+v", got)
	}
}

func TestContactListMemberRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewMemberRepo(db, testutil.Logger(t))
	ctx := context.Background()

	owner := testutil.SeedUser(t, ctx, tx, "listmember@example.com")
	list := testutil.SeedContactList(t, ctx, tx, owner.ID, "Inner Circle")
	ada := testutil.SeedContact(t, ctx, tx, owner.ID, "Ada")
	grace := testutil.SeedContact(t, ctx, tx, owner.ID, "Grace")

	_, err := repo.Create(ctx, tx, []*types.ContactListMember{
		{ID: uuid.New(), ContactListID: list.ID, ContactID: ada.ID},
		{ID: uuid.New(), ContactListID: list.ID, ContactID: grace.ID},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	active, err := repo.ActiveContactIDs(ctx, tx, list.ID, []uuid.UUID{ada.ID, grace.ID, uuid.New()})
	if err != nil {
		t.Fatalf("ActiveContactIDs: %v", err)
	}
	if len(active) != 2 {
		t.Fatalf("ActiveContactIDs: expected 2, got %d", len(active))
	}

	count, err := repo.CountActive(ctx, tx, list.ID)
	if err != nil {
		t.Fatalf("CountActive: %v", err)
	}
	if count != 2 {
		t.Fatalf("CountActive: expected 2, got %d", count)
	}

	members, err := repo.ListMemberContacts(ctx, tx, list.ID, 50, 0)
	if err != nil {
		t.Fatalf("ListMemberContacts: %v", err)
	}
	if len(members) != 2 {
		t.Fatalf("ListMemberContacts: expected 2 contacts, got %d", len(members))
	}

	back, err := repo.ListsForContact(ctx, tx, owner.ID, ada.ID)
	if err != nil {
		t.Fatalf("ListsForContact: %v", err)
	}
	if len(back) != 1 || back[0].ID != list.ID {
		t.Fatalf("ListsForContact: unexpected result: %+v", back)
	}

	rows, err := repo.SoftDeletePair(ctx, tx, list.ID, ada.ID)
	if err != nil {
		t.Fatalf("SoftDeletePair: %v", err)
	}
	if rows != 1 {
		t.Fatalf("SoftDeletePair: expected 1 row, got %d", rows)
	}

	got, err := repo.GetActive(ctx, tx, list.ID, ada.ID)
	if err != nil {
		t.Fatalf("GetActive (after remove): %v", err)
	}
	if got != nil {
		t.Fatalf("GetActive (after remove): expected nil, got %+v", got)
	}

	// Removing and re-adding produces a fresh active row.
	_, err = repo.Create(ctx, tx, []*types.ContactListMember{
		{ID: uuid.New(), ContactListID: list.ID, ContactID: ada.ID},
	})
	if err != nil {
		t.Fatalf("Create (re-add): %v", err)
	}
	got, err = repo.GetActive(ctx, tx, list.ID, ada.ID)
	if err != nil {
		t.Fatalf("GetActive (re-add): %v", err)
	}
	if got == nil {
		t.Fatalf("GetActive (re-add): expected active membership")
	}

	cleared, err := repo.Clear(ctx, tx, list.ID)
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if cleared != 2 {
		t.Fatalf("Clear: expected 2 rows, got %d", cleared)
	}
}
