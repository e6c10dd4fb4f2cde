package contacts

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/tesserahq/contacts-backend/internal/data/repos/testutil"
	types "github.com/tesserahq/contacts-backend/internal/domain"
)

func TestContactRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewContactRepo(db, testutil.Logger(t))
	ctx := context.Background()

	owner := testutil.SeedUser(t, ctx, tx, "contactrepo@example.com")
	other := testutil.SeedUser(t, ctx, tx, "contactrepo-other@example.com")

	created, err := repo.Create(ctx, tx, []*types.Contact{
		{
			ID:          uuid.New(),
			FirstName:   "Ada",
			LastName:    "Lovelace",
			Email:       "ada@example.com",
			Phone:       "+1-555-0100",
			ContactType: "professional",
			PhoneType:   "mobile",
			IsActive:    true,
			CreatedByID: owner.ID,
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(created) != 1 {
		t.Fatalf("Create: expected 1 contact, got %d", len(created))
	}
	contact := created[0]

	got, err := repo.GetByID(ctx, tx, owner.ID, contact.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got == nil || got.ID != contact.ID {
		t.Fatalf("GetByID: unexpected result: %+v", got)
	}

	// Another owner must not see the row.
	crossOwner, err := repo.GetByID(ctx, tx, other.ID, contact.ID)
	if err != nil {
		t.Fatalf("GetByID (cross owner): %v", err)
	}
	if crossOwner != nil {
		t.Fatalf("GetByID (cross owner): expected nil, got %+v", crossOwner)
	}

	inUse, err := repo.EmailInUse(ctx, tx, owner.ID, "ADA@example.com", uuid.Nil)
	if err != nil {
		t.Fatalf("EmailInUse: %v", err)
	}
	if !inUse {
		t.Fatalf("EmailInUse: expected true for case-insensitive match")
	}

	inUse, err = repo.EmailInUse(ctx, tx, owner.ID, "ada@example.com", contact.ID)
	if err != nil {
		t.Fatalf("EmailInUse (exclude self): %v", err)
	}
	if inUse {
		t.Fatalf("EmailInUse (exclude self): expected false")
	}

	inUse, err = repo.EmailInUse(ctx, tx, other.ID, "ada@example.com", uuid.Nil)
	if err != nil {
		t.Fatalf("EmailInUse (other owner): %v", err)
	}
	if inUse {
		t.Fatalf("EmailInUse (other owner): expected false, duplicates are per owner")
	}

	inUse, err = repo.PhoneInUse(ctx, tx, owner.ID, "+1-555-0100", uuid.Nil)
	if err != nil {
		t.Fatalf("PhoneInUse: %v", err)
	}
	if !inUse {
		t.Fatalf("PhoneInUse: expected true")
	}

	existing, err := repo.ExistingIDs(ctx, tx, owner.ID, []uuid.UUID{contact.ID, uuid.New()})
	if err != nil {
		t.Fatalf("ExistingIDs: %v", err)
	}
	if len(existing) != 1 || existing[0] != contact.ID {
		t.Fatalf("ExistingIDs: unexpected result: %+v", existing)
	}

	rows, err := repo.Update(ctx, tx, owner.ID, contact.ID, map[string]any{"company": "Analytical Engines"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if rows != 1 {
		t.Fatalf("Update: expected 1 row, got %d", rows)
	}

	rows, err = repo.Update(ctx, tx, other.ID, contact.ID, map[string]any{"company": "nope"})
	if err != nil {
		t.Fatalf("Update (cross owner): %v", err)
	}
	if rows != 0 {
		t.Fatalf("Update (cross owner): expected 0 rows, got %d", rows)
	}

	rows, err = repo.SoftDelete(ctx, tx, owner.ID, contact.ID)
	if err != nil {
		t.Fatalf("SoftDelete: %v", err)
	}
	if rows != 1 {
		t.Fatalf("SoftDelete: expected 1 row, got %d", rows)
	}

	got, err = repo.GetByID(ctx, tx, owner.ID, contact.ID)
	if err != nil {
		t.Fatalf("GetByID (after delete): %v", err)
	}
	if got != nil {
		t.Fatalf("GetByID (after delete): expected nil, got %+v", got)
	}

	count, err := repo.Count(ctx, tx, owner.ID)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 0 {
		t.Fatalf("Count: expected 0 after delete, got %d", count)
	}
}

func TestContactRepoSearch(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewContactRepo(db, testutil.Logger(t))
	ctx := context.Background()

	owner := testutil.SeedUser(t, ctx, tx, "contactsearch@example.com")

	_, err := repo.Create(ctx, tx, []*types.Contact{
		{
			ID:          uuid.New(),
			FirstName:   "Grace",
			LastName:    "Hopper",
			Company:     "Navy",
			ContactType: "professional",
			PhoneType:   "work",
			CreatedByID: owner.ID,
		},
		{
			ID:          uuid.New(),
			FirstName:   "Alan",
			LastName:    "Turing",
			Notes:       "met at the Navy symposium",
			ContactType: "professional",
			PhoneType:   "work",
			CreatedByID: owner.ID,
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	results, err := repo.Search(ctx, tx, owner.ID, "navy", 50, 0)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Search: expected 2 results, got %d", len(results))
	}
	// Company carries weight A, notes weight C, so Hopper ranks first.
	if results[0].LastName != "Hopper" {
		t.Fatalf("Search: expected Hopper ranked first, got %s", results[0].LastName)
	}

	count, err := repo.SearchCount(ctx, tx, owner.ID, "navy")
	if err != nil {
		t.Fatalf("SearchCount: %v", err)
	}
	if count != 2 {
		t.Fatalf("SearchCount: expected 2, got %d", count)
	}

	results, err = repo.Search(ctx, tx, owner.ID, "nobody-matches-this", 50, 0)
	if err != nil {
		t.Fatalf("Search (no match): %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("Search (no match): expected 0 results, got %d", len(results))
	}
}
