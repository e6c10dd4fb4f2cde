package waitlists

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/tesserahq/contacts-backend/internal/data/repos/testutil"
	types "github.com/tesserahq/contacts-backend/internal/domain"
)

func TestWaitingListRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewWaitingListRepo(db, testutil.Logger(t))
	ctx := context.Background()

	owner := testutil.SeedUser(t, ctx, tx, "waitlistrepo@example.com")

	created, err := repo.Create(ctx, tx, []*types.WaitingList{
		{ID: uuid.New(), Name: "Beta Access", CreatedByID: owner.ID},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(created) != 1 {
		t.Fatalf("Create: expected 1 list, got %d", len(created))
	}

	got, err := repo.GetByID(ctx, tx, owner.ID, created[0].ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got == nil || got.Name != "Beta Access" {
		t.Fatalf("GetByID: unexpected result: %+v", got)
	}

	rows, err := repo.Update(ctx, tx, owner.ID, created[0].ID, map[string]any{"description": "early adopters"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if rows != 1 {
		t.Fatalf("Update: expected 1 row, got %d", rows)
	}

	rows, err = repo.SoftDelete(ctx, tx, owner.ID, created[0].ID)
	if err != nil {
		t.Fatalf("SoftDelete: %v", err)
	}
	if rows != 1 {
		t.Fatalf("SoftDelete: expected 1 row, got %d", rows)
	}

	count, err := repo.Count(ctx, tx, owner.ID)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 0 {
		t.Fatalf("Count: expected 0 after delete, got %d", count)
	}
}

func TestWaitingListMemberRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewMemberRepo(db, testutil.Logger(t))
	ctx := context.Background()

	owner := testutil.SeedUser(t, ctx, tx, "waitmember@example.com")
	list := testutil.SeedWaitingList(t, ctx, tx, owner.ID, "Launch")
	ada := testutil.SeedContact(t, ctx, tx, owner.ID, "Ada")
	grace := testutil.SeedContact(t, ctx, tx, owner.ID, "Grace")
	alan := testutil.SeedContact(t, ctx, tx, owner.ID, "Alan")

	testutil.SeedWaitingListMember(t, ctx, tx, list.ID, ada.ID, "pending")
	testutil.SeedWaitingListMember(t, ctx, tx, list.ID, grace.ID, "pending")

	active, err := repo.ActiveContactIDs(ctx, tx, list.ID, []uuid.UUID{ada.ID, grace.ID, alan.ID})
	if err != nil {
		t.Fatalf("ActiveContactIDs: %v", err)
	}
	if len(active) != 2 {
		t.Fatalf("ActiveContactIDs: expected 2, got %d", len(active))
	}

	now := time.Now().UTC()
	rows, err := repo.UpdateStatus(ctx, tx, list.ID, ada.ID, "approved", now)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if rows != 1 {
		t.Fatalf("UpdateStatus: expected 1 row, got %d", rows)
	}

	rows, err = repo.UpdateStatus(ctx, tx, list.ID, alan.ID, "approved", now)
	if err != nil {
		t.Fatalf("UpdateStatus (not enrolled): %v", err)
	}
	if rows != 0 {
		t.Fatalf("UpdateStatus (not enrolled): expected 0 rows, got %d", rows)
	}

	member, err := repo.GetActive(ctx, tx, list.ID, ada.ID)
	if err != nil {
		t.Fatalf("GetActive: %v", err)
	}
	if member == nil || member.Status != "approved" {
		t.Fatalf("GetActive: unexpected member: %+v", member)
	}

	// Bulk update matches only the enrolled subset.
	updated, err := repo.BulkUpdateStatus(ctx, tx, list.ID, []uuid.UUID{ada.ID, grace.ID, alan.ID}, "notified", now)
	if err != nil {
		t.Fatalf("BulkUpdateStatus: %v", err)
	}
	if updated != 2 {
		t.Fatalf("BulkUpdateStatus: expected 2 rows, got %d", updated)
	}

	byStatus, err := repo.CountByStatus(ctx, tx, list.ID, "notified")
	if err != nil {
		t.Fatalf("CountByStatus: %v", err)
	}
	contactsByStatus, err := repo.ContactsByStatus(ctx, tx, list.ID, "notified", 50, 0)
	if err != nil {
		t.Fatalf("ContactsByStatus: %v", err)
	}
	if byStatus != int64(len(contactsByStatus)) {
		t.Fatalf("CountByStatus: count %d disagrees with listing length %d", byStatus, len(contactsByStatus))
	}
	if byStatus != 2 {
		t.Fatalf("CountByStatus: expected 2, got %d", byStatus)
	}

	withContacts, err := repo.MembersWithContacts(ctx, tx, list.ID, 50, 0)
	if err != nil {
		t.Fatalf("MembersWithContacts: %v", err)
	}
	if len(withContacts) != 2 {
		t.Fatalf("MembersWithContacts: expected 2, got %d", len(withContacts))
	}
	for _, pair := range withContacts {
		if pair.Contact == nil {
			t.Fatalf("MembersWithContacts: member %s missing contact", pair.Member.ID)
		}
	}

	back, err := repo.ListsForContact(ctx, tx, owner.ID, ada.ID)
	if err != nil {
		t.Fatalf("ListsForContact: %v", err)
	}
	if len(back) != 1 || back[0].ID != list.ID {
		t.Fatalf("ListsForContact: unexpected result: %+v", back)
	}

	rows, err = repo.SoftDeletePair(ctx, tx, list.ID, ada.ID)
	if err != nil {
		t.Fatalf("SoftDeletePair: %v", err)
	}
	if rows != 1 {
		t.Fatalf("SoftDeletePair: expected 1 row, got %d", rows)
	}

	count, err := repo.CountActive(ctx, tx, list.ID)
	if err != nil {
		t.Fatalf("CountActive: %v", err)
	}
	if count != 1 {
		t.Fatalf("CountActive: expected 1 after removal, got %d", count)
	}

	cleared, err := repo.Clear(ctx, tx, list.ID)
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if cleared != 1 {
		t.Fatalf("Clear: expected 1 row, got %d", cleared)
	}
}

func TestMemberCountsExcludeDeletedContacts(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewMemberRepo(db, testutil.Logger(t))
	ctx := context.Background()

	owner := testutil.SeedUser(t, ctx, tx, "waitcounts@example.com")
	list := testutil.SeedWaitingList(t, ctx, tx, owner.ID, "Counts")
	ada := testutil.SeedContact(t, ctx, tx, owner.ID, "Ada")
	grace := testutil.SeedContact(t, ctx, tx, owner.ID, "Grace")

	testutil.SeedWaitingListMember(t, ctx, tx, list.ID, ada.ID, "pending")
	testutil.SeedWaitingListMember(t, ctx, tx, list.ID, grace.ID, "pending")

	if err := tx.WithContext(ctx).Where("id = ?", grace.ID).Delete(&types.Contact{}).Error; err != nil {
		t.Fatalf("delete contact: %v", err)
	}

	withContacts, err := repo.MembersWithContacts(ctx, tx, list.ID, 50, 0)
	if err != nil {
		t.Fatalf("MembersWithContacts: %v", err)
	}
	count, err := repo.CountActive(ctx, tx, list.ID)
	if err != nil {
		t.Fatalf("CountActive: %v", err)
	}
	if count != int64(len(withContacts)) || count != 1 {
		t.Fatalf("CountActive %d disagrees with listing length %d", count, len(withContacts))
	}

	pendingContacts, err := repo.ContactsByStatus(ctx, tx, list.ID, "pending", 50, 0)
	if err != nil {
		t.Fatalf("ContactsByStatus: %v", err)
	}
	pending, err := repo.CountByStatus(ctx, tx, list.ID, "pending")
	if err != nil {
		t.Fatalf("CountByStatus: %v", err)
	}
	if pending != int64(len(pendingContacts)) || pending != 1 {
		t.Fatalf("CountByStatus %d disagrees with listing length %d", pending, len(pendingContacts))
	}
}
