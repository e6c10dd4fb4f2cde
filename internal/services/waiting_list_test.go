package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"

	"github.com/tesserahq/contacts-backend/internal/data/repos"
	"github.com/tesserahq/contacts-backend/internal/data/repos/testutil"
	"github.com/tesserahq/contacts-backend/internal/data/repos/waitlists"
	apperrors "github.com/tesserahq/contacts-backend/internal/pkg/errors"
	"github.com/tesserahq/contacts-backend/internal/pkg/pagination"
)

func newWaitingListFixture(t *testing.T) (WaitingListService, ContactService, uuid.UUID) {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)

	contactRepo := repos.NewContactRepo(db, log)
	listRepo := repos.NewWaitingListRepo(db, log)
	memberRepo := repos.NewWaitingListMemberRepo(db, log)

	waitingSvc := NewWaitingListService(db, log, listRepo, memberRepo, contactRepo)
	contactSvc := NewContactService(db, log, contactRepo)

	ctx := context.Background()
	owner := testutil.SeedUser(t, ctx, db, fmt.Sprintf("waitsvc-%s@example.com", uuid.New()))
	return waitingSvc, contactSvc, owner.ID
}

func seedContacts(t *testing.T, svc ContactService, ownerID uuid.UUID, n int) []uuid.UUID {
	t.Helper()
	ids := make([]uuid.UUID, 0, n)
	for i := 0; i < n; i++ {
		contact, err := svc.Create(context.Background(), ownerID, ContactInput{
			FirstName: fmt.Sprintf("Member%d", i),
			LastName:  "Test",
		})
		if err != nil {
			t.Fatalf("seed contact: %v", err)
		}
		ids = append(ids, contact.ID)
	}
	return ids
}

func TestWaitingListMemberLifecycle(t *testing.T) {
	svc, contactSvc, owner := newWaitingListFixture(t)
	ctx := context.Background()

	list, err := svc.Create(ctx, owner, WaitingListInput{Name: "Launch " + uuid.NewString()})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	contactIDs := seedContacts(t, contactSvc, owner, 2)

	added, err := svc.AddMembers(ctx, owner, list.ID, contactIDs, "")
	if err != nil {
		t.Fatalf("AddMembers: %v", err)
	}
	if added.AddedCount != 2 || added.RequestedCount != 2 {
		t.Fatalf("AddMembers: expected 2/2, got %d/%d", added.AddedCount, added.RequestedCount)
	}

	// Re-adding the same contacts is a no-op.
	again, err := svc.AddMembers(ctx, owner, list.ID, contactIDs, "pending")
	if err != nil {
		t.Fatalf("AddMembers (repeat): %v", err)
	}
	if again.AddedCount != 0 || again.RequestedCount != 2 {
		t.Fatalf("AddMembers (repeat): expected 0/2, got %d/%d", again.AddedCount, again.RequestedCount)
	}

	count, err := svc.MemberCount(ctx, owner, list.ID)
	if err != nil {
		t.Fatalf("MemberCount: %v", err)
	}
	if count != 2 {
		t.Fatalf("MemberCount: expected 2, got %d", count)
	}

	if _, err := svc.AddMembers(ctx, owner, list.ID, contactIDs, "vip"); !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Fatalf("AddMembers (bad status): expected ErrInvalidArgument, got %v", err)
	}

	isMember, err := svc.IsMember(ctx, owner, list.ID, contactIDs[0])
	if err != nil {
		t.Fatalf("IsMember: %v", err)
	}
	if !isMember {
		t.Fatalf("IsMember: expected true")
	}

	info, err := svc.MemberStatus(ctx, owner, list.ID, contactIDs[0])
	if err != nil {
		t.Fatalf("MemberStatus: %v", err)
	}
	if info.Status != "pending" {
		t.Fatalf("MemberStatus: expected pending, got %s", info.Status)
	}

	updated, err := svc.UpdateMemberStatus(ctx, owner, list.ID, contactIDs[0], "approved")
	if err != nil {
		t.Fatalf("UpdateMemberStatus: %v", err)
	}
	if updated.Status != "approved" {
		t.Fatalf("UpdateMemberStatus: expected approved, got %s", updated.Status)
	}
	if updated.StatusChangedAt.Before(updated.JoinedAt) {
		t.Fatalf("UpdateMemberStatus: status_changed_at %v before joined_at %v", updated.StatusChangedAt, updated.JoinedAt)
	}

	if _, err := svc.UpdateMemberStatus(ctx, owner, list.ID, contactIDs[0], "vip"); !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Fatalf("UpdateMemberStatus (bad status): expected ErrInvalidArgument, got %v", err)
	}

	if _, err := svc.UpdateMemberStatus(ctx, owner, list.ID, uuid.New(), "approved"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("UpdateMemberStatus (not enrolled): expected ErrNotFound, got %v", err)
	}

	if err := svc.RemoveMember(ctx, owner, list.ID, contactIDs[1]); err != nil {
		t.Fatalf("RemoveMember: %v", err)
	}
	if _, err := svc.MemberStatus(ctx, owner, list.ID, contactIDs[1]); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("MemberStatus (removed): expected ErrNotFound, got %v", err)
	}
}

func TestWaitingListBulkStatusUpdate(t *testing.T) {
	svc, contactSvc, owner := newWaitingListFixture(t)
	ctx := context.Background()

	list, err := svc.Create(ctx, owner, WaitingListInput{Name: "Bulk " + uuid.NewString()})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	contactIDs := seedContacts(t, contactSvc, owner, 3)
	if _, err := svc.AddMembers(ctx, owner, list.ID, contactIDs[:2], ""); err != nil {
		t.Fatalf("AddMembers: %v", err)
	}

	// Two of three requested contacts are enrolled.
	result, err := svc.BulkUpdateStatus(ctx, owner, list.ID, contactIDs, "notified")
	if err != nil {
		t.Fatalf("BulkUpdateStatus: %v", err)
	}
	if result.UpdatedCount != 2 || result.RequestedCount != 3 {
		t.Fatalf("BulkUpdateStatus: expected 2/3, got %d/%d", result.UpdatedCount, result.RequestedCount)
	}

	count, err := svc.CountByStatus(ctx, owner, list.ID, "notified")
	if err != nil {
		t.Fatalf("CountByStatus: %v", err)
	}
	page, err := svc.MembersByStatus(ctx, owner, list.ID, "notified", pagination.Params{Page: 1, Size: 50})
	if err != nil {
		t.Fatalf("MembersByStatus: %v", err)
	}
	if count != page.Total {
		t.Fatalf("CountByStatus %d disagrees with MembersByStatus total %d", count, page.Total)
	}
	if count != 2 {
		t.Fatalf("CountByStatus: expected 2, got %d", count)
	}

	if _, err := svc.BulkUpdateStatus(ctx, owner, list.ID, contactIDs, "archived"); !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Fatalf("BulkUpdateStatus (bad status): expected ErrInvalidArgument, got %v", err)
	}
}

func TestWaitingListSoftDeletedContactsHidden(t *testing.T) {
	svc, contactSvc, owner := newWaitingListFixture(t)
	ctx := context.Background()

	list, err := svc.Create(ctx, owner, WaitingListInput{Name: "Hidden " + uuid.NewString()})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	contactIDs := seedContacts(t, contactSvc, owner, 2)
	if _, err := svc.AddMembers(ctx, owner, list.ID, contactIDs, ""); err != nil {
		t.Fatalf("AddMembers: %v", err)
	}

	if err := contactSvc.Delete(ctx, owner, contactIDs[0]); err != nil {
		t.Fatalf("Delete contact: %v", err)
	}

	page, err := svc.Members(ctx, owner, list.ID, pagination.Params{Page: 1, Size: 50})
	if err != nil {
		t.Fatalf("Members: %v", err)
	}
	members, ok := page.Items.([]waitlists.MemberWithContact)
	if !ok {
		t.Fatalf("Members: unexpected items type %T", page.Items)
	}
	if len(members) != 1 {
		t.Fatalf("Members: expected deleted contact hidden, got %d members", len(members))
	}
	if page.Total != int64(len(members)) {
		t.Fatalf("Members: total %d disagrees with %d listed members", page.Total, len(members))
	}
	if members[0].Contact == nil || members[0].Contact.ID != contactIDs[1] {
		t.Fatalf("Members: expected surviving contact %s, got %+v", contactIDs[1], members[0])
	}

	count, err := svc.MemberCount(ctx, owner, list.ID)
	if err != nil {
		t.Fatalf("MemberCount: %v", err)
	}
	if count != 1 {
		t.Fatalf("MemberCount: expected deleted contact excluded, got %d", count)
	}

	// The per-status count has to follow the same rule.
	byStatus, err := svc.MembersByStatus(ctx, owner, list.ID, "pending", pagination.Params{Page: 1, Size: 50})
	if err != nil {
		t.Fatalf("MembersByStatus: %v", err)
	}
	statusCount, err := svc.CountByStatus(ctx, owner, list.ID, "pending")
	if err != nil {
		t.Fatalf("CountByStatus: %v", err)
	}
	if statusCount != byStatus.Total || statusCount != 1 {
		t.Fatalf("CountByStatus %d disagrees with MembersByStatus total %d", statusCount, byStatus.Total)
	}
}

func TestWaitingListStatusVocabulary(t *testing.T) {
	db := testutil.DB(t)
	log := testutil.Logger(t)
	svc := NewWaitingListService(db, log,
		repos.NewWaitingListRepo(db, log),
		repos.NewWaitingListMemberRepo(db, log),
		repos.NewContactRepo(db, log))

	statuses := svc.MemberStatuses()
	if len(statuses) != 9 {
		t.Fatalf("MemberStatuses: expected 9 statuses, got %d", len(statuses))
	}
	if statuses[0] != "pending" {
		t.Fatalf("MemberStatuses: expected pending first, got %s", statuses[0])
	}
}
