package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"

	"github.com/tesserahq/contacts-backend/internal/data/repos"
	"github.com/tesserahq/contacts-backend/internal/data/repos/testutil"
	types "github.com/tesserahq/contacts-backend/internal/domain"
	apperrors "github.com/tesserahq/contacts-backend/internal/pkg/errors"
	"github.com/tesserahq/contacts-backend/internal/pkg/pagination"
)

func newContactListFixture(t *testing.T) (ContactListService, ContactService, uuid.UUID) {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)

	contactRepo := repos.NewContactRepo(db, log)
	svc := NewContactListService(db, log,
		repos.NewContactListRepo(db, log),
		repos.NewContactListMemberRepo(db, log),
		contactRepo)
	contactSvc := NewContactService(db, log, contactRepo)

	ctx := context.Background()
	owner := testutil.SeedUser(t, ctx, db, fmt.Sprintf("listsvc-%s@example.com", uuid.New()))
	return svc, contactSvc, owner.ID
}

func TestContactListMembershipLifecycle(t *testing.T) {
	svc, contactSvc, owner := newContactListFixture(t)
	ctx := context.Background()

	list, err := svc.Create(ctx, owner, ContactListInput{Name: "Circle " + uuid.NewString()})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	contactIDs := seedContacts(t, contactSvc, owner, 2)

	added, err := svc.AddContacts(ctx, owner, list.ID, contactIDs)
	if err != nil {
		t.Fatalf("AddContacts: %v", err)
	}
	if added.AddedCount != 2 || added.RequestedCount != 2 {
		t.Fatalf("AddContacts: expected 2/2, got %d/%d", added.AddedCount, added.RequestedCount)
	}

	again, err := svc.AddContacts(ctx, owner, list.ID, contactIDs)
	if err != nil {
		t.Fatalf("AddContacts (repeat): %v", err)
	}
	if again.AddedCount != 0 {
		t.Fatalf("AddContacts (repeat): expected 0 added, got %d", again.AddedCount)
	}

	isMember, err := svc.IsMember(ctx, owner, list.ID, contactIDs[0])
	if err != nil {
		t.Fatalf("IsMember: %v", err)
	}
	if !isMember {
		t.Fatalf("IsMember: expected true")
	}

	page, err := svc.Members(ctx, owner, list.ID, pagination.Params{Page: 1, Size: 50})
	if err != nil {
		t.Fatalf("Members: %v", err)
	}
	if page.Total != 2 {
		t.Fatalf("Members: expected total 2, got %d", page.Total)
	}

	count, err := svc.MemberCount(ctx, owner, list.ID)
	if err != nil {
		t.Fatalf("MemberCount: %v", err)
	}
	if count != page.Total {
		t.Fatalf("MemberCount %d disagrees with Members total %d", count, page.Total)
	}

	back, err := svc.ListsForContact(ctx, owner, contactIDs[0])
	if err != nil {
		t.Fatalf("ListsForContact: %v", err)
	}
	if len(back) != 1 || back[0].ID != list.ID {
		t.Fatalf("ListsForContact: unexpected result: %+v", back)
	}

	if err := svc.RemoveContact(ctx, owner, list.ID, contactIDs[0]); err != nil {
		t.Fatalf("RemoveContact: %v", err)
	}
	if err := svc.RemoveContact(ctx, owner, list.ID, contactIDs[0]); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("RemoveContact (again): expected ErrNotFound, got %v", err)
	}

	removed, err := svc.ClearContacts(ctx, owner, list.ID)
	if err != nil {
		t.Fatalf("ClearContacts: %v", err)
	}
	if removed != 1 {
		t.Fatalf("ClearContacts: expected 1 row, got %d", removed)
	}
}

func TestContactListSoftDeletedContactsHidden(t *testing.T) {
	svc, contactSvc, owner := newContactListFixture(t)
	ctx := context.Background()

	list, err := svc.Create(ctx, owner, ContactListInput{Name: "Hidden " + uuid.NewString()})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	contactIDs := seedContacts(t, contactSvc, owner, 2)
	if _, err := svc.AddContacts(ctx, owner, list.ID, contactIDs); err != nil {
		t.Fatalf("AddContacts: %v", err)
	}

	if err := contactSvc.Delete(ctx, owner, contactIDs[0]); err != nil {
		t.Fatalf("Delete contact: %v", err)
	}

	page, err := svc.Members(ctx, owner, list.ID, pagination.Params{Page: 1, Size: 50})
	if err != nil {
		t.Fatalf("Members: %v", err)
	}
	members, ok := page.Items.([]*types.Contact)
	if !ok {
		t.Fatalf("Members: unexpected items type %T", page.Items)
	}
	if len(members) != 1 || members[0].ID != contactIDs[1] {
		t.Fatalf("Members: expected only surviving contact %s, got %+v", contactIDs[1], members)
	}
	if page.Total != int64(len(members)) {
		t.Fatalf("Members: total %d disagrees with %d listed contacts", page.Total, len(members))
	}

	count, err := svc.MemberCount(ctx, owner, list.ID)
	if err != nil {
		t.Fatalf("MemberCount: %v", err)
	}
	if count != 1 {
		t.Fatalf("MemberCount: expected deleted contact excluded, got %d", count)
	}
}

func TestContactListAddUnknownContact(t *testing.T) {
	svc, _, owner := newContactListFixture(t)
	ctx := context.Background()

	list, err := svc.Create(ctx, owner, ContactListInput{Name: "Unknown " + uuid.NewString()})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.AddContacts(ctx, owner, list.ID, []uuid.UUID{uuid.New()}); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("AddContacts (unknown contact): expected ErrNotFound, got %v", err)
	}
}

func TestContactListDuplicateName(t *testing.T) {
	svc, _, owner := newContactListFixture(t)
	ctx := context.Background()

	name := "Dupes " + uuid.NewString()
	if _, err := svc.Create(ctx, owner, ContactListInput{Name: name}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Create(ctx, owner, ContactListInput{Name: name}); !errors.Is(err, apperrors.ErrConflict) {
		t.Fatalf("Create (dup name): expected ErrConflict, got %v", err)
	}
}

func TestContactListVisibilityUpdate(t *testing.T) {
	svc, _, owner := newContactListFixture(t)
	ctx := context.Background()

	list, err := svc.Create(ctx, owner, ContactListInput{Name: "Vis " + uuid.NewString()})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if list.IsPublic {
		t.Fatalf("Create: lists default to private")
	}

	updated, err := svc.Update(ctx, owner, list.ID, ContactListUpdate{IsPublic: testutil.PtrBool(true)})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !updated.IsPublic {
		t.Fatalf("Update: expected public list")
	}
}
