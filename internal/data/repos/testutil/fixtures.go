package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/tesserahq/contacts-backend/internal/domain"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:        uuid.New(),
		Email:     email,
		Username:  "tester",
		FirstName: "A",
		LastName:  "B",
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedContact(tb testing.TB, ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, firstName string) *types.Contact {
	tb.Helper()
	c := &types.Contact{
		ID:          uuid.New(),
		FirstName:   firstName,
		LastName:    "Doe",
		ContactType: "personal",
		PhoneType:   "mobile",
		IsActive:    true,
		CreatedByID: ownerID,
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed contact: %v", err)
	}
	return c
}

func SeedContactList(tb testing.TB, ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, name string) *types.ContactList {
	tb.Helper()
	cl := &types.ContactList{
		ID:          uuid.New(),
		Name:        name,
		CreatedByID: ownerID,
	}
	if err := tx.WithContext(ctx).Create(cl).Error; err != nil {
		tb.Fatalf("seed contact list: %v", err)
	}
	return cl
}

func SeedWaitingList(tb testing.TB, ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, name string) *types.WaitingList {
	tb.Helper()
	wl := &types.WaitingList{
		ID:          uuid.New(),
		Name:        name,
		CreatedByID: ownerID,
	}
	if err := tx.WithContext(ctx).Create(wl).Error; err != nil {
		tb.Fatalf("seed waiting list: %v", err)
	}
	return wl
}

func SeedWaitingListMember(tb testing.TB, ctx context.Context, tx *gorm.DB, listID, contactID uuid.UUID, status string) *types.WaitingListMember {
	tb.Helper()
	now := time.Now().UTC()
	m := &types.WaitingListMember{
		ID:              uuid.New(),
		WaitingListID:   listID,
		ContactID:       contactID,
		Status:          status,
		JoinedAt:        now,
		StatusChangedAt: now,
	}
	if err := tx.WithContext(ctx).Create(m).Error; err != nil {
		tb.Fatalf("seed waiting list member: %v", err)
	}
	return m
}

func SeedInteraction(tb testing.TB, ctx context.Context, tx *gorm.DB, ownerID, contactID uuid.UUID, note string) *types.ContactInteraction {
	tb.Helper()
	i := &types.ContactInteraction{
		ID:                   uuid.New(),
		ContactID:            contactID,
		Note:                 note,
		InteractionTimestamp: time.Now().UTC(),
		CreatedByID:          ownerID,
	}
	if err := tx.WithContext(ctx).Create(i).Error; err != nil {
		tb.Fatalf("seed interaction: %v", err)
	}
	return i
}

func PtrUUID(v uuid.UUID) *uuid.UUID { return &v }

func PtrTime(v time.Time) *time.Time { return &v }

func PtrBool(v bool) *bool { return &v }
