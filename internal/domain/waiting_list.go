package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WaitingList struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name        string    `gorm:"not null;column:name" json:"name"`
	Description string    `gorm:"column:description" json:"description"`
	CreatedByID uuid.UUID `gorm:"type:uuid;not null;index;column:created_by_id" json:"created_by_id"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (WaitingList) TableName() string { return "waiting_list" }

// WaitingListMember tracks a contact's enrollment on a waiting list along
// with its lifecycle status. JoinedAt is set once on enrollment;
// StatusChangedAt moves every time the status does.
type WaitingListMember struct {
	ID              uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	WaitingListID   uuid.UUID `gorm:"type:uuid;not null;index;column:waiting_list_id" json:"waiting_list_id"`
	ContactID       uuid.UUID `gorm:"type:uuid;not null;index;column:contact_id" json:"contact_id"`
	Status          string    `gorm:"not null;default:'pending';column:status" json:"status"`
	JoinedAt        time.Time `gorm:"not null;default:now();column:joined_at" json:"joined_at"`
	StatusChangedAt time.Time `gorm:"not null;default:now();column:status_changed_at" json:"status_changed_at"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (WaitingListMember) TableName() string { return "waiting_list_member" }
