package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ContactList struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name        string    `gorm:"not null;column:name" json:"name"`
	Description string    `gorm:"column:description" json:"description"`
	IsPublic    bool      `gorm:"not null;default:false;column:is_public" json:"is_public"`
	CreatedByID uuid.UUID `gorm:"type:uuid;not null;index;column:created_by_id" json:"created_by_id"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (ContactList) TableName() string { return "contact_list" }

// ContactListMember is the junction row linking a contact into a list.
// Uniqueness holds on the active (non-deleted) pair only; removing and
// re-adding a contact produces a fresh row.
type ContactListMember struct {
	ID            uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ContactListID uuid.UUID `gorm:"type:uuid;not null;index;column:contact_list_id" json:"contact_list_id"`
	ContactID     uuid.UUID `gorm:"type:uuid;not null;index;column:contact_id" json:"contact_id"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (ContactListMember) TableName() string { return "contact_list_member" }
