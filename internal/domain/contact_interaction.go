package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContactInteraction is a dated note against a contact, optionally carrying
// a follow-up action with its own due timestamp.
type ContactInteraction struct {
	ID                      uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ContactID               uuid.UUID  `gorm:"type:uuid;not null;index;column:contact_id" json:"contact_id"`
	Note                    string     `gorm:"type:text;not null;column:note" json:"note"`
	InteractionTimestamp    time.Time  `gorm:"not null;default:now();column:interaction_timestamp" json:"interaction_timestamp"`
	Action                  string     `gorm:"column:action" json:"action"`
	CustomActionDescription string     `gorm:"column:custom_action_description" json:"custom_action_description"`
	ActionTimestamp         *time.Time `gorm:"column:action_timestamp" json:"action_timestamp,omitempty"`
	CreatedByID             uuid.UUID  `gorm:"type:uuid;not null;index;column:created_by_id" json:"created_by_id"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (ContactInteraction) TableName() string { return "contact_interaction" }
