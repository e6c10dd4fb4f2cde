package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User mirrors the directory kept by the external identity provider.
// The provider owns authentication; this table owns profile data and the
// verification flag.
type User struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Email      string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Username   string    `gorm:"column:username" json:"username"`
	FirstName  string    `gorm:"column:first_name" json:"first_name"`
	LastName   string    `gorm:"column:last_name" json:"last_name"`
	Bio        string    `gorm:"type:text;column:bio" json:"bio"`
	AvatarURL  string    `gorm:"column:avatar_url" json:"avatar_url"`
	IsVerified bool      `gorm:"not null;default:false;column:is_verified" json:"is_verified"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (User) TableName() string { return "app_user" }
