package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Contact is an address-book entry owned by exactly one user. The postgres
// table additionally carries a generated weighted tsvector column `fts`
// (installed during db.AutoMigrateAll) which is not mapped here.
type Contact struct {
	ID           uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	FirstName    string    `gorm:"column:first_name" json:"first_name"`
	MiddleName   string    `gorm:"column:middle_name" json:"middle_name"`
	LastName     string    `gorm:"column:last_name" json:"last_name"`
	Company      string    `gorm:"column:company" json:"company"`
	Job          string    `gorm:"column:job" json:"job"`
	ContactType  string    `gorm:"not null;column:contact_type" json:"contact_type"`
	PhoneType    string    `gorm:"not null;column:phone_type" json:"phone_type"`
	Phone        string    `gorm:"column:phone" json:"phone"`
	Email        string    `gorm:"column:email" json:"email"`
	Website      string    `gorm:"column:website" json:"website"`
	AddressLine1 string    `gorm:"column:address_line_1" json:"address_line_1"`
	AddressLine2 string    `gorm:"column:address_line_2" json:"address_line_2"`
	City         string    `gorm:"column:city" json:"city"`
	State        string    `gorm:"column:state" json:"state"`
	ZipCode      string    `gorm:"column:zip_code" json:"zip_code"`
	Country      string    `gorm:"column:country" json:"country"`
	Notes        string    `gorm:"type:text;column:notes" json:"notes"`
	IsActive     bool      `gorm:"not null;default:true;column:is_active" json:"is_active"`
	CreatedByID  uuid.UUID `gorm:"type:uuid;not null;index;column:created_by_id" json:"created_by_id"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Contact) TableName() string { return "contact" }

// FullName joins the non-empty name parts with single spaces.
func (c *Contact) FullName() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{c.FirstName, c.MiddleName, c.LastName} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}
