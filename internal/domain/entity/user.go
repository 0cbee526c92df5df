package entity

import (
	"time"

	"github.com/google/uuid"
)

// Role represents a user's access level
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleStaff Role = "STAFF"
	RoleOwner Role = "OWNER"
)

// ParseRole converts a raw string into a known Role
func ParseRole(raw string) (Role, bool) {
	switch Role(raw) {
	case RoleAdmin, RoleStaff, RoleOwner:
		return Role(raw), true
	}
	return "", false
}

// User represents an account: staff, admin, or dog owner
type User struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Email            string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password         string    `gorm:"type:text;not null" json:"-"`
	FirstName        string    `gorm:"type:varchar(255)" json:"first_name"`
	LastName         string    `gorm:"type:varchar(255)" json:"last_name"`
	MobileNumber     string    `gorm:"type:varchar(50);uniqueIndex" json:"mobile_number"`
	EmergencyContact string    `gorm:"type:varchar(255)" json:"emergency_contact"`
	Role             Role      `gorm:"type:varchar(20);not null;index" json:"role"`
	Enabled          bool      `gorm:"not null;default:true" json:"enabled"`
	Deleted          bool      `gorm:"not null;default:false;index" json:"deleted"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Dogs []Dog `gorm:"foreignKey:OwnerID" json:"dogs,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// FullName joins first and last name for display
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
