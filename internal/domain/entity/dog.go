package entity

import (
	"time"

	"github.com/google/uuid"
)

// Dog represents a dog registered by an owner
type Dog struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	OwnerID   uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Age       int       `json:"age"`
	Breed     string    `gorm:"type:varchar(255)" json:"breed"`
	DogInfo   string    `gorm:"type:text" json:"dog_info"`
	Deleted   bool      `gorm:"not null;default:false;index" json:"deleted"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Owner User `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
}

func (Dog) TableName() string {
	return "dogs"
}
