package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateDogRequest struct {
	OwnerID uuid.UUID `json:"ownerId" validate:"required"`
	Name    string    `json:"name" validate:"required,min=1,max=255"`
	Age     int       `json:"age" validate:"gte=0"`
	Breed   string    `json:"breed" validate:"max=255"`
	DogInfo string    `json:"dogInfo"`
}

type UpdateDogRequest struct {
	Name    *string `json:"name"`
	Age     *int    `json:"age"`
	Breed   *string `json:"breed"`
	DogInfo *string `json:"dogInfo"`
}

// Response DTOs

type DogResponse struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"ownerId"`
	Name      string    `json:"name"`
	Age       int       `json:"age"`
	Breed     string    `json:"breed"`
	DogInfo   string    `json:"dogInfo"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type DogListResponse struct {
	Dogs  []DogResponse `json:"dogs"`
	Total int           `json:"total"`
}
