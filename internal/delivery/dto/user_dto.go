package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateUserRequest struct {
	Email            string `json:"email" validate:"required,email"`
	Password         string `json:"password" validate:"required,min=8"`
	FirstName        string `json:"firstName" validate:"required"`
	LastName         string `json:"lastName" validate:"required"`
	MobileNumber     string `json:"mobileNumber" validate:"required"`
	EmergencyContact string `json:"emergencyContact" validate:"required"`
	Role             string `json:"role" validate:"required,oneof=ADMIN STAFF OWNER"`
}

type UpdateUserRequest struct {
	FirstName        *string `json:"firstName"`
	LastName         *string `json:"lastName"`
	MobileNumber     *string `json:"mobileNumber"`
	EmergencyContact *string `json:"emergencyContact"`
	Enabled          *bool   `json:"enabled"`
}

// Response DTOs

type UserResponse struct {
	ID               uuid.UUID `json:"id"`
	Email            string    `json:"email"`
	FirstName        string    `json:"firstName"`
	LastName         string    `json:"lastName"`
	FullName         string    `json:"fullName"`
	MobileNumber     string    `json:"mobileNumber"`
	EmergencyContact string    `json:"emergencyContact"`
	Role             string    `json:"role"`
	Enabled          bool      `json:"enabled"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

type UserListResponse struct {
	Users []UserResponse `json:"users"`
	Total int            `json:"total"`
}
