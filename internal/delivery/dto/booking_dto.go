package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateBookingRequest struct {
	DogID                uuid.UUID `json:"dogId" validate:"required"`
	BookedByID           uuid.UUID `json:"bookedById" validate:"required"`
	Date                 string    `json:"date" validate:"required"`
	ExpectedCheckInTime  string    `json:"expectedCheckInTime" validate:"required"`
	ExpectedCheckOutTime string    `json:"expectedCheckOutTime" validate:"required"`
	Notes                string    `json:"notes"`
}

// UpdateBookingRequest is a merge-patch: nil fields are left untouched.
// Status and actual check-in/out times are deliberately absent.
type UpdateBookingRequest struct {
	Date                 *string `json:"date"`
	ExpectedCheckInTime  *string `json:"expectedCheckInTime"`
	ExpectedCheckOutTime *string `json:"expectedCheckOutTime"`
	Notes                *string `json:"notes"`
}

// Response DTOs

type BookingResponse struct {
	ID                   uuid.UUID `json:"id"`
	DogID                uuid.UUID `json:"dogId"`
	DogName              string    `json:"dogName"`
	BookedByID           uuid.UUID `json:"bookedById"`
	Date                 string    `json:"date"`
	ExpectedCheckInTime  string    `json:"expectedCheckInTime"`
	ExpectedCheckOutTime string    `json:"expectedCheckOutTime"`
	ActualCheckInTime    *string   `json:"actualCheckInTime"`
	ActualCheckOutTime   *string   `json:"actualCheckOutTime"`
	Status               string    `json:"status"`
	Notes                string    `json:"notes"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}
