package converter

import (
	"go-doggy-daycare/internal/delivery/dto"
	"go-doggy-daycare/internal/domain/entity"
)

// BookingToResponse converts a Booking entity to BookingResponse DTO
func BookingToResponse(booking *entity.Booking) *dto.BookingResponse {
	if booking == nil {
		return nil
	}

	return &dto.BookingResponse{
		ID:                   booking.ID,
		DogID:                booking.DogID,
		DogName:              booking.Dog.Name,
		BookedByID:           booking.BookedByID,
		Date:                 booking.Date.Format(entity.DateFormat),
		ExpectedCheckInTime:  booking.ExpectedCheckInTime,
		ExpectedCheckOutTime: booking.ExpectedCheckOutTime,
		ActualCheckInTime:    booking.ActualCheckInTime,
		ActualCheckOutTime:   booking.ActualCheckOutTime,
		Status:               string(booking.Status),
		Notes:                booking.Notes,
		CreatedAt:            booking.CreatedAt,
		UpdatedAt:            booking.UpdatedAt,
	}
}

// BookingsToResponses converts a slice of Booking entities to response DTOs
func BookingsToResponses(bookings []entity.Booking) []dto.BookingResponse {
	responses := make([]dto.BookingResponse, len(bookings))
	for i := range bookings {
		responses[i] = *BookingToResponse(&bookings[i])
	}
	return responses
}
