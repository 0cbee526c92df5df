package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go-doggy-daycare/internal/delivery/dto"
	"go-doggy-daycare/internal/domain/entity"
	"go-doggy-daycare/internal/usecase"
	"go-doggy-daycare/pkg/response"
	"go-doggy-daycare/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type BookingHandler struct {
	bookingUsecase usecase.BookingUsecase
	validator      *validator.CustomValidator
}

func NewBookingHandler(bookingUsecase usecase.BookingUsecase, validator *validator.CustomValidator) *BookingHandler {
	return &BookingHandler{
		bookingUsecase: bookingUsecase,
		validator:      validator,
	}
}

func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	booking, err := h.bookingUsecase.CreateBooking(r.Context(), &req)
	if err != nil {
		h.respondError(w, err, "Failed to create booking")
		return
	}

	response.Success(w, http.StatusCreated, "Booking created successfully", booking)
}

func (h *BookingHandler) GetAllBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.bookingUsecase.GetAllBookings(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get bookings")
		return
	}

	response.Success(w, http.StatusOK, "Bookings retrieved successfully", bookings)
}

func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	booking, err := h.bookingUsecase.GetBooking(r.Context(), id)
	if err != nil {
		h.respondError(w, err, "Failed to get booking")
		return
	}

	response.Success(w, http.StatusOK, "Booking retrieved successfully", booking)
}

func (h *BookingHandler) GetBookingsByDate(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	date, err := time.Parse(entity.DateFormat, vars["date"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid date, use YYYY-MM-DD", nil)
		return
	}

	bookings, err := h.bookingUsecase.GetBookingsByDate(r.Context(), date)
	if err != nil {
		response.InternalServerError(w, "Failed to get bookings")
		return
	}

	response.Success(w, http.StatusOK, "Bookings retrieved successfully", bookings)
}

func (h *BookingHandler) GetBookingsByDog(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	dogID, err := uuid.Parse(vars["dogId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid dog ID", nil)
		return
	}

	bookings, err := h.bookingUsecase.GetBookingsByDog(r.Context(), dogID)
	if err != nil {
		h.respondError(w, err, "Failed to get bookings")
		return
	}

	response.Success(w, http.StatusOK, "Bookings retrieved successfully", bookings)
}

func (h *BookingHandler) GetBookingsByUser(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID, err := uuid.Parse(vars["userId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid user ID", nil)
		return
	}

	bookings, err := h.bookingUsecase.GetBookingsByUser(r.Context(), userID)
	if err != nil {
		h.respondError(w, err, "Failed to get bookings")
		return
	}

	response.Success(w, http.StatusOK, "Bookings retrieved successfully", bookings)
}

func (h *BookingHandler) GetBookingsByStatus(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	status, ok := entity.ParseBookingStatus(vars["status"])
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid booking status", nil)
		return
	}

	bookings, err := h.bookingUsecase.GetBookingsByStatus(r.Context(), status)
	if err != nil {
		response.InternalServerError(w, "Failed to get bookings")
		return
	}

	response.Success(w, http.StatusOK, "Bookings retrieved successfully", bookings)
}

func (h *BookingHandler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	var req dto.UpdateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	booking, err := h.bookingUsecase.UpdateBooking(r.Context(), id, &req)
	if err != nil {
		h.respondError(w, err, "Failed to update booking")
		return
	}

	response.Success(w, http.StatusOK, "Booking updated successfully", booking)
}

func (h *BookingHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	booking, err := h.bookingUsecase.CheckIn(r.Context(), id)
	if err != nil {
		h.respondError(w, err, "Failed to check in booking")
		return
	}

	response.Success(w, http.StatusOK, "Booking checked in successfully", booking)
}

func (h *BookingHandler) CheckOut(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	booking, err := h.bookingUsecase.CheckOut(r.Context(), id)
	if err != nil {
		h.respondError(w, err, "Failed to check out booking")
		return
	}

	response.Success(w, http.StatusOK, "Booking checked out successfully", booking)
}

func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	booking, err := h.bookingUsecase.CancelBooking(r.Context(), id)
	if err != nil {
		h.respondError(w, err, "Failed to cancel booking")
		return
	}

	response.Success(w, http.StatusOK, "Booking cancelled successfully", booking)
}

func (h *BookingHandler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	if err := h.bookingUsecase.DeleteBooking(r.Context(), id); err != nil {
		h.respondError(w, err, "Failed to delete booking")
		return
	}

	response.NoContent(w)
}

func (h *BookingHandler) parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	vars := mux.Vars(r)
	id, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid booking ID", nil)
		return uuid.Nil, false
	}
	return id, true
}

func (h *BookingHandler) respondError(w http.ResponseWriter, err error, fallback string) {
	var invalidTransition *entity.InvalidTransitionError

	switch {
	case errors.Is(err, usecase.ErrBookingNotFound):
		response.NotFound(w, "Booking not found")
	case errors.Is(err, usecase.ErrDogNotFound):
		response.NotFound(w, "Dog not found")
	case errors.Is(err, usecase.ErrUserNotFound):
		response.NotFound(w, "User not found")
	case errors.Is(err, usecase.ErrBookingConflict):
		response.Conflict(w, "A booking already exists for this dog on this date")
	case errors.Is(err, usecase.ErrInvalidDateFormat), errors.Is(err, usecase.ErrInvalidTimeFormat):
		response.Error(w, http.StatusBadRequest, err.Error(), nil)
	case errors.As(err, &invalidTransition):
		response.Conflict(w, invalidTransition.Error())
	default:
		response.InternalServerError(w, fallback)
	}
}
