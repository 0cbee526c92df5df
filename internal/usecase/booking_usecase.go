package usecase

import (
	"context"
	"errors"
	"time"

	"go-doggy-daycare/internal/converter"
	"go-doggy-daycare/internal/delivery/dto"
	"go-doggy-daycare/internal/domain/entity"
	"go-doggy-daycare/internal/domain/repository"
	"go-doggy-daycare/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrBookingNotFound   = errors.New("booking not found")
	ErrDogNotFound       = errors.New("dog not found")
	ErrBookingConflict   = errors.New("a booking already exists for this dog on this date")
	ErrInvalidDateFormat = errors.New("invalid date format, use YYYY-MM-DD")
	ErrInvalidTimeFormat = errors.New("invalid time format, use HH:MM:SS")
)

type BookingUsecase interface {
	CreateBooking(ctx context.Context, req *dto.CreateBookingRequest) (*dto.BookingResponse, error)
	GetBooking(ctx context.Context, id uuid.UUID) (*dto.BookingResponse, error)
	GetAllBookings(ctx context.Context) (*dto.BookingListResponse, error)
	GetBookingsByDate(ctx context.Context, date time.Time) (*dto.BookingListResponse, error)
	GetBookingsByDog(ctx context.Context, dogID uuid.UUID) (*dto.BookingListResponse, error)
	GetBookingsByUser(ctx context.Context, userID uuid.UUID) (*dto.BookingListResponse, error)
	GetBookingsByStatus(ctx context.Context, status entity.BookingStatus) (*dto.BookingListResponse, error)
	UpdateBooking(ctx context.Context, id uuid.UUID, req *dto.UpdateBookingRequest) (*dto.BookingResponse, error)
	CheckIn(ctx context.Context, id uuid.UUID) (*dto.BookingResponse, error)
	CheckOut(ctx context.Context, id uuid.UUID) (*dto.BookingResponse, error)
	CancelBooking(ctx context.Context, id uuid.UUID) (*dto.BookingResponse, error)
	DeleteBooking(ctx context.Context, id uuid.UUID) error
}

type bookingUsecase struct {
	log         *logrus.Logger
	bookingRepo repository.BookingRepository
	dogRepo     repository.DogRepository
	userRepo    repository.UserRepository
	lockService *service.BookingLockService
}

func NewBookingUsecase(
	log *logrus.Logger,
	bookingRepo repository.BookingRepository,
	dogRepo repository.DogRepository,
	userRepo repository.UserRepository,
	lockService *service.BookingLockService,
) BookingUsecase {
	return &bookingUsecase{
		log:         log,
		bookingRepo: bookingRepo,
		dogRepo:     dogRepo,
		userRepo:    userRepo,
		lockService: lockService,
	}
}

// CreateBooking creates a booking in CONFIRMED state.
//
// Flow:
// 1. Validate the dog and the booking user exist
// 2. Acquire the (dog, date) key lock
// 3. Check no booking exists for this dog on this date
// 4. Insert the booking
//
// Steps 3-4 run under the key lock so two concurrent creations cannot both
// pass the conflict check.
func (u *bookingUsecase) CreateBooking(ctx context.Context, req *dto.CreateBookingRequest) (*dto.BookingResponse, error) {
	dog, err := u.dogRepo.FindByID(ctx, req.DogID)
	if err != nil {
		u.log.Warnf("Failed to find dog %s: %+v", req.DogID, err)
		return nil, err
	}
	if dog == nil {
		return nil, ErrDogNotFound
	}

	bookedBy, err := u.userRepo.FindByID(ctx, req.BookedByID)
	if err != nil {
		u.log.Warnf("Failed to find user %s: %+v", req.BookedByID, err)
		return nil, err
	}
	if bookedBy == nil {
		return nil, ErrUserNotFound
	}

	date, err := time.Parse(entity.DateFormat, req.Date)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}
	if _, err := time.Parse(entity.TimeOfDayFormat, req.ExpectedCheckInTime); err != nil {
		return nil, ErrInvalidTimeFormat
	}
	if _, err := time.Parse(entity.TimeOfDayFormat, req.ExpectedCheckOutTime); err != nil {
		return nil, ErrInvalidTimeFormat
	}

	unlock := u.lockService.Lock(req.DogID, date)
	defer unlock()

	// One booking per dog per day; any non-deleted booking blocks the date,
	// cancelled ones included
	exists, err := u.bookingRepo.ExistsByDogAndDate(ctx, req.DogID, date)
	if err != nil {
		u.log.Warnf("Failed to check existing booking for dog %s: %+v", req.DogID, err)
		return nil, err
	}
	if exists {
		return nil, ErrBookingConflict
	}

	booking := &entity.Booking{
		DogID:                req.DogID,
		BookedByID:           req.BookedByID,
		Date:                 date,
		ExpectedCheckInTime:  req.ExpectedCheckInTime,
		ExpectedCheckOutTime: req.ExpectedCheckOutTime,
		Notes:                req.Notes,
		Status:               entity.BookingStatusConfirmed,
	}

	if err := u.bookingRepo.Create(ctx, booking); err != nil {
		u.log.Warnf("Failed to create booking for dog %s: %+v", req.DogID, err)
		return nil, err
	}

	booking.Dog = *dog

	u.log.Infof("Booking created: id=%s, dog=%s, date=%s", booking.ID, dog.Name, req.Date)
	return converter.BookingToResponse(booking), nil
}

func (u *bookingUsecase) GetBooking(ctx context.Context, id uuid.UUID) (*dto.BookingResponse, error) {
	booking, err := u.findBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	return converter.BookingToResponse(booking), nil
}

func (u *bookingUsecase) GetAllBookings(ctx context.Context) (*dto.BookingListResponse, error) {
	bookings, err := u.bookingRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to find bookings: %+v", err)
		return nil, err
	}
	return listResponse(bookings), nil
}

func (u *bookingUsecase) GetBookingsByDate(ctx context.Context, date time.Time) (*dto.BookingListResponse, error) {
	bookings, err := u.bookingRepo.FindByDate(ctx, date)
	if err != nil {
		u.log.Warnf("Failed to find bookings for date %s: %+v", date.Format(entity.DateFormat), err)
		return nil, err
	}
	return listResponse(bookings), nil
}

func (u *bookingUsecase) GetBookingsByDog(ctx context.Context, dogID uuid.UUID) (*dto.BookingListResponse, error) {
	dog, err := u.dogRepo.FindByID(ctx, dogID)
	if err != nil {
		u.log.Warnf("Failed to find dog %s: %+v", dogID, err)
		return nil, err
	}
	if dog == nil {
		return nil, ErrDogNotFound
	}

	bookings, err := u.bookingRepo.FindByDogID(ctx, dogID)
	if err != nil {
		u.log.Warnf("Failed to find bookings for dog %s: %+v", dogID, err)
		return nil, err
	}
	return listResponse(bookings), nil
}

func (u *bookingUsecase) GetBookingsByUser(ctx context.Context, userID uuid.UUID) (*dto.BookingListResponse, error) {
	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to find user %s: %+v", userID, err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	bookings, err := u.bookingRepo.FindByBookedByID(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to find bookings for user %s: %+v", userID, err)
		return nil, err
	}
	return listResponse(bookings), nil
}

func (u *bookingUsecase) GetBookingsByStatus(ctx context.Context, status entity.BookingStatus) (*dto.BookingListResponse, error) {
	bookings, err := u.bookingRepo.FindByStatus(ctx, status)
	if err != nil {
		u.log.Warnf("Failed to find bookings with status %s: %+v", status, err)
		return nil, err
	}
	return listResponse(bookings), nil
}

// UpdateBooking applies a merge-patch: only fields present in the request
// change, everything else is untouched. Status and the actual check-in/out
// times are never writable here; they belong to the lifecycle transitions.
// The write touches only the patched columns and only while the status
// observed at read still holds, so it cannot overwrite a transition that
// committed in between.
func (u *bookingUsecase) UpdateBooking(ctx context.Context, id uuid.UUID, req *dto.UpdateBookingRequest) (*dto.BookingResponse, error) {
	booking, err := u.findBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Date != nil {
		date, err := time.Parse(entity.DateFormat, *req.Date)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		booking.Date = date
	}
	if req.ExpectedCheckInTime != nil {
		if _, err := time.Parse(entity.TimeOfDayFormat, *req.ExpectedCheckInTime); err != nil {
			return nil, ErrInvalidTimeFormat
		}
		booking.ExpectedCheckInTime = *req.ExpectedCheckInTime
	}
	if req.ExpectedCheckOutTime != nil {
		if _, err := time.Parse(entity.TimeOfDayFormat, *req.ExpectedCheckOutTime); err != nil {
			return nil, ErrInvalidTimeFormat
		}
		booking.ExpectedCheckOutTime = *req.ExpectedCheckOutTime
	}
	if req.Notes != nil {
		booking.Notes = *req.Notes
	}

	now := time.Now()
	updates := map[string]interface{}{
		"date":                    booking.Date,
		"expected_check_in_time":  booking.ExpectedCheckInTime,
		"expected_check_out_time": booking.ExpectedCheckOutTime,
		"notes":                   booking.Notes,
		"updated_at":              now,
	}
	if err := u.persistTransition(ctx, booking, booking.Status, "update", updates); err != nil {
		return nil, err
	}
	booking.UpdatedAt = now

	return converter.BookingToResponse(booking), nil
}

func (u *bookingUsecase) CheckIn(ctx context.Context, id uuid.UUID) (*dto.BookingResponse, error) {
	booking, err := u.findBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	from := booking.Status
	now := time.Now()
	if err := booking.CheckIn(now); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"status":               booking.Status,
		"actual_check_in_time": booking.ActualCheckInTime,
		"updated_at":           now,
	}
	if err := u.persistTransition(ctx, booking, from, "check in", updates); err != nil {
		return nil, err
	}

	u.log.Infof("Booking checked in: id=%s", id)
	return converter.BookingToResponse(booking), nil
}

func (u *bookingUsecase) CheckOut(ctx context.Context, id uuid.UUID) (*dto.BookingResponse, error) {
	booking, err := u.findBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	from := booking.Status
	now := time.Now()
	if err := booking.CheckOut(now); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"status":                booking.Status,
		"actual_check_out_time": booking.ActualCheckOutTime,
		"updated_at":            now,
	}
	if err := u.persistTransition(ctx, booking, from, "check out", updates); err != nil {
		return nil, err
	}

	u.log.Infof("Booking checked out: id=%s", id)
	return converter.BookingToResponse(booking), nil
}

func (u *bookingUsecase) CancelBooking(ctx context.Context, id uuid.UUID) (*dto.BookingResponse, error) {
	booking, err := u.findBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	from := booking.Status
	if err := booking.Cancel(); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"status":     booking.Status,
		"updated_at": time.Now(),
	}
	if err := u.persistTransition(ctx, booking, from, "cancel", updates); err != nil {
		return nil, err
	}

	u.log.Infof("Booking cancelled: id=%s", id)
	return converter.BookingToResponse(booking), nil
}

func (u *bookingUsecase) DeleteBooking(ctx context.Context, id uuid.UUID) error {
	rows, err := u.bookingRepo.SoftDelete(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to delete booking %s: %+v", id, err)
		return err
	}
	if rows == 0 {
		return ErrBookingNotFound
	}

	u.log.Infof("Booking deleted: id=%s", id)
	return nil
}

// findBooking returns a non-deleted booking or ErrBookingNotFound
func (u *bookingUsecase) findBooking(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	booking, err := u.bookingRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find booking %s: %+v", id, err)
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}
	return booking, nil
}

// persistTransition writes a guarded update with a compare-and-swap on the
// status observed at read. Losing the swap means another caller moved the
// booking first; that loser gets an invalid-transition error against the
// booking's fresh status.
func (u *bookingUsecase) persistTransition(ctx context.Context, booking *entity.Booking, from entity.BookingStatus, event string, updates map[string]interface{}) error {
	rows, err := u.bookingRepo.ApplyTransition(ctx, booking.ID, from, updates)
	if err != nil {
		u.log.Warnf("Failed to persist %s for booking %s: %+v", event, booking.ID, err)
		return err
	}
	if rows == 0 {
		fresh, ferr := u.bookingRepo.FindByID(ctx, booking.ID)
		if ferr != nil || fresh == nil {
			return ErrBookingNotFound
		}
		return &entity.InvalidTransitionError{Event: event, Status: fresh.Status}
	}
	return nil
}

func listResponse(bookings []entity.Booking) *dto.BookingListResponse {
	return &dto.BookingListResponse{
		Bookings: converter.BookingsToResponses(bookings),
		Total:    len(bookings),
	}
}
