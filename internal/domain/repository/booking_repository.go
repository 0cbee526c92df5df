package repository

import (
	"context"
	"time"

	"go-doggy-daycare/internal/domain/entity"

	"github.com/google/uuid"
)

// BookingRepository is the durable store for booking records. Every read
// method filters out soft-deleted rows; callers never see tombstones.
type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindAll(ctx context.Context) ([]entity.Booking, error)
	FindByDate(ctx context.Context, date time.Time) ([]entity.Booking, error)
	FindByDogID(ctx context.Context, dogID uuid.UUID) ([]entity.Booking, error)
	FindByBookedByID(ctx context.Context, userID uuid.UUID) ([]entity.Booking, error)
	FindByStatus(ctx context.Context, status entity.BookingStatus) ([]entity.Booking, error)

	// ExistsByDogAndDate reports whether any non-deleted booking exists for
	// the dog on the given date, regardless of status.
	ExistsByDogAndDate(ctx context.Context, dogID uuid.UUID, date time.Time) (bool, error)

	// ApplyTransition persists a column-limited update only if the row
	// still holds the expected status. Carries both lifecycle transitions
	// and guarded merge-patch writes. Returns affected rows:
	// 1 = success, 0 = the booking moved on concurrently.
	ApplyTransition(ctx context.Context, id uuid.UUID, from entity.BookingStatus, updates map[string]interface{}) (int64, error)

	// SoftDelete tombstones a booking only if it is not already deleted.
	// Returns affected rows: 1 = success, 0 = already deleted or missing.
	SoftDelete(ctx context.Context, id uuid.UUID) (int64, error)

	// FindNoShowCandidates returns non-deleted CONFIRMED bookings dated
	// strictly before the given day with no recorded check-in.
	FindNoShowCandidates(ctx context.Context, before time.Time) ([]entity.Booking, error)
}
