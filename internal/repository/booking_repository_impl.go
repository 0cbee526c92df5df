package repository

import (
	"context"
	"errors"
	"time"

	"go-doggy-daycare/internal/domain/entity"
	domainRepo "go-doggy-daycare/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) domainRepo.BookingRepository {
	return &bookingRepository{db: db}
}

// visible narrows any booking query to non-deleted rows. All read paths go
// through this so the soft-delete predicate cannot be forgotten.
func (r *bookingRepository) visible(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Where("deleted = ?", false)
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	var booking entity.Booking
	err := r.visible(ctx).Preload("Dog").Where("id = ?", id).First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) FindAll(ctx context.Context) ([]entity.Booking, error) {
	var bookings []entity.Booking
	err := r.visible(ctx).Preload("Dog").
		Order("date ASC, expected_check_in_time ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) FindByDate(ctx context.Context, date time.Time) ([]entity.Booking, error) {
	var bookings []entity.Booking
	err := r.visible(ctx).Preload("Dog").
		Where("date = ?", date.Format(entity.DateFormat)).
		Order("expected_check_in_time ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) FindByDogID(ctx context.Context, dogID uuid.UUID) ([]entity.Booking, error) {
	var bookings []entity.Booking
	err := r.visible(ctx).Preload("Dog").
		Where("dog_id = ?", dogID).
		Order("date DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) FindByBookedByID(ctx context.Context, userID uuid.UUID) ([]entity.Booking, error) {
	var bookings []entity.Booking
	err := r.visible(ctx).Preload("Dog").
		Where("booked_by_id = ?", userID).
		Order("date DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) FindByStatus(ctx context.Context, status entity.BookingStatus) ([]entity.Booking, error) {
	var bookings []entity.Booking
	err := r.visible(ctx).Preload("Dog").
		Where("status = ?", status).
		Order("date ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) ExistsByDogAndDate(ctx context.Context, dogID uuid.UUID, date time.Time) (bool, error) {
	var count int64
	err := r.visible(ctx).Model(&entity.Booking{}).
		Where("dog_id = ? AND date = ?", dogID, date.Format(entity.DateFormat)).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ApplyTransition atomically persists a column-limited update ONLY while
// the row still holds the expected status. Two concurrent check-ins on the
// same booking cannot both see RowsAffected == 1, and a merge-patch can
// never land on top of a transition it did not observe.
func (r *bookingRepository) ApplyTransition(ctx context.Context, id uuid.UUID, from entity.BookingStatus, updates map[string]interface{}) (int64, error) {
	result := r.db.WithContext(ctx).Model(&entity.Booking{}).
		Where("id = ? AND status = ? AND deleted = ?", id, from, false).
		Updates(updates)
	return result.RowsAffected, result.Error
}

func (r *bookingRepository) SoftDelete(ctx context.Context, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Model(&entity.Booking{}).
		Where("id = ? AND deleted = ?", id, false).
		Update("deleted", true)
	return result.RowsAffected, result.Error
}

func (r *bookingRepository) FindNoShowCandidates(ctx context.Context, before time.Time) ([]entity.Booking, error) {
	var bookings []entity.Booking
	err := r.visible(ctx).
		Where("status = ? AND date < ? AND actual_check_in_time IS NULL",
			entity.BookingStatusConfirmed, before.Format(entity.DateFormat)).
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}
