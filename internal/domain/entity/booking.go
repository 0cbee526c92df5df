package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// BookingStatus represents the attendance lifecycle state of a booking
type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "PENDING"
	BookingStatusConfirmed  BookingStatus = "CONFIRMED"
	BookingStatusCheckedIn  BookingStatus = "CHECKED_IN"
	BookingStatusCheckedOut BookingStatus = "CHECKED_OUT"
	BookingStatusCancelled  BookingStatus = "CANCELLED"
	BookingStatusNoShow     BookingStatus = "NO_SHOW"
)

// TimeOfDayFormat is the wire format for check-in/check-out times
const TimeOfDayFormat = "15:04:05"

// DateFormat is the wire format for booking dates
const DateFormat = "2006-01-02"

// ParseBookingStatus converts a raw string into a known BookingStatus
func ParseBookingStatus(raw string) (BookingStatus, bool) {
	switch BookingStatus(raw) {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCheckedIn,
		BookingStatusCheckedOut, BookingStatusCancelled, BookingStatusNoShow:
		return BookingStatus(raw), true
	}
	return "", false
}

// InvalidTransitionError is returned when a lifecycle action is not allowed
// from the booking's current status. It carries the attempted event so
// handlers can surface it as a client error.
type InvalidTransitionError struct {
	Event  string
	Status BookingStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot %s a booking in status %s", e.Event, e.Status)
}

// Booking represents a daily day-care reservation for one dog
type Booking struct {
	ID                   uuid.UUID     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	DogID                uuid.UUID     `gorm:"type:uuid;not null;index" json:"dog_id"`
	BookedByID           uuid.UUID     `gorm:"type:uuid;not null;index" json:"booked_by_id"`
	Date                 time.Time     `gorm:"type:date;not null;index" json:"date"`
	ExpectedCheckInTime  string        `gorm:"type:time;not null" json:"expected_check_in_time"`
	ExpectedCheckOutTime string        `gorm:"type:time;not null" json:"expected_check_out_time"`
	ActualCheckInTime    *string       `gorm:"type:time" json:"actual_check_in_time"`
	ActualCheckOutTime   *string       `gorm:"type:time" json:"actual_check_out_time"`
	Status               BookingStatus `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"status"`
	Notes                string        `gorm:"type:text" json:"notes"`
	Deleted              bool          `gorm:"not null;default:false;index" json:"deleted"`
	CreatedAt            time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time     `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Dog      Dog  `gorm:"foreignKey:DogID" json:"dog,omitempty"`
	BookedBy User `gorm:"foreignKey:BookedByID" json:"booked_by,omitempty"`
}

func (Booking) TableName() string {
	return "bookings"
}

// IsConfirmed checks if the booking is confirmed
func (b *Booking) IsConfirmed() bool {
	return b.Status == BookingStatusConfirmed
}

// IsCancelled checks if the booking is cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == BookingStatusCancelled
}

// CheckIn records the dog's arrival. Allowed from any status except
// CANCELLED, CHECKED_IN and CHECKED_OUT. The actual check-in time is
// stamped exactly once, here.
func (b *Booking) CheckIn(now time.Time) error {
	switch b.Status {
	case BookingStatusCancelled, BookingStatusCheckedIn, BookingStatusCheckedOut:
		return &InvalidTransitionError{Event: "check in", Status: b.Status}
	}
	arrived := now.Format(TimeOfDayFormat)
	b.ActualCheckInTime = &arrived
	b.Status = BookingStatusCheckedIn
	return nil
}

// CheckOut records the dog's departure. Only allowed from CHECKED_IN.
func (b *Booking) CheckOut(now time.Time) error {
	if b.Status != BookingStatusCheckedIn {
		return &InvalidTransitionError{Event: "check out", Status: b.Status}
	}
	left := now.Format(TimeOfDayFormat)
	b.ActualCheckOutTime = &left
	b.Status = BookingStatusCheckedOut
	return nil
}

// Cancel voids the booking. Not allowed once the dog has arrived
// (CHECKED_IN, CHECKED_OUT) or when already cancelled.
func (b *Booking) Cancel() error {
	switch b.Status {
	case BookingStatusCheckedIn, BookingStatusCheckedOut, BookingStatusCancelled:
		return &InvalidTransitionError{Event: "cancel", Status: b.Status}
	}
	b.Status = BookingStatusCancelled
	return nil
}

// MarkNoShow demotes a stale CONFIRMED booking. Reserved for the nightly
// reconciliation sweep; never reachable through the HTTP surface.
func (b *Booking) MarkNoShow() error {
	if b.Status != BookingStatusConfirmed {
		return &InvalidTransitionError{Event: "mark as no-show", Status: b.Status}
	}
	b.Status = BookingStatusNoShow
	return nil
}
