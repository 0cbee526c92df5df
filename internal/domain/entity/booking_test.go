package entity

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBookingStatus(t *testing.T) {
	tests := []struct {
		raw  string
		want BookingStatus
		ok   bool
	}{
		{"PENDING", BookingStatusPending, true},
		{"CONFIRMED", BookingStatusConfirmed, true},
		{"CHECKED_IN", BookingStatusCheckedIn, true},
		{"CHECKED_OUT", BookingStatusCheckedOut, true},
		{"CANCELLED", BookingStatusCancelled, true},
		{"NO_SHOW", BookingStatusNoShow, true},
		{"confirmed", "", false},
		{"DELETED", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := ParseBookingStatus(tt.raw)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBookingCheckIn(t *testing.T) {
	now := time.Date(2026, 3, 14, 8, 30, 15, 0, time.UTC)

	tests := []struct {
		name    string
		status  BookingStatus
		wantErr bool
	}{
		{"from pending", BookingStatusPending, false},
		{"from confirmed", BookingStatusConfirmed, false},
		{"from no-show", BookingStatusNoShow, false},
		{"already checked in", BookingStatusCheckedIn, true},
		{"already checked out", BookingStatusCheckedOut, true},
		{"cancelled", BookingStatusCancelled, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Booking{Status: tt.status}
			err := b.CheckIn(now)

			if tt.wantErr {
				var transitionErr *InvalidTransitionError
				require.ErrorAs(t, err, &transitionErr)
				assert.Equal(t, tt.status, transitionErr.Status)
				assert.Equal(t, tt.status, b.Status)
				assert.Nil(t, b.ActualCheckInTime)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, BookingStatusCheckedIn, b.Status)
			require.NotNil(t, b.ActualCheckInTime)
			assert.Equal(t, "08:30:15", *b.ActualCheckInTime)
		})
	}
}

func TestBookingCheckOut(t *testing.T) {
	now := time.Date(2026, 3, 14, 17, 5, 0, 0, time.UTC)

	tests := []struct {
		name    string
		status  BookingStatus
		wantErr bool
	}{
		{"from checked in", BookingStatusCheckedIn, false},
		{"from pending", BookingStatusPending, true},
		{"from confirmed", BookingStatusConfirmed, true},
		{"already checked out", BookingStatusCheckedOut, true},
		{"cancelled", BookingStatusCancelled, true},
		{"no-show", BookingStatusNoShow, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Booking{Status: tt.status}
			err := b.CheckOut(now)

			if tt.wantErr {
				var transitionErr *InvalidTransitionError
				require.ErrorAs(t, err, &transitionErr)
				assert.Equal(t, tt.status, b.Status)
				assert.Nil(t, b.ActualCheckOutTime)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, BookingStatusCheckedOut, b.Status)
			require.NotNil(t, b.ActualCheckOutTime)
			assert.Equal(t, "17:05:00", *b.ActualCheckOutTime)
		})
	}
}

func TestBookingCancel(t *testing.T) {
	tests := []struct {
		name    string
		status  BookingStatus
		wantErr bool
	}{
		{"from pending", BookingStatusPending, false},
		{"from confirmed", BookingStatusConfirmed, false},
		{"from no-show", BookingStatusNoShow, false},
		{"checked in", BookingStatusCheckedIn, true},
		{"checked out", BookingStatusCheckedOut, true},
		{"already cancelled", BookingStatusCancelled, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Booking{Status: tt.status}
			err := b.Cancel()

			if tt.wantErr {
				var transitionErr *InvalidTransitionError
				require.ErrorAs(t, err, &transitionErr)
				assert.Equal(t, tt.status, b.Status)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, BookingStatusCancelled, b.Status)
		})
	}
}

func TestBookingMarkNoShow(t *testing.T) {
	tests := []struct {
		name    string
		status  BookingStatus
		wantErr bool
	}{
		{"from confirmed", BookingStatusConfirmed, false},
		{"from pending", BookingStatusPending, true},
		{"checked in", BookingStatusCheckedIn, true},
		{"checked out", BookingStatusCheckedOut, true},
		{"cancelled", BookingStatusCancelled, true},
		{"already no-show", BookingStatusNoShow, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Booking{Status: tt.status}
			err := b.MarkNoShow()

			if tt.wantErr {
				var transitionErr *InvalidTransitionError
				require.ErrorAs(t, err, &transitionErr)
				assert.Equal(t, tt.status, b.Status)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, BookingStatusNoShow, b.Status)
		})
	}
}

func TestBookingFullDay(t *testing.T) {
	morning := time.Date(2026, 3, 14, 7, 45, 0, 0, time.UTC)
	evening := time.Date(2026, 3, 14, 18, 10, 30, 0, time.UTC)

	b := &Booking{Status: BookingStatusConfirmed}

	require.NoError(t, b.CheckIn(morning))
	require.NoError(t, b.CheckOut(evening))

	assert.Equal(t, BookingStatusCheckedOut, b.Status)
	require.NotNil(t, b.ActualCheckInTime)
	require.NotNil(t, b.ActualCheckOutTime)
	assert.Equal(t, "07:45:00", *b.ActualCheckInTime)
	assert.Equal(t, "18:10:30", *b.ActualCheckOutTime)

	// Completed stays are frozen
	assert.Error(t, b.Cancel())
	assert.Error(t, b.CheckIn(evening))
	assert.Error(t, b.MarkNoShow())
}

func TestInvalidTransitionErrorMessage(t *testing.T) {
	err := &InvalidTransitionError{Event: "cancel", Status: BookingStatusCheckedIn}
	assert.Equal(t, "cannot cancel a booking in status CHECKED_IN", err.Error())

	var target *InvalidTransitionError
	assert.True(t, errors.As(err, &target))
}
