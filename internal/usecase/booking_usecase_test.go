package usecase

import (
	"context"
	"testing"
	"time"

	"go-doggy-daycare/internal/delivery/dto"
	"go-doggy-daycare/internal/domain/entity"
	"go-doggy-daycare/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// In-memory repository fakes. They mirror the store semantics the GORM
// implementations provide: soft-deleted rows are invisible to every read,
// and ApplyTransition only fires when the stored status still matches.

type fakeBookingRepo struct {
	bookings map[uuid.UUID]*entity.Booking

	// beforeApplyTransition, when set, runs just before the guarded
	// update, to stage a concurrent writer between read and write
	beforeApplyTransition func()
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[uuid.UUID]*entity.Booking)}
}

func (r *fakeBookingRepo) Create(_ context.Context, booking *entity.Booking) error {
	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = booking.CreatedAt
	clone := *booking
	r.bookings[booking.ID] = &clone
	return nil
}

func (r *fakeBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Booking, error) {
	b, ok := r.bookings[id]
	if !ok || b.Deleted {
		return nil, nil
	}
	clone := *b
	return &clone, nil
}

func (r *fakeBookingRepo) FindAll(_ context.Context) ([]entity.Booking, error) {
	return r.filter(func(*entity.Booking) bool { return true }), nil
}

func (r *fakeBookingRepo) FindByDate(_ context.Context, date time.Time) ([]entity.Booking, error) {
	day := date.Format(entity.DateFormat)
	return r.filter(func(b *entity.Booking) bool {
		return b.Date.Format(entity.DateFormat) == day
	}), nil
}

func (r *fakeBookingRepo) FindByDogID(_ context.Context, dogID uuid.UUID) ([]entity.Booking, error) {
	return r.filter(func(b *entity.Booking) bool { return b.DogID == dogID }), nil
}

func (r *fakeBookingRepo) FindByBookedByID(_ context.Context, userID uuid.UUID) ([]entity.Booking, error) {
	return r.filter(func(b *entity.Booking) bool { return b.BookedByID == userID }), nil
}

func (r *fakeBookingRepo) FindByStatus(_ context.Context, status entity.BookingStatus) ([]entity.Booking, error) {
	return r.filter(func(b *entity.Booking) bool { return b.Status == status }), nil
}

func (r *fakeBookingRepo) ExistsByDogAndDate(_ context.Context, dogID uuid.UUID, date time.Time) (bool, error) {
	day := date.Format(entity.DateFormat)
	for _, b := range r.bookings {
		if !b.Deleted && b.DogID == dogID && b.Date.Format(entity.DateFormat) == day {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeBookingRepo) ApplyTransition(_ context.Context, id uuid.UUID, from entity.BookingStatus, updates map[string]interface{}) (int64, error) {
	if r.beforeApplyTransition != nil {
		r.beforeApplyTransition()
	}
	b, ok := r.bookings[id]
	if !ok || b.Deleted || b.Status != from {
		return 0, nil
	}
	// Only the listed columns change, like the guarded UPDATE
	if v, ok := updates["status"]; ok {
		b.Status = v.(entity.BookingStatus)
	}
	if v, ok := updates["actual_check_in_time"]; ok {
		b.ActualCheckInTime = v.(*string)
	}
	if v, ok := updates["actual_check_out_time"]; ok {
		b.ActualCheckOutTime = v.(*string)
	}
	if v, ok := updates["date"]; ok {
		b.Date = v.(time.Time)
	}
	if v, ok := updates["expected_check_in_time"]; ok {
		b.ExpectedCheckInTime = v.(string)
	}
	if v, ok := updates["expected_check_out_time"]; ok {
		b.ExpectedCheckOutTime = v.(string)
	}
	if v, ok := updates["notes"]; ok {
		b.Notes = v.(string)
	}
	if v, ok := updates["updated_at"]; ok {
		b.UpdatedAt = v.(time.Time)
	}
	return 1, nil
}

func (r *fakeBookingRepo) SoftDelete(_ context.Context, id uuid.UUID) (int64, error) {
	b, ok := r.bookings[id]
	if !ok || b.Deleted {
		return 0, nil
	}
	b.Deleted = true
	return 1, nil
}

func (r *fakeBookingRepo) FindNoShowCandidates(_ context.Context, before time.Time) ([]entity.Booking, error) {
	return r.filter(func(b *entity.Booking) bool {
		return b.Status == entity.BookingStatusConfirmed &&
			b.Date.Before(before) &&
			b.ActualCheckInTime == nil
	}), nil
}

func (r *fakeBookingRepo) filter(keep func(*entity.Booking) bool) []entity.Booking {
	var out []entity.Booking
	for _, b := range r.bookings {
		if !b.Deleted && keep(b) {
			out = append(out, *b)
		}
	}
	return out
}

type fakeDogRepo struct {
	dogs map[uuid.UUID]*entity.Dog
}

func newFakeDogRepo() *fakeDogRepo {
	return &fakeDogRepo{dogs: make(map[uuid.UUID]*entity.Dog)}
}

func (r *fakeDogRepo) Create(_ context.Context, dog *entity.Dog) error {
	if dog.ID == uuid.Nil {
		dog.ID = uuid.New()
	}
	clone := *dog
	r.dogs[dog.ID] = &clone
	return nil
}

func (r *fakeDogRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Dog, error) {
	d, ok := r.dogs[id]
	if !ok || d.Deleted {
		return nil, nil
	}
	clone := *d
	return &clone, nil
}

func (r *fakeDogRepo) FindAll(_ context.Context) ([]entity.Dog, error) {
	var out []entity.Dog
	for _, d := range r.dogs {
		if !d.Deleted {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (r *fakeDogRepo) FindByOwnerID(_ context.Context, ownerID uuid.UUID) ([]entity.Dog, error) {
	var out []entity.Dog
	for _, d := range r.dogs {
		if !d.Deleted && d.OwnerID == ownerID {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (r *fakeDogRepo) Save(_ context.Context, dog *entity.Dog) error {
	clone := *dog
	r.dogs[dog.ID] = &clone
	return nil
}

func (r *fakeDogRepo) SoftDelete(_ context.Context, id uuid.UUID) (int64, error) {
	d, ok := r.dogs[id]
	if !ok || d.Deleted {
		return 0, nil
	}
	d.Deleted = true
	return 1, nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok || u.Deleted {
		return nil, nil
	}
	clone := *u
	return &clone, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if !u.Deleted && u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByRole(_ context.Context, role entity.Role) ([]entity.User, error) {
	var out []entity.User
	for _, u := range r.users {
		if !u.Deleted && u.Role == role {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Save(_ context.Context, user *entity.User) error {
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

// Test fixture

type bookingFixture struct {
	usecase     BookingUsecase
	bookingRepo *fakeBookingRepo
	dogRepo     *fakeDogRepo
	userRepo    *fakeUserRepo
	lockService *service.BookingLockService
	dog         *entity.Dog
	owner       *entity.User
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	bookingRepo := newFakeBookingRepo()
	dogRepo := newFakeDogRepo()
	userRepo := newFakeUserRepo()
	lockService := service.NewBookingLockService(log)
	t.Cleanup(lockService.Stop)

	owner := &entity.User{
		Email:     "alice@example.com",
		FirstName: "Alice",
		LastName:  "Nguyen",
		Role:      entity.RoleOwner,
		Enabled:   true,
	}
	require.NoError(t, userRepo.Create(context.Background(), owner))

	dog := &entity.Dog{
		OwnerID: owner.ID,
		Name:    "Biscuit",
		Age:     3,
		Breed:   "Corgi",
	}
	require.NoError(t, dogRepo.Create(context.Background(), dog))

	return &bookingFixture{
		usecase:     NewBookingUsecase(log, bookingRepo, dogRepo, userRepo, lockService),
		bookingRepo: bookingRepo,
		dogRepo:     dogRepo,
		userRepo:    userRepo,
		lockService: lockService,
		dog:         dog,
		owner:       owner,
	}
}

func (f *bookingFixture) createBooking(t *testing.T, date string) *dto.BookingResponse {
	t.Helper()
	resp, err := f.usecase.CreateBooking(context.Background(), &dto.CreateBookingRequest{
		DogID:                f.dog.ID,
		BookedByID:           f.owner.ID,
		Date:                 date,
		ExpectedCheckInTime:  "08:00:00",
		ExpectedCheckOutTime: "17:00:00",
	})
	require.NoError(t, err)
	return resp
}

func TestCreateBooking(t *testing.T) {
	f := newBookingFixture(t)

	resp := f.createBooking(t, "2026-09-01")

	assert.Equal(t, string(entity.BookingStatusConfirmed), resp.Status)
	assert.Equal(t, "2026-09-01", resp.Date)
	assert.Equal(t, "Biscuit", resp.DogName)
	assert.Equal(t, "08:00:00", resp.ExpectedCheckInTime)
	assert.Nil(t, resp.ActualCheckInTime)
	assert.Nil(t, resp.ActualCheckOutTime)
}

func TestCreateBookingValidation(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(req *dto.CreateBookingRequest)
		wantErr error
	}{
		{
			name:    "unknown dog",
			mutate:  func(req *dto.CreateBookingRequest) { req.DogID = uuid.New() },
			wantErr: ErrDogNotFound,
		},
		{
			name:    "unknown user",
			mutate:  func(req *dto.CreateBookingRequest) { req.BookedByID = uuid.New() },
			wantErr: ErrUserNotFound,
		},
		{
			name:    "bad date",
			mutate:  func(req *dto.CreateBookingRequest) { req.Date = "01/09/2026" },
			wantErr: ErrInvalidDateFormat,
		},
		{
			name:    "bad check-in time",
			mutate:  func(req *dto.CreateBookingRequest) { req.ExpectedCheckInTime = "8am" },
			wantErr: ErrInvalidTimeFormat,
		},
		{
			name:    "bad check-out time",
			mutate:  func(req *dto.CreateBookingRequest) { req.ExpectedCheckOutTime = "25:00:00" },
			wantErr: ErrInvalidTimeFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &dto.CreateBookingRequest{
				DogID:                f.dog.ID,
				BookedByID:           f.owner.ID,
				Date:                 "2026-09-01",
				ExpectedCheckInTime:  "08:00:00",
				ExpectedCheckOutTime: "17:00:00",
			}
			tt.mutate(req)

			_, err := f.usecase.CreateBooking(ctx, req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreateBookingConflict(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	f.createBooking(t, "2026-09-01")

	_, err := f.usecase.CreateBooking(ctx, &dto.CreateBookingRequest{
		DogID:                f.dog.ID,
		BookedByID:           f.owner.ID,
		Date:                 "2026-09-01",
		ExpectedCheckInTime:  "09:00:00",
		ExpectedCheckOutTime: "16:00:00",
	})
	assert.ErrorIs(t, err, ErrBookingConflict)

	// A different date is fine
	f.createBooking(t, "2026-09-02")
}

func TestCreateBookingConflictWithCancelled(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	first := f.createBooking(t, "2026-09-01")
	_, err := f.usecase.CancelBooking(ctx, first.ID)
	require.NoError(t, err)

	// A cancelled booking still occupies the date
	_, err = f.usecase.CreateBooking(ctx, &dto.CreateBookingRequest{
		DogID:                f.dog.ID,
		BookedByID:           f.owner.ID,
		Date:                 "2026-09-01",
		ExpectedCheckInTime:  "08:00:00",
		ExpectedCheckOutTime: "17:00:00",
	})
	assert.ErrorIs(t, err, ErrBookingConflict)
}

func TestCreateBookingAfterDelete(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	first := f.createBooking(t, "2026-09-01")
	require.NoError(t, f.usecase.DeleteBooking(ctx, first.ID))

	// Deleting frees the date
	f.createBooking(t, "2026-09-01")
}

func TestUpdateBookingMergePatch(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	created := f.createBooking(t, "2026-09-01")

	notes := "bring the squeaky toy"
	resp, err := f.usecase.UpdateBooking(ctx, created.ID, &dto.UpdateBookingRequest{
		Notes: &notes,
	})
	require.NoError(t, err)

	// Only notes changed
	assert.Equal(t, "bring the squeaky toy", resp.Notes)
	assert.Equal(t, "2026-09-01", resp.Date)
	assert.Equal(t, "08:00:00", resp.ExpectedCheckInTime)
	assert.Equal(t, "17:00:00", resp.ExpectedCheckOutTime)
	assert.Equal(t, string(entity.BookingStatusConfirmed), resp.Status)

	newDate := "2026-09-03"
	newIn := "07:30:00"
	resp, err = f.usecase.UpdateBooking(ctx, created.ID, &dto.UpdateBookingRequest{
		Date:                &newDate,
		ExpectedCheckInTime: &newIn,
	})
	require.NoError(t, err)
	assert.Equal(t, "2026-09-03", resp.Date)
	assert.Equal(t, "07:30:00", resp.ExpectedCheckInTime)
	assert.Equal(t, "bring the squeaky toy", resp.Notes)
}

func TestUpdateBookingErrors(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	created := f.createBooking(t, "2026-09-01")

	badDate := "next tuesday"
	_, err := f.usecase.UpdateBooking(ctx, created.ID, &dto.UpdateBookingRequest{Date: &badDate})
	assert.ErrorIs(t, err, ErrInvalidDateFormat)

	badTime := "noon"
	_, err = f.usecase.UpdateBooking(ctx, created.ID, &dto.UpdateBookingRequest{ExpectedCheckOutTime: &badTime})
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)

	_, err = f.usecase.UpdateBooking(ctx, uuid.New(), &dto.UpdateBookingRequest{})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestUpdateBookingDoesNotClobberConcurrentTransition(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	created := f.createBooking(t, "2026-09-01")

	// A check-in commits between the update's read and its write
	f.bookingRepo.beforeApplyTransition = func() {
		f.bookingRepo.beforeApplyTransition = nil
		arrived := "08:03:00"
		stored := f.bookingRepo.bookings[created.ID]
		stored.Status = entity.BookingStatusCheckedIn
		stored.ActualCheckInTime = &arrived
	}

	notes := "late drop-off"
	_, err := f.usecase.UpdateBooking(ctx, created.ID, &dto.UpdateBookingRequest{Notes: &notes})

	var transitionErr *entity.InvalidTransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, entity.BookingStatusCheckedIn, transitionErr.Status)

	// The committed check-in survives untouched
	stored := f.bookingRepo.bookings[created.ID]
	assert.Equal(t, entity.BookingStatusCheckedIn, stored.Status)
	require.NotNil(t, stored.ActualCheckInTime)
	assert.Equal(t, "08:03:00", *stored.ActualCheckInTime)
	assert.NotEqual(t, "late drop-off", stored.Notes)
}

func TestUpdateBookingPreservesLifecycleFields(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	created := f.createBooking(t, "2026-09-01")
	checkedIn, err := f.usecase.CheckIn(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, checkedIn.ActualCheckInTime)

	notes := "picked up early"
	resp, err := f.usecase.UpdateBooking(ctx, created.ID, &dto.UpdateBookingRequest{Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, string(entity.BookingStatusCheckedIn), resp.Status)
	require.NotNil(t, resp.ActualCheckInTime)
	assert.Equal(t, *checkedIn.ActualCheckInTime, *resp.ActualCheckInTime)

	stored := f.bookingRepo.bookings[created.ID]
	assert.Equal(t, entity.BookingStatusCheckedIn, stored.Status)
	require.NotNil(t, stored.ActualCheckInTime)
	assert.Equal(t, "picked up early", stored.Notes)
}

func TestUpdateBookingAdvancesUpdatedAt(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	created := f.createBooking(t, "2026-09-01")
	before := *f.bookingRepo.bookings[created.ID]

	time.Sleep(time.Millisecond)
	notes := "new collar"
	resp, err := f.usecase.UpdateBooking(ctx, created.ID, &dto.UpdateBookingRequest{Notes: &notes})
	require.NoError(t, err)

	assert.True(t, resp.UpdatedAt.After(before.UpdatedAt))
	afterUpdate := *f.bookingRepo.bookings[created.ID]
	assert.True(t, afterUpdate.UpdatedAt.After(before.UpdatedAt))
	assert.Equal(t, before.CreatedAt, afterUpdate.CreatedAt)

	// Lifecycle transitions advance it as well
	time.Sleep(time.Millisecond)
	_, err = f.usecase.CheckIn(ctx, created.ID)
	require.NoError(t, err)
	afterCheckIn := *f.bookingRepo.bookings[created.ID]
	assert.True(t, afterCheckIn.UpdatedAt.After(afterUpdate.UpdatedAt))
	assert.Equal(t, before.CreatedAt, afterCheckIn.CreatedAt)
}

func TestBookingLifecycle(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	created := f.createBooking(t, "2026-09-01")

	checkedIn, err := f.usecase.CheckIn(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.BookingStatusCheckedIn), checkedIn.Status)
	require.NotNil(t, checkedIn.ActualCheckInTime)

	// Cancel after arrival is rejected
	_, err = f.usecase.CancelBooking(ctx, created.ID)
	var transitionErr *entity.InvalidTransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, entity.BookingStatusCheckedIn, transitionErr.Status)

	checkedOut, err := f.usecase.CheckOut(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.BookingStatusCheckedOut), checkedOut.Status)
	require.NotNil(t, checkedOut.ActualCheckOutTime)

	// Terminal: no further transitions
	_, err = f.usecase.CheckIn(ctx, created.ID)
	assert.ErrorAs(t, err, &transitionErr)
	_, err = f.usecase.CheckOut(ctx, created.ID)
	assert.ErrorAs(t, err, &transitionErr)
	_, err = f.usecase.CancelBooking(ctx, created.ID)
	assert.ErrorAs(t, err, &transitionErr)
}

func TestCancelBooking(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	created := f.createBooking(t, "2026-09-01")

	cancelled, err := f.usecase.CancelBooking(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.BookingStatusCancelled), cancelled.Status)

	// Check-in on a cancelled booking is rejected
	_, err = f.usecase.CheckIn(ctx, created.ID)
	var transitionErr *entity.InvalidTransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, entity.BookingStatusCancelled, transitionErr.Status)
}

func TestTransitionLostRace(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	created := f.createBooking(t, "2026-09-01")

	// Another caller cancels between this caller's read and write
	stored := f.bookingRepo.bookings[created.ID]
	stored.Status = entity.BookingStatusCancelled

	_, err := f.usecase.CheckIn(ctx, created.ID)
	var transitionErr *entity.InvalidTransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, entity.BookingStatusCancelled, transitionErr.Status)
}

func TestDeleteBooking(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	created := f.createBooking(t, "2026-09-01")

	require.NoError(t, f.usecase.DeleteBooking(ctx, created.ID))

	// Deleted bookings are invisible everywhere
	_, err := f.usecase.GetBooking(ctx, created.ID)
	assert.ErrorIs(t, err, ErrBookingNotFound)

	list, err := f.usecase.GetAllBookings(ctx)
	require.NoError(t, err)
	assert.Zero(t, list.Total)

	_, err = f.usecase.CheckIn(ctx, created.ID)
	assert.ErrorIs(t, err, ErrBookingNotFound)

	// Deleting again reports not found
	assert.ErrorIs(t, f.usecase.DeleteBooking(ctx, created.ID), ErrBookingNotFound)
	assert.ErrorIs(t, f.usecase.DeleteBooking(ctx, uuid.New()), ErrBookingNotFound)
}

func TestGetBookingsFilters(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	f.createBooking(t, "2026-09-01")
	second := f.createBooking(t, "2026-09-02")
	_, err := f.usecase.CancelBooking(ctx, second.ID)
	require.NoError(t, err)

	byDate, err := f.usecase.GetBookingsByDate(ctx, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 1, byDate.Total)

	byDog, err := f.usecase.GetBookingsByDog(ctx, f.dog.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, byDog.Total)

	byUser, err := f.usecase.GetBookingsByUser(ctx, f.owner.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, byUser.Total)

	byStatus, err := f.usecase.GetBookingsByStatus(ctx, entity.BookingStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, 1, byStatus.Total)

	_, err = f.usecase.GetBookingsByDog(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrDogNotFound)
	_, err = f.usecase.GetBookingsByUser(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}
