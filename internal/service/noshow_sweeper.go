package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go-doggy-daycare/internal/domain/entity"
	"go-doggy-daycare/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

// Timeout for a single sweep run against the database
const sweepRunTimeout = 2 * time.Minute

// NoShowSweeper is the nightly reconciliation worker. Once per calendar day
// it demotes stale CONFIRMED bookings to NO_SHOW: past-dated, never checked
// in, not deleted. Bookings with a recorded check-in are left alone even
// when past-dated (a CHECKED_IN stay spanning midnight is closed manually).
//
// The sweep is idempotent: a booking moved to NO_SHOW no longer matches the
// selection predicate, so rerunning the same day is a no-op.
type NoShowSweeper struct {
	bookingRepo repository.BookingRepository
	log         *logrus.Logger

	// now is the clock used to decide day boundaries; injectable so tests
	// can simulate days passing.
	now func() time.Time

	// running guards against overlapping runs (timer vs. manual trigger)
	running atomic.Bool

	stopChan chan struct{}
	wg       sync.WaitGroup
	stopped  atomic.Bool
}

// NewNoShowSweeper creates the sweeper. Call Start() to begin the nightly
// schedule, or RunOnce() to trigger a single sweep.
func NewNoShowSweeper(bookingRepo repository.BookingRepository, log *logrus.Logger) *NoShowSweeper {
	return &NoShowSweeper{
		bookingRepo: bookingRepo,
		log:         log,
		now:         time.Now,
		stopChan:    make(chan struct{}),
	}
}

// Start launches the background loop that fires at every local midnight.
func (s *NoShowSweeper) Start() {
	s.wg.Add(1)
	go s.loop()
	s.log.Info("No-show sweeper started")
}

// Stop shuts the sweeper down. Safe to call multiple times.
func (s *NoShowSweeper) Stop() {
	if s.stopped.CompareAndSwap(false, true) {
		close(s.stopChan)
		s.wg.Wait()
		s.log.Info("No-show sweeper stopped")
	}
}

func (s *NoShowSweeper) loop() {
	defer s.wg.Done()

	for {
		timer := time.NewTimer(s.untilNextMidnight())
		select {
		case <-s.stopChan:
			timer.Stop()
			return
		case <-timer.C:
			ctx, cancel := context.WithTimeout(context.Background(), sweepRunTimeout)
			if _, err := s.RunOnce(ctx); err != nil {
				s.log.Warnf("No-show sweep failed: %+v", err)
			}
			cancel()
		}
	}
}

func (s *NoShowSweeper) untilNextMidnight() time.Duration {
	now := s.now()
	next := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
	return next.Sub(now)
}

// RunOnce executes a single sweep and returns how many bookings were
// demoted. A booking that fails to persist is logged and skipped; one bad
// record never aborts the batch. Returns immediately if a run is already
// in flight.
func (s *NoShowSweeper) RunOnce(ctx context.Context) (int, error) {
	if !s.running.CompareAndSwap(false, true) {
		s.log.Warn("No-show sweep already running, skipping")
		return 0, nil
	}
	defer s.running.Store(false)

	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	candidates, err := s.bookingRepo.FindNoShowCandidates(ctx, today)
	if err != nil {
		return 0, err
	}
	if len(candidates) == 0 {
		return 0, nil
	}

	swept := 0
	for i := range candidates {
		booking := &candidates[i]

		if err := booking.MarkNoShow(); err != nil {
			// Shouldn't happen given the selection predicate
			s.log.Warnf("Skipping booking %s: %+v", booking.ID, err)
			continue
		}

		rows, err := s.bookingRepo.ApplyTransition(ctx, booking.ID, entity.BookingStatusConfirmed, map[string]interface{}{
			"status":     entity.BookingStatusNoShow,
			"updated_at": now,
		})
		if err != nil {
			s.log.Warnf("Failed to mark booking %s as no-show, skipping: %+v", booking.ID, err)
			continue
		}
		if rows == 0 {
			// Checked in or cancelled between select and update
			s.log.Infof("Booking %s changed status during sweep, skipping", booking.ID)
			continue
		}
		swept++
	}

	s.log.Infof("No-show sweep complete: %d of %d candidates marked", swept, len(candidates))
	return swept, nil
}
