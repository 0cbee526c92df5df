package service

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	// Interval for cleaning up stale key mutexes
	lockCleanupInterval = 10 * time.Minute

	// How long a key mutex must be unused before cleanup
	lockStaleThreshold = 10 * time.Minute
)

// BookingLockService serializes booking creation per (dog, date) key so the
// conflict check and the insert behave as one atomic unit. Without it, two
// concurrent creations for the same dog and day could both pass the
// existence check before either row is committed.
type BookingLockService struct {
	log *logrus.Logger

	// Per-key mutex; keys are pruned when unused
	keyMu sync.Map // map[string]*lockWithTimestamp

	stopChan chan struct{}
	wg       sync.WaitGroup
	stopped  atomic.Bool
}

// lockWithTimestamp tracks mutex usage for cleanup
type lockWithTimestamp struct {
	mu       sync.Mutex
	lastUsed atomic.Int64 // Unix timestamp
}

// NewBookingLockService creates the lock service and starts its background
// cleanup goroutine. Call Stop() during graceful shutdown.
func NewBookingLockService(log *logrus.Logger) *BookingLockService {
	svc := &BookingLockService{
		log:      log,
		stopChan: make(chan struct{}),
	}

	svc.wg.Add(1)
	go svc.cleanupLoop()

	return svc
}

// Stop shuts the service down. Safe to call multiple times.
func (s *BookingLockService) Stop() {
	if s.stopped.CompareAndSwap(false, true) {
		close(s.stopChan)
		s.wg.Wait()
		s.log.Info("BookingLockService stopped")
	}
}

// Lock acquires the mutex for the (dog, date) key and returns its unlock
// function.
func (s *BookingLockService) Lock(dogID uuid.UUID, date time.Time) func() {
	key := dogID.String() + "|" + date.Format("2006-01-02")

	for {
		actual, _ := s.keyMu.LoadOrStore(key, &lockWithTimestamp{})
		lock := actual.(*lockWithTimestamp)
		lock.lastUsed.Store(time.Now().Unix())

		lock.mu.Lock()

		// Cleanup may have pruned this mutex between the load and the
		// acquire; holding a mutex the map no longer points at would let
		// a second caller mint a fresh one for the same key. Retry
		// against whatever the map holds now.
		if current, ok := s.keyMu.Load(key); ok && current == actual {
			return func() {
				lock.lastUsed.Store(time.Now().Unix())
				lock.mu.Unlock()
			}
		}
		lock.mu.Unlock()
	}
}

// cleanupLoop prunes mutexes that have not been touched recently, so the
// map does not grow with every dog/date pair ever booked.
func (s *BookingLockService) cleanupLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(lockCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.cleanupStale()
		}
	}
}

func (s *BookingLockService) cleanupStale() {
	cutoff := time.Now().Add(-lockStaleThreshold).Unix()
	removed := 0

	s.keyMu.Range(func(key, value interface{}) bool {
		lock := value.(*lockWithTimestamp)
		if lock.lastUsed.Load() < cutoff && lock.mu.TryLock() {
			s.keyMu.Delete(key)
			lock.mu.Unlock()
			removed++
		}
		return true
	})

	if removed > 0 {
		s.log.Infof("Cleaned up %d stale booking locks", removed)
	}
}
