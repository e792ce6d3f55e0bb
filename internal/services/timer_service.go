package services

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"tike-storefront/internal/storage"
	"tike-storefront/internal/utils"
)

const timerKeyPrefix = "paymentTimer_"

// TimerService owns the per-booking payment countdown. The absolute end
// timestamp persisted alongside the counter is the source of truth: a page
// reload recomputes the remaining seconds from it, so reopening the tab
// never grants extra time. The counting-down value is persisted each tick
// as a redundant convenience record only.
type TimerService struct {
	Store    storage.KV
	Clock    Clock
	Deadline time.Duration

	// OnExpire is raised exactly once per booking when the countdown hits
	// zero or is found already expired on load.
	OnExpire func(bookingID string)

	mu      sync.Mutex
	running map[string]context.CancelFunc
}

func NewTimerService(store storage.KV, clock Clock, deadline time.Duration) *TimerService {
	if deadline <= 0 {
		deadline = 60 * time.Second
	}
	return &TimerService{
		Store:    store,
		Clock:    clock,
		Deadline: deadline,
		running:  map[string]context.CancelFunc{},
	}
}

func timerKey(bookingID string) string   { return timerKeyPrefix + bookingID }
func endTimeKey(bookingID string) string { return timerKey(bookingID) + "_endTime" }

// Initialize loads or creates the persisted countdown for a booking.
// A fresh booking gets the full deadline; an existing record yields the
// recomputed remainder, and an already-elapsed record is deleted and
// reported as expired.
func (s *TimerService) Initialize(ctx context.Context, bookingID string) (remaining int, expired bool, err error) {
	raw, err := s.Store.Get(ctx, endTimeKey(bookingID))
	if errors.Is(err, storage.ErrNotFound) {
		remaining = int(s.Deadline / time.Second)
		endTime := s.Clock.Now().Unix() + int64(remaining)
		if err := s.Store.Set(ctx, timerKey(bookingID), strconv.Itoa(remaining)); err != nil {
			return 0, false, err
		}
		if err := s.Store.Set(ctx, endTimeKey(bookingID), strconv.FormatInt(endTime, 10)); err != nil {
			return 0, false, err
		}
		return remaining, false, nil
	}
	if err != nil {
		return 0, false, err
	}

	endTime, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		// Corrupt record; drop it and start over on the next call.
		_ = s.Store.Delete(ctx, timerKey(bookingID), endTimeKey(bookingID))
		return 0, false, err
	}

	remaining = int(endTime - s.Clock.Now().Unix())
	if remaining <= 0 {
		if err := s.Store.Delete(ctx, timerKey(bookingID), endTimeKey(bookingID)); err != nil {
			return 0, true, err
		}
		return 0, true, nil
	}
	return remaining, false, nil
}

// Tick advances the countdown by one second. The remaining counter is
// persisted; the end timestamp stays untouched as the anchor. Reaching zero
// deletes both records and reports expiry. A missing record means the timer
// was cleared elsewhere and the loop should stop without raising expiry.
func (s *TimerService) Tick(ctx context.Context, bookingID string, prev int) (remaining int, expired bool, err error) {
	if _, err := s.Store.Get(ctx, endTimeKey(bookingID)); err != nil {
		return 0, false, err
	}

	remaining = prev - 1
	if err := s.Store.Set(ctx, timerKey(bookingID), strconv.Itoa(remaining)); err != nil {
		return 0, false, err
	}
	if remaining <= 0 {
		if err := s.Store.Delete(ctx, timerKey(bookingID), endTimeKey(bookingID)); err != nil {
			return 0, true, err
		}
		return 0, true, nil
	}
	return remaining, false, nil
}

// Remaining recomputes the countdown from the persisted end timestamp
// without mutating anything. Missing record reports zero.
func (s *TimerService) Remaining(ctx context.Context, bookingID string) int {
	raw, err := s.Store.Get(ctx, endTimeKey(bookingID))
	if err != nil {
		return 0
	}
	endTime, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0
	}
	remaining := int(endTime - s.Clock.Now().Unix())
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Clear deletes both persisted records and stops any running tick loop.
// Idempotent; safe to call on bookings that never had a timer.
func (s *TimerService) Clear(ctx context.Context, bookingID string) error {
	s.mu.Lock()
	if cancel, ok := s.running[bookingID]; ok {
		cancel()
		delete(s.running, bookingID)
	}
	s.mu.Unlock()
	return s.Store.Delete(ctx, timerKey(bookingID), endTimeKey(bookingID))
}

// Begin initializes the countdown and makes sure exactly one tick loop is
// running for the booking. Repeated calls (page remounts, state polls) are
// cheap and never create duplicate timers: the persisted record is the
// single source of truth.
func (s *TimerService) Begin(ctx context.Context, bookingID string) (int, error) {
	remaining, expired, err := s.Initialize(ctx, bookingID)
	if err != nil {
		return 0, err
	}
	if expired {
		s.fireExpire(bookingID)
		return 0, nil
	}
	if remaining > 0 {
		s.ensureLoop(bookingID, remaining)
	}
	return remaining, nil
}

func (s *TimerService) ensureLoop(bookingID string, remaining int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.running[bookingID]; ok {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.running[bookingID] = cancel
	go s.loop(ctx, bookingID, remaining)
}

func (s *TimerService) loop(ctx context.Context, bookingID string, remaining int) {
	defer func() {
		s.mu.Lock()
		if cancel, ok := s.running[bookingID]; ok {
			cancel()
			delete(s.running, bookingID)
		}
		s.mu.Unlock()
	}()

	for remaining > 0 {
		if !s.Clock.Sleep(ctx, time.Second) {
			return
		}
		var expired bool
		var err error
		remaining, expired, err = s.Tick(ctx, bookingID, remaining)
		if err != nil {
			// Cleared elsewhere (success or lockout), or the store is
			// unreachable; either way the loop has nothing left to do.
			if !errors.Is(err, storage.ErrNotFound) {
				utils.LogEvent("", "timer", "tick", "stopping countdown for "+bookingID+": "+err.Error())
			}
			return
		}
		if expired {
			s.fireExpire(bookingID)
			return
		}
	}
}

func (s *TimerService) fireExpire(bookingID string) {
	if s.OnExpire != nil {
		s.OnExpire(bookingID)
	}
}
