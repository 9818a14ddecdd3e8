package draft

import (
	"sync"
	"time"
)

// DefaultDelay is the quiet period after the last edit before a draft is
// written.
const DefaultDelay = 800 * time.Millisecond

// Handle cancels a scheduled call. *time.Timer satisfies it.
type Handle interface {
	Stop() bool
}

// AfterFunc schedules fn after d. time.AfterFunc is the production scheduler;
// tests inject a manual one.
type AfterFunc func(d time.Duration, fn func()) Handle

// SaverOption configures a Saver.
type SaverOption func(*Saver)

// WithDelay overrides DefaultDelay.
func WithDelay(d time.Duration) SaverOption {
	return func(s *Saver) {
		if d > 0 {
			s.delay = d
		}
	}
}

// WithScheduler replaces time.AfterFunc.
func WithScheduler(after AfterFunc) SaverOption {
	return func(s *Saver) {
		if after != nil {
			s.after = after
		}
	}
}

// WithLocker makes every save run while holding l. Owners that guard their
// state with l must call Schedule and Cancel with l held and Flush without it;
// a timer that fires concurrently with Cancel then observes the cancellation
// and does nothing.
func WithLocker(l sync.Locker) SaverOption {
	return func(s *Saver) {
		if l != nil {
			s.exec = l
		}
	}
}

// Saver debounces draft writes. At most one save is pending; scheduling again
// replaces it.
type Saver struct {
	save  func()
	delay time.Duration
	after AfterFunc
	exec  sync.Locker

	mu      sync.Mutex
	pending Handle
	gen     uint64
	stopped bool
}

// NewSaver returns a saver that calls save once the debounce window elapses.
func NewSaver(save func(), opts ...SaverOption) *Saver {
	s := &Saver{
		save:  save,
		delay: DefaultDelay,
		after: func(d time.Duration, fn func()) Handle { return time.AfterFunc(d, fn) },
		exec:  &sync.Mutex{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Delay returns the debounce window.
func (s *Saver) Delay() time.Duration { return s.delay }

// Schedule cancels any pending save and schedules a new one.
func (s *Saver) Schedule() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	s.cancelLocked()
	gen := s.gen
	s.pending = s.after(s.delay, func() { s.fire(gen) })
}

// Cancel drops the pending save, reporting whether there was one.
func (s *Saver) Cancel() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancelLocked()
}

// Pending reports whether a save is scheduled.
func (s *Saver) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending != nil
}

// Flush runs a pending save immediately on the calling goroutine. It reports
// whether a save ran.
func (s *Saver) Flush() bool {
	s.exec.Lock()
	defer s.exec.Unlock()

	s.mu.Lock()
	if !s.cancelLocked() {
		s.mu.Unlock()
		return false
	}
	s.mu.Unlock()

	s.save()
	return true
}

// Stop cancels the pending save and ignores later calls to Schedule.
func (s *Saver) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked()
	s.stopped = true
}

func (s *Saver) cancelLocked() bool {
	s.gen++
	if s.pending == nil {
		return false
	}
	s.pending.Stop()
	s.pending = nil
	return true
}

func (s *Saver) fire(gen uint64) {
	s.exec.Lock()
	defer s.exec.Unlock()

	s.mu.Lock()
	if gen != s.gen || s.pending == nil {
		s.mu.Unlock()
		return
	}
	s.pending = nil
	s.mu.Unlock()

	s.save()
}
