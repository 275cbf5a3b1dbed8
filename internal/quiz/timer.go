package quiz

import (
	"sync"
	"sync/atomic"
	"time"
)

// TickInterval is the countdown resolution.
const TickInterval = time.Second

// Scheduler runs fn once per interval until the returned stop func is called.
// After stop returns, fn must not run again.
type Scheduler interface {
	Every(interval time.Duration, fn func()) (stop func())
}

// Timer is the session countdown. In unlimited mode it does not tick and
// bonuses are ignored.
type Timer struct {
	sched     Scheduler
	left      int
	unlimited bool
	running   bool
	expired   bool
	stop      func()
	onExpire  func()
}

// NewTimer returns an idle timer with seconds on the clock.
func NewTimer(sched Scheduler, seconds int, unlimited bool) *Timer {
	return &Timer{sched: sched, left: seconds, unlimited: unlimited}
}

// Start begins the countdown. onExpire runs once when the clock reaches zero.
func (t *Timer) Start(onExpire func()) {
	if t.running || t.expired {
		return
	}
	t.running = true
	t.onExpire = onExpire
	t.schedule()
}

// Cancel stops the countdown for good. It is safe to call more than once.
func (t *Timer) Cancel() {
	t.running = false
	t.unschedule()
}

// SetUnlimited switches modes. Going unlimited suspends the countdown without
// touching the remaining seconds; going limited resumes it.
func (t *Timer) SetUnlimited(unlimited bool) {
	if t.unlimited == unlimited {
		return
	}
	t.unlimited = unlimited
	if unlimited {
		t.unschedule()
		return
	}
	t.schedule()
}

// AddBonus extends a limited countdown. It reports whether the bonus applied.
func (t *Timer) AddBonus(seconds int) bool {
	if t.unlimited || t.expired || seconds <= 0 {
		return false
	}
	t.left += seconds
	return true
}

// SecondsLeft returns the remaining seconds.
func (t *Timer) SecondsLeft() int { return t.left }

// Unlimited reports whether the countdown is disabled.
func (t *Timer) Unlimited() bool { return t.unlimited }

// Ticking reports whether a tick callback is currently scheduled.
func (t *Timer) Ticking() bool { return t.stop != nil }

func (t *Timer) schedule() {
	if !t.running || t.unlimited || t.expired || t.stop != nil || t.sched == nil {
		return
	}
	t.stop = t.sched.Every(TickInterval, t.tick)
}

func (t *Timer) unschedule() {
	if t.stop == nil {
		return
	}
	t.stop()
	t.stop = nil
}

func (t *Timer) tick() {
	if !t.running || t.unlimited || t.expired {
		return
	}
	if t.left > 0 {
		t.left--
	}
	if t.left > 0 {
		return
	}
	t.expired = true
	t.Cancel()
	if t.onExpire != nil {
		t.onExpire()
	}
}

// TickerScheduler schedules with time.Ticker. Each tick is handed to Post so
// the owner can run it on its own goroutine; when Post is nil fn runs on the
// ticker goroutine.
type TickerScheduler struct {
	Post func(fn func())
}

// Every implements Scheduler.
func (s TickerScheduler) Every(interval time.Duration, fn func()) func() {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})
	var stopped atomic.Bool
	guarded := func() {
		if stopped.Load() {
			return
		}
		fn()
	}
	go func() {
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if s.Post != nil {
					s.Post(guarded)
				} else {
					guarded()
				}
			}
		}
	}()
	var once sync.Once
	return func() {
		once.Do(func() {
			stopped.Store(true)
			ticker.Stop()
			close(done)
		})
	}
}

// ManualScheduler fires ticks only when Advance is called.
type ManualScheduler struct {
	next  int
	tasks map[int]func()
}

// NewManualScheduler returns an empty ManualScheduler.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{tasks: map[int]func(){}}
}

// Every implements Scheduler. The interval is ignored.
func (s *ManualScheduler) Every(_ time.Duration, fn func()) func() {
	id := s.next
	s.next++
	s.tasks[id] = fn
	return func() { delete(s.tasks, id) }
}

// Advance fires every live task n times, in registration order.
func (s *ManualScheduler) Advance(n int) {
	for i := 0; i < n; i++ {
		for id := 0; id < s.next; id++ {
			if fn, ok := s.tasks[id]; ok {
				fn()
			}
		}
	}
}

// Pending returns the number of live tasks.
func (s *ManualScheduler) Pending() int {
	return len(s.tasks)
}
