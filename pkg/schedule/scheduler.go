// Package schedule coalesces redraw requests.
//
// Any number of Invalidate calls between two redraws collapse into one
// pending redraw. The run loop waits on C, or polls Take, and repaints once.
package schedule

import (
	"sync"
	"sync/atomic"
	"time"
)

// Scheduler collects invalidations. It is safe for concurrent use and never
// blocks the caller.
type Scheduler struct {
	pending atomic.Bool
	ch      chan struct{}

	invalidations atomic.Uint64
	redraws       atomic.Uint64
}

// New creates an idle scheduler.
func New() *Scheduler {
	return &Scheduler{ch: make(chan struct{}, 1)}
}

// Invalidate requests a redraw. Calls made while a redraw is already
// pending are absorbed.
func (s *Scheduler) Invalidate() {
	s.invalidations.Add(1)
	if !s.pending.CompareAndSwap(false, true) {
		return
	}
	select {
	case s.ch <- struct{}{}:
	default:
		// Already signalled
	}
}

// C receives a value when a redraw becomes pending. After receiving, call
// Take to claim it.
func (s *Scheduler) C() <-chan struct{} {
	return s.ch
}

// Take claims the pending redraw. It returns false when none is pending,
// which happens when the signal on C was already claimed by an earlier Take.
func (s *Scheduler) Take() bool {
	// Drain before clearing pending. An Invalidate landing in between is
	// absorbed by this redraw instead of leaving a stale signal on C.
	select {
	case <-s.ch:
	default:
	}
	if !s.pending.CompareAndSwap(true, false) {
		return false
	}
	s.redraws.Add(1)
	return true
}

// Pending reports whether a redraw is waiting.
func (s *Scheduler) Pending() bool {
	return s.pending.Load()
}

// Stats is a point-in-time copy of the scheduler counters.
type Stats struct {
	Invalidations uint64 `json:"invalidations"`
	Redraws       uint64 `json:"redraws"`
}

// Stats returns how many invalidations were requested and how many
// redraws were taken.
func (s *Scheduler) Stats() Stats {
	return Stats{
		Invalidations: s.invalidations.Load(),
		Redraws:       s.redraws.Load(),
	}
}

// Pacer limits redraws to a maximum frame rate.
type Pacer struct {
	interval time.Duration
	last     time.Time
}

// NewPacer returns a pacer for fps frames per second. fps <= 0 disables
// pacing.
func NewPacer(fps int) *Pacer {
	p := &Pacer{}
	if fps > 0 {
		p.interval = time.Second / time.Duration(fps)
	}
	return p
}

// Delay returns how long to wait at now before the next frame may be drawn.
func (p *Pacer) Delay(now time.Time) time.Duration {
	if p.interval == 0 || p.last.IsZero() {
		return 0
	}
	next := p.last.Add(p.interval)
	if !now.Before(next) {
		return 0
	}
	return next.Sub(now)
}

// Mark records that a frame was drawn at now.
func (p *Pacer) Mark(now time.Time) {
	p.last = now
}

// Interval returns the minimum time between frames.
func (p *Pacer) Interval() time.Duration {
	return p.interval
}

// Debouncer delivers a single signal on C after Trigger has not been called
// for the configured quiet period.
type Debouncer struct {
	delay time.Duration

	mu    sync.Mutex
	timer *time.Timer
	ch    chan struct{}
}

// NewDebouncer creates a debouncer with the given quiet period. A zero
// delay fires on every Trigger.
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay, ch: make(chan struct{}, 1)}
}

// Trigger restarts the quiet period.
func (d *Debouncer) Trigger() {
	if d.delay <= 0 {
		d.fire()
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fire)
}

func (d *Debouncer) fire() {
	select {
	case d.ch <- struct{}{}:
	default:
	}
}

// C receives once per quiet period.
func (d *Debouncer) C() <-chan struct{} {
	return d.ch
}

// Stop cancels a pending fire.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
