// Package scheduler coalesces render requests into at most one render per
// display frame and reports a debounced busy/idle signal.
//
// The host drives it: RequestRender may be called any number of times
// between frames, and Frame is called once per display refresh. A
// Scheduler is not safe for concurrent use; call it from the UI loop only.
package scheduler

import (
	"time"

	"github.com/san-kum/fractview/internal/logx"
)

const (
	DefaultIdleDelay   = 80 * time.Millisecond
	DefaultHistorySize = 64
)

type Options struct {
	// SettleFrames is the number of frames to wait between the busy signal
	// and the render, giving the host a chance to paint the indicator.
	SettleFrames int
	// IdleDelay is how long the scheduler must stay without work before
	// reporting idle. Zero reports idle as soon as the last render ends.
	IdleDelay time.Duration
	// HistorySize bounds the render durations kept by Stats.
	HistorySize int
}

func DefaultOptions() Options {
	return Options{
		SettleFrames: 1,
		IdleDelay:    DefaultIdleDelay,
		HistorySize:  DefaultHistorySize,
	}
}

type Stats struct {
	Renders int
	Last    time.Duration
	History []time.Duration
}

type Scheduler struct {
	render func()
	opts   Options
	clock  func() time.Time

	pending bool
	waited  int

	busyDepth int
	busy      bool
	idleArmed bool
	idleSince time.Time
	observers []func(bool)

	stats Stats
}

// New returns an idle scheduler that calls render for every coalesced
// request.
func New(render func(), opts Options) *Scheduler {
	if opts.SettleFrames < 0 {
		opts.SettleFrames = 0
	}
	if opts.IdleDelay < 0 {
		opts.IdleDelay = 0
	}
	if opts.HistorySize <= 0 {
		opts.HistorySize = DefaultHistorySize
	}
	return &Scheduler{
		render: render,
		opts:   opts,
		clock:  time.Now,
	}
}

// OnBusy registers fn to be called on every busy/idle transition.
func (s *Scheduler) OnBusy(fn func(busy bool)) {
	s.observers = append(s.observers, fn)
}

func (s *Scheduler) Pending() bool { return s.pending }
func (s *Scheduler) Busy() bool    { return s.busy }

// RequestRender asks for a render at an upcoming frame. Calls made while a
// render is already pending are absorbed into it.
func (s *Scheduler) RequestRender() {
	if s.pending {
		return
	}
	s.pending = true
	s.waited = 0
	s.setBusy(true, time.Time{})
}

// Frame marks a display refresh at time now. It runs the pending render
// once enough frames have settled and delivers a due idle signal.
func (s *Scheduler) Frame(now time.Time) {
	if s.pending {
		if s.waited >= s.opts.SettleFrames {
			s.performRender(now)
		} else {
			s.waited++
		}
	}
	if s.idleArmed && s.busyDepth == 0 && now.Sub(s.idleSince) >= s.opts.IdleDelay {
		s.idleArmed = false
		s.notify(false)
	}
}

// PerformRender runs the render immediately, clearing any pending request.
func (s *Scheduler) PerformRender() {
	s.performRender(s.clock())
}

func (s *Scheduler) performRender(now time.Time) {
	s.pending = false
	s.waited = 0

	start := time.Now()
	if s.render != nil {
		s.render()
	}
	elapsed := time.Since(start)
	s.record(elapsed)
	logx.Logger().Debug("render complete", "duration", elapsed, "renders", s.stats.Renders)

	// the idle debounce starts when the render ends, not at the frame
	s.setBusy(false, now.Add(elapsed))
}

func (s *Scheduler) setBusy(on bool, now time.Time) {
	if on {
		s.busyDepth++
		s.idleArmed = false
		if !s.busy {
			s.notify(true)
		}
		return
	}

	s.busyDepth = max(0, s.busyDepth-1)
	if s.busyDepth > 0 {
		return
	}
	if s.opts.IdleDelay == 0 {
		s.notify(false)
		return
	}
	s.idleArmed = true
	s.idleSince = now
}

func (s *Scheduler) notify(busy bool) {
	if s.busy == busy {
		return
	}
	s.busy = busy
	for _, fn := range s.observers {
		fn(busy)
	}
}

func (s *Scheduler) record(d time.Duration) {
	s.stats.Renders++
	s.stats.Last = d
	s.stats.History = append(s.stats.History, d)
	if over := len(s.stats.History) - s.opts.HistorySize; over > 0 {
		s.stats.History = append(s.stats.History[:0], s.stats.History[over:]...)
	}
}

// Stats returns a snapshot of the render counters.
func (s *Scheduler) Stats() Stats {
	st := s.stats
	st.History = append([]time.Duration(nil), s.stats.History...)
	return st
}
