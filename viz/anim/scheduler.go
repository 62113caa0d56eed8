package anim

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultFrameInterval is the nominal frame budget of the shared clock,
// roughly 60 frames per second.
const DefaultFrameInterval = 16 * time.Millisecond

// Callback receives the eased progress, the raw progress, and the elapsed
// time on every clock tick an animation is advanced.
type Callback func(eased, raw float64, elapsed time.Duration)

// AddOptions configures one animation registration.
type AddOptions struct {
	// Duration is the animation length. A non-positive duration completes
	// on the first tick.
	Duration time.Duration

	// Easing selects the progress curve. Empty means linear.
	Easing Easing

	// Loop restarts the animation from zero on completion instead of
	// removing it. A looping animation never fires OnComplete on its own;
	// only explicit removal does.
	Loop bool

	// OnComplete fires when the animation is removed, whether by natural
	// completion or by Remove.
	OnComplete func()
}

// Animation is one registered timed callback. It is owned by the scheduler
// for its lifetime; the ID is the caller's handle for all control
// operations.
type Animation struct {
	ID string

	sched      *Scheduler
	callback   Callback
	start      time.Time
	duration   time.Duration
	easing     Easing
	loop       bool
	onComplete func()
	paused     bool
	progress   float64
}

// Progress returns the raw progress in [0,1] as of the last tick. Safe to
// poll from any goroutine while the clock is running.
func (a *Animation) Progress() float64 {
	a.sched.mu.Lock()
	defer a.sched.mu.Unlock()
	return a.progress
}

// Scheduler is a registry of active animations driven by one shared clock.
//
// All registered animations are advanced exactly once per tick, in
// registration order. An animation added from inside a callback is not
// advanced until the next tick. The clock starts itself on the first Add
// and stops itself when the registry empties. One failing callback is
// removed and logged; it never halts the clock or other animations.
//
// The process-wide instance is available via Default; tests construct
// isolated instances, typically with WithManualDriver and a synthetic
// clock.
type Scheduler struct {
	mu       sync.Mutex
	clock    Clock
	interval time.Duration
	logger   *zap.Logger
	monitor  *Monitor
	manual   bool

	anims   map[string]*Animation
	order   []string
	running bool
	stop    chan struct{}
}

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*Scheduler)

// WithFrameInterval overrides the nominal tick interval.
func WithFrameInterval(d time.Duration) SchedulerOption {
	return func(s *Scheduler) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithClock injects the time source.
func WithClock(c Clock) SchedulerOption {
	return func(s *Scheduler) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithLogger injects the logger used for callback fault reports.
func WithLogger(l *zap.Logger) SchedulerOption {
	return func(s *Scheduler) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMonitor attaches a frame monitor that samples every tick.
func WithMonitor(m *Monitor) SchedulerOption {
	return func(s *Scheduler) { s.monitor = m }
}

// WithManualDriver disables the internal clock goroutine. The caller (a
// test, usually) drives ticks by calling Advance directly.
func WithManualDriver() SchedulerOption {
	return func(s *Scheduler) { s.manual = true }
}

// NewScheduler constructs an isolated scheduler.
func NewScheduler(opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{
		clock:    systemClock{},
		interval: DefaultFrameInterval,
		logger:   zap.NewNop(),
		anims:    make(map[string]*Animation),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var (
	defaultOnce      sync.Once
	defaultScheduler *Scheduler
)

// Default returns the process-wide shared scheduler, constructing it on
// first use.
func Default() *Scheduler {
	defaultOnce.Do(func() {
		defaultScheduler = NewScheduler()
	})
	return defaultScheduler
}

// Add registers an animation under id, replacing any prior registration
// with the same id (the replaced animation is dropped without firing its
// OnComplete). An empty id gets a generated one. Add starts the clock if
// it is not already running and returns the registered animation; its ID
// field carries the effective handle.
func (s *Scheduler) Add(id string, cb Callback, opts AddOptions) *Animation {
	if id == "" {
		id = uuid.NewString()
	}
	easing := opts.Easing
	if easing == "" {
		easing = EaseLinear
	}

	s.mu.Lock()
	if _, exists := s.anims[id]; exists {
		delete(s.anims, id)
		s.order = removeID(s.order, id)
	}
	a := &Animation{
		ID:         id,
		sched:      s,
		callback:   cb,
		start:      s.clock.Now(),
		duration:   opts.Duration,
		easing:     easing,
		loop:       opts.Loop,
		onComplete: opts.OnComplete,
	}
	s.anims[id] = a
	s.order = append(s.order, id)
	s.startLocked()
	s.mu.Unlock()
	return a
}

// Remove deregisters id, firing its OnComplete if present. After Remove
// returns the id is guaranteed absent; a tick in progress that reaches it
// simply skips it. Removing the last animation stops the clock.
func (s *Scheduler) Remove(id string) {
	s.mu.Lock()
	a, ok := s.anims[id]
	if !ok {
		s.mu.Unlock()
		return
	}
	delete(s.anims, id)
	s.order = removeID(s.order, id)
	stopCh := s.stopIfEmptyLocked()
	onComplete := a.onComplete
	s.mu.Unlock()

	if stopCh != nil {
		close(stopCh)
	}
	if onComplete != nil {
		onComplete()
	}
}

// Pause suspends id. A paused animation is skipped by the clock and keeps
// its progress.
func (s *Scheduler) Pause(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.anims[id]; ok {
		a.paused = true
	}
}

// Resume unpauses id, re-anchoring its start time so elapsed progress is
// preserved exactly: newStart = now - progress*duration. The animation
// continues from where it was paused, with no visible jump.
func (s *Scheduler) Resume(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.anims[id]
	if !ok || !a.paused {
		return
	}
	a.paused = false
	a.start = s.clock.Now().Add(-time.Duration(a.progress * float64(a.duration)))
}

// Len returns the current registry size.
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.anims)
}

// Running reports whether the internal clock goroutine is active. Always
// false under a manual driver.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Clear removes every animation without firing completions and stops the
// clock.
func (s *Scheduler) Clear() {
	s.mu.Lock()
	s.anims = make(map[string]*Animation)
	s.order = nil
	stopCh := s.stopIfEmptyLocked()
	s.mu.Unlock()
	if stopCh != nil {
		close(stopCh)
	}
}

// Advance runs one clock tick at the given time. The internal driver calls
// it each interval; under a manual driver the test calls it directly.
//
// Every non-paused animation registered at tick start is advanced exactly
// once, in registration order. Additions made during a callback are picked
// up next tick; removals are honored immediately.
func (s *Scheduler) Advance(now time.Time) {
	s.mu.Lock()
	ids := make([]string, len(s.order))
	copy(ids, s.order)
	s.mu.Unlock()

	for _, id := range ids {
		s.advanceOne(id, now)
	}

	if s.monitor != nil {
		s.monitor.Tick(now)
	}
}

func (s *Scheduler) advanceOne(id string, now time.Time) {
	s.mu.Lock()
	a, ok := s.anims[id]
	if !ok || a.paused {
		s.mu.Unlock()
		return
	}
	elapsed := now.Sub(a.start)
	if elapsed < 0 {
		elapsed = 0
	}
	raw := 1.0
	if a.duration > 0 {
		raw = float64(elapsed) / float64(a.duration)
		if raw > 1 {
			raw = 1
		}
	}
	a.progress = raw
	cb := a.callback
	easing := a.easing
	loop := a.loop
	s.mu.Unlock()

	if panicked := s.invoke(cb, Ease(easing, raw), raw, elapsed); panicked != nil {
		s.logger.Warn("animation callback panicked, removing animation",
			zap.String("id", id),
			zap.Any("panic", panicked),
		)
		s.Remove(id)
		return
	}

	if raw < 1 {
		return
	}
	if loop {
		s.mu.Lock()
		if a, ok := s.anims[id]; ok {
			a.start = now
			a.progress = 0
		}
		s.mu.Unlock()
		return
	}
	s.Remove(id)
}

// invoke runs one callback, converting a panic into a returned value so a
// single faulty animation cannot take down the shared clock.
func (s *Scheduler) invoke(cb Callback, eased, raw float64, elapsed time.Duration) (panicked any) {
	defer func() {
		if r := recover(); r != nil {
			panicked = r
		}
	}()
	if cb != nil {
		cb(eased, raw, elapsed)
	}
	return nil
}

// startLocked launches the clock goroutine if needed. Callers hold s.mu.
func (s *Scheduler) startLocked() {
	if s.manual || s.running {
		return
	}
	s.running = true
	s.stop = make(chan struct{})
	go s.loop(s.stop)
}

// stopIfEmptyLocked arranges clock shutdown when the registry is empty.
// Callers hold s.mu and must close the returned channel, if any, after
// releasing it.
func (s *Scheduler) stopIfEmptyLocked() chan struct{} {
	if len(s.anims) != 0 || !s.running {
		return nil
	}
	s.running = false
	stopCh := s.stop
	s.stop = nil
	return stopCh
}

func (s *Scheduler) loop(stop chan struct{}) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.Advance(s.clock.Now())
		}
	}
}

func removeID(order []string, id string) []string {
	for i, existing := range order {
		if existing == id {
			return append(order[:i], order[i+1:]...)
		}
	}
	return order
}
