package anim

import (
	"sync"
	"time"
)

// FrameObserver receives one sample per clock tick. The viz package's
// Metrics satisfies this, letting a Monitor feed Prometheus counters
// without the anim package depending on a metrics library.
type FrameObserver interface {
	ObserveFrame(delta time.Duration, dropped bool)
}

// Monitor samples consecutive tick-to-tick deltas from the scheduler
// clock. A tick whose delta exceeds the dropped-frame factor times the
// nominal frame budget (double, by default) counts as a dropped frame.
type Monitor struct {
	mu       sync.Mutex
	budget   time.Duration
	factor   float64
	last     time.Time
	frames   int
	dropped  int
	fps      float64
	observer FrameObserver
}

// Report is a point-in-time view of the monitor's counters.
type Report struct {
	Frames  int
	Dropped int
	FPS     float64
}

// NewMonitor creates a monitor with the given nominal frame budget and
// the default dropped-frame factor of 2. A non-positive budget falls back
// to DefaultFrameInterval.
func NewMonitor(budget time.Duration) *Monitor {
	return NewMonitorWithFactor(budget, 2)
}

// NewMonitorWithFactor creates a monitor whose dropped threshold is
// factor times the budget. A factor below 1 falls back to 2.
func NewMonitorWithFactor(budget time.Duration, factor float64) *Monitor {
	if budget <= 0 {
		budget = DefaultFrameInterval
	}
	if factor < 1 {
		factor = 2
	}
	return &Monitor{budget: budget, factor: factor}
}

// SetObserver attaches a per-tick observer. Pass nil to detach.
func (m *Monitor) SetObserver(o FrameObserver) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.observer = o
}

// Tick records one clock tick at now. The first tick only anchors the
// delta baseline.
func (m *Monitor) Tick(now time.Time) {
	m.mu.Lock()
	if m.last.IsZero() {
		m.last = now
		m.mu.Unlock()
		return
	}
	delta := now.Sub(m.last)
	m.last = now
	m.frames++
	dropped := delta > time.Duration(m.factor*float64(m.budget))
	if dropped {
		m.dropped++
	}
	if delta > 0 {
		m.fps = float64(time.Second) / float64(delta)
	}
	observer := m.observer
	m.mu.Unlock()

	if observer != nil {
		observer.ObserveFrame(delta, dropped)
	}
}

// Snapshot returns the running frame count, dropped count, and the
// instantaneous FPS derived from the most recent delta.
func (m *Monitor) Snapshot() Report {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Report{Frames: m.frames, Dropped: m.dropped, FPS: m.fps}
}

// Reset clears all counters and the delta baseline.
func (m *Monitor) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.last = time.Time{}
	m.frames = 0
	m.dropped = 0
	m.fps = 0
}
