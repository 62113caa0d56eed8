// Package anim implements the shared animation scheduler: a single
// frame-clock-driven engine running many independent timed callbacks with
// easing, looping, pause/resume, sequencing, and fault isolation.
package anim

import "time"

// Clock abstracts wall time so tests can drive the scheduler
// deterministically with a synthetic clock.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns the real wall clock.
func SystemClock() Clock { return systemClock{} }
