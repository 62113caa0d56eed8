package viz

import (
	"go.uber.org/zap"

	"github.com/Harshyadav812/Visualize-sub002/viz/anim"
	"github.com/Harshyadav812/Visualize-sub002/viz/emit"
	"github.com/Harshyadav812/Visualize-sub002/viz/store"
)

// Option is a functional option for configuring an Engine.
//
// Example:
//
//	engine := viz.New(payload,
//	    viz.WithLogger(logger),
//	    viz.WithMetrics(viz.NewMetrics(registry)),
//	    viz.WithScheduler(anim.Default()),
//	)
type Option func(*Engine)

// WithLogger injects the structured logger. Default is a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithEmitter injects the observability emitter. Default discards events.
func WithEmitter(em emit.Emitter) Option {
	return func(e *Engine) {
		if em != nil {
			e.emitter = em
		}
	}
}

// WithMetrics attaches Prometheus metrics. Nil leaves metrics disabled.
func WithMetrics(m *Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithScheduler injects the animation scheduler the facade drives on step
// transitions. Default is the process-wide shared scheduler.
func WithScheduler(s *anim.Scheduler) Option {
	return func(e *Engine) {
		if s != nil {
			e.sched = s
		}
	}
}

// WithStore injects the session cache used to memoize the legacy
// conversion. Default is a fresh in-memory cache.
func WithStore(s store.Store[LegacyStep]) Option {
	return func(e *Engine) {
		if s != nil {
			e.cache = s
		}
	}
}

// WithErrorHandler registers the caller's handler for renderer-reported
// errors. The handler receives the error and the context it occurred in.
func WithErrorHandler(h func(error, ErrorContext)) Option {
	return func(e *Engine) { e.onError = h }
}

// WithDebug toggles the observational diagnostics surface. It never
// affects rendering decisions.
func WithDebug(enabled bool) Option {
	return func(e *Engine) { e.debug = enabled }
}

// WithSessionID overrides the generated session identifier.
func WithSessionID(id string) Option {
	return func(e *Engine) {
		if id != "" {
			e.session = id
		}
	}
}
