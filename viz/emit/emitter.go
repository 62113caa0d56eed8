package emit

// Emitter receives observability events from the visualization core.
//
// Implementations must be non-blocking, safe for concurrent use, and
// resilient: Emit must not panic, and a failing backend must not disturb
// rendering. Filtering, buffering, and fan-out all compose behind this
// interface.
type Emitter interface {
	Emit(event Event)
}
