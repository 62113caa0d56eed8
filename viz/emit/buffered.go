package emit

import "sync"

// BufferedEmitter implements Emitter by storing events in memory, keyed by
// session. It backs the engine's debug surface and makes event flow easy
// to assert in tests.
//
// All events stay in memory; long-lived sessions should be cleared when no
// longer needed.
type BufferedEmitter struct {
	mu     sync.RWMutex
	events map[string][]Event
}

// HistoryFilter selects a subset of a session's events. All fields are
// optional and combined with AND.
type HistoryFilter struct {
	EntityType string // filter by entity type (empty = no filter)
	Msg        string // filter by event name (empty = no filter)
	MinStep    *int   // minimum step index (nil = no lower bound)
	MaxStep    *int   // maximum step index (nil = no upper bound)
}

// NewBufferedEmitter creates an in-memory event buffer.
func NewBufferedEmitter() *BufferedEmitter {
	return &BufferedEmitter{events: make(map[string][]Event)}
}

// Emit stores the event under its session.
func (b *BufferedEmitter) Emit(event Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events[event.Session] = append(b.events[event.Session], event)
}

// History returns all buffered events for a session in emission order.
func (b *BufferedEmitter) History(session string) []Event {
	b.mu.RLock()
	defer b.mu.RUnlock()
	events := b.events[session]
	out := make([]Event, len(events))
	copy(out, events)
	return out
}

// HistoryWithFilter returns the session's events matching the filter.
func (b *BufferedEmitter) HistoryWithFilter(session string, filter HistoryFilter) []Event {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var out []Event
	for _, event := range b.events[session] {
		if filter.EntityType != "" && event.EntityType != filter.EntityType {
			continue
		}
		if filter.Msg != "" && event.Msg != filter.Msg {
			continue
		}
		if filter.MinStep != nil && event.Step < *filter.MinStep {
			continue
		}
		if filter.MaxStep != nil && event.Step > *filter.MaxStep {
			continue
		}
		out = append(out, event)
	}
	return out
}

// Count returns the number of buffered events for a session.
func (b *BufferedEmitter) Count(session string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.events[session])
}

// Clear drops all events for one session.
func (b *BufferedEmitter) Clear(session string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.events, session)
}

// ClearAll drops every buffered event.
func (b *BufferedEmitter) ClearAll() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = make(map[string][]Event)
}
