// Package emit provides pluggable observability emitters for the
// visualization engine.
package emit

// Event is one observability event from the visualization core: a step
// resolution, a strategy decision, a validation finding, a renderer
// failure, or an animation lifecycle change.
type Event struct {
	// Session identifies the visualization session that emitted this event.
	Session string

	// Step is the step index the event relates to. Negative for
	// session-level events.
	Step int

	// EntityType names the entity type involved, when one is. Empty for
	// step- and session-level events.
	EntityType string

	// Msg is a short machine-oriented event name, e.g. "step_resolved",
	// "renderer_error", "validation_failed".
	Msg string

	// Meta carries additional structured data. Common keys: "error",
	// "mode", "format", "entity_count", "duration_ms".
	Meta map[string]any
}
