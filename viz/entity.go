// Package viz implements the core visualization engine for algorithm
// execution traces: canonical step normalization, structural validation,
// deterministic operation replay, and render-strategy selection.
package viz

// EntityType identifies the kind of data structure an Entity describes.
//
// The set of known types is closed, but unknown values are preserved
// opaquely so pass-through renderers can still receive them.
type EntityType string

const (
	EntityArray      EntityType = "array"
	EntityString     EntityType = "string"
	EntityHashMap    EntityType = "hashmap"
	EntityTree       EntityType = "tree"
	EntityGraph      EntityType = "graph"
	EntityLinkedList EntityType = "linkedlist"
	EntityRecursion  EntityType = "recursion"
	EntityDP         EntityType = "dp"
)

// KnownEntityType reports whether t is a member of the closed entity type set.
func KnownEntityType(t EntityType) bool {
	switch t {
	case EntityArray, EntityString, EntityHashMap, EntityTree,
		EntityGraph, EntityLinkedList, EntityRecursion, EntityDP:
		return true
	}
	return false
}

// EntityMeta carries display hints for an entity. It never affects
// normalization or strategy decisions.
type EntityMeta struct {
	Name  string `json:"name,omitempty"`
	Label string `json:"label,omitempty"`
}

// Entity is one visualizable data-structure instance within a step.
//
// State is a type-specific structured value (e.g., for arrays a bag with
// "values" or "arrays" fields). Highlights are type-agnostic emphasis
// markers interpreted by renderers.
type Entity struct {
	ID         string         `json:"id"`
	Type       EntityType     `json:"type"`
	State      map[string]any `json:"state,omitempty"`
	Meta       EntityMeta     `json:"meta,omitempty"`
	Highlights map[string]any `json:"highlights,omitempty"`
}

// GlobalState carries step-level variable bindings shared by all entities
// in a step.
type GlobalState struct {
	Variables map[string]any `json:"variables,omitempty"`
}

// UIRStep is one canonical intermediate-representation step. A step may
// describe several co-existing entities; it may also carry no entities at
// all (a purely informational step).
//
// Index is monotonically increasing and unique within a step sequence.
// Within one step each entity ID is unique.
type UIRStep struct {
	Index         int         `json:"index"`
	Note          string      `json:"note,omitempty"`
	CodeReference string      `json:"codeReference,omitempty"`
	Entities      []Entity    `json:"entities,omitempty"`
	GlobalState   GlobalState `json:"globalState,omitempty"`
	Reasoning     string      `json:"reasoning,omitempty"`
	LearningPoint string      `json:"learningPoint,omitempty"`
}

// Visualization is the legacy per-step visualization payload: a single
// entity type plus a type-specific data bag.
type Visualization struct {
	Type EntityType     `json:"type"`
	Data map[string]any `json:"data,omitempty"`
}

// LegacyStep is the single-entity step shape predating the IR. It is a
// projection of exactly one entity's state plus step-level narrative
// fields; converting a multi-entity UIRStep down to a LegacyStep loses
// everything past the primary entity by design.
type LegacyStep struct {
	StepNumber     int            `json:"stepNumber"`
	Title          string         `json:"title,omitempty"`
	Description    string         `json:"description,omitempty"`
	CodeHighlight  string         `json:"codeHighlight,omitempty"`
	VariableStates map[string]any `json:"variableStates,omitempty"`
	Visualization  *Visualization `json:"visualization,omitempty"`
}

// PrimaryEntity returns the first entity of the step, or nil when the step
// carries none.
func (s *UIRStep) PrimaryEntity() *Entity {
	if s == nil || len(s.Entities) == 0 {
		return nil
	}
	return &s.Entities[0]
}

// EntityTypes returns the distinct entity types present in the step, in
// first-appearance order.
func (s *UIRStep) EntityTypes() []EntityType {
	if s == nil {
		return nil
	}
	seen := make(map[EntityType]bool, len(s.Entities))
	types := make([]EntityType, 0, len(s.Entities))
	for _, e := range s.Entities {
		if !seen[e.Type] {
			seen[e.Type] = true
			types = append(types, e.Type)
		}
	}
	return types
}
