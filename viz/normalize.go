package viz

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"unicode"
	"unicode/utf8"
)

// Format identifies the shape of a producer payload.
type Format string

const (
	// FormatUIR is the canonical multi-entity intermediate representation.
	FormatUIR Format = "uir"
	// FormatLegacy is the single-entity per-step shape predating the IR.
	FormatLegacy Format = "legacy"
	// FormatUnknown is a payload exposing neither step sequence. It
	// normalizes to an empty UIR sequence rather than an error.
	FormatUnknown Format = "unknown"
)

// Analysis is a parsed producer payload, normalized far enough that the
// engine can select either rendering path from it.
type Analysis struct {
	Format      Format
	UIRSteps    []UIRStep
	LegacySteps []LegacyStep
}

// payloadProbe mirrors only the fields format detection needs.
type payloadProbe struct {
	UIRSteps json.RawMessage `json:"uirSteps"`
	Steps    json.RawMessage `json:"steps"`
}

// DetectFormat structurally detects the payload shape. A payload is
// canonical IR iff its "uirSteps" field is literally a JSON array; there is
// no version tag. Anything with a "steps" array is legacy; everything else
// is unknown.
func DetectFormat(raw json.RawMessage) Format {
	var probe payloadProbe
	if err := json.Unmarshal(raw, &probe); err != nil {
		return FormatUnknown
	}
	if isJSONArray(probe.UIRSteps) {
		return FormatUIR
	}
	if isJSONArray(probe.Steps) {
		return FormatLegacy
	}
	return FormatUnknown
}

func isJSONArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}

// ParseAnalysis decodes a producer payload in either format.
//
// Malformed payloads degrade to an empty UIR analysis instead of failing:
// the system favors a "no data" placeholder over a hard error, so this
// function never returns one.
func ParseAnalysis(raw json.RawMessage) *Analysis {
	a := &Analysis{Format: DetectFormat(raw), UIRSteps: []UIRStep{}}

	var probe payloadProbe
	if err := json.Unmarshal(raw, &probe); err != nil {
		a.Format = FormatUnknown
		return a
	}

	switch a.Format {
	case FormatUIR:
		if err := json.Unmarshal(probe.UIRSteps, &a.UIRSteps); err != nil {
			a.UIRSteps = []UIRStep{}
		}
	case FormatLegacy:
		if err := json.Unmarshal(probe.Steps, &a.LegacySteps); err != nil {
			a.LegacySteps = nil
			break
		}
		ResolveSteps(a.LegacySteps)
	}
	return a
}

// Steps returns the analysis as canonical IR, converting legacy steps on
// the fly when needed.
func (a *Analysis) Steps() []UIRStep {
	if a == nil {
		return nil
	}
	if a.Format == FormatUIR {
		return a.UIRSteps
	}
	return ToUIR(a.LegacySteps)
}

// ToUIR converts a legacy step sequence into canonical IR. Each legacy step
// becomes one UIR step wrapping at most one entity inferred from its
// visualization; title/description carry into the note, the code highlight
// into the code reference, and variable states into the global state.
func ToUIR(steps []LegacyStep) []UIRStep {
	out := make([]UIRStep, 0, len(steps))
	for i, s := range steps {
		us := UIRStep{
			Index:         i,
			Note:          noteFrom(s.Title, s.Description),
			CodeReference: s.CodeHighlight,
			GlobalState:   GlobalState{Variables: s.VariableStates},
		}
		if s.Visualization != nil {
			e := Entity{
				ID:    fmt.Sprintf("%s-%d", entityIDBase(s.Visualization.Type), i),
				Type:  s.Visualization.Type,
				State: s.Visualization.Data,
			}
			if h, ok := s.Visualization.Data["highlights"].(map[string]any); ok {
				e.Highlights = h
			}
			us.Entities = []Entity{e}
		}
		out = append(out, us)
	}
	return out
}

func entityIDBase(t EntityType) string {
	if t == "" {
		return "entity"
	}
	return string(t)
}

func noteFrom(title, description string) string {
	switch {
	case title == "":
		return description
	case description == "":
		return title
	default:
		return title + ": " + description
	}
}

// ToLegacy converts a canonical step sequence back into the legacy shape
// for renderers that only understand one entity per step. Only the primary
// entity of each step survives; the loss is expected.
func ToLegacy(steps []UIRStep) []LegacyStep {
	out := make([]LegacyStep, 0, len(steps))
	for i := range steps {
		out = append(out, ToLegacyStep(&steps[i]))
	}
	return out
}

// ToLegacyStep projects one canonical step down to the legacy shape. The
// first entity in the step is the primary; its state is mapped through a
// fixed per-type projection table. Projection never fails: unknown entity
// types pass their raw state through verbatim, and an entity with an empty
// state projects to an empty bag.
func ToLegacyStep(step *UIRStep) LegacyStep {
	if step == nil {
		return LegacyStep{}
	}
	ls := LegacyStep{
		StepNumber:     step.Index,
		Title:          step.Note,
		Description:    step.Reasoning,
		CodeHighlight:  step.CodeReference,
		VariableStates: step.GlobalState.Variables,
	}
	primary := step.PrimaryEntity()
	if primary == nil {
		return ls
	}
	if ls.Title == "" {
		ls.Title = defaultTitle(primary.Type)
	}
	ls.Visualization = &Visualization{
		Type: primary.Type,
		Data: projectState(primary),
	}
	return ls
}

// defaultTitle derives a title from the entity type when the step carries
// no note, e.g. "Array Operation".
func defaultTitle(t EntityType) string {
	if t == "" {
		return "Operation"
	}
	s := string(t)
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:] + " Operation"
}

// projectState is the closed per-type projection table from entity state to
// a legacy data bag. The default branch passes unknown types through
// verbatim for forward compatibility.
func projectState(e *Entity) map[string]any {
	state := e.State
	if state == nil {
		state = map[string]any{}
	}
	switch e.Type {
	case EntityArray:
		return map[string]any{
			"arrays":     arraysFrom(state),
			"array":      state["array"],
			"highlights": highlightsOf(e),
			"pointers":   state["pointers"],
		}
	case EntityHashMap:
		return map[string]any{
			"hashMap":    firstOf(state, "hashMap", "map", "entries"),
			"highlights": highlightsOf(e),
		}
	case EntityString:
		return map[string]any{
			"string":     firstOf(state, "string", "value"),
			"pointers":   state["pointers"],
			"highlights": highlightsOf(e),
		}
	case EntityTree:
		return map[string]any{
			"tree":       firstOf(state, "tree", "root", "nodes"),
			"highlights": highlightsOf(e),
		}
	case EntityGraph:
		return map[string]any{
			"vertices":      state["vertices"],
			"edges":         state["edges"],
			"adjacencyList": state["adjacencyList"],
			"highlights":    highlightsOf(e),
		}
	case EntityLinkedList:
		return projectLinkedList(e, state)
	case EntityRecursion:
		return map[string]any{
			"callStack":    firstOf(state, "callStack", "stack", "frames"),
			"currentLevel": state["currentLevel"],
			"highlights":   highlightsOf(e),
		}
	case EntityDP:
		return map[string]any{
			"matrix":      firstOf(state, "matrix", "table", "dp"),
			"currentCell": state["currentCell"],
			"highlights":  highlightsOf(e),
		}
	default:
		return state
	}
}

// projectLinkedList handles the linked-list special case. A complete state
// projects like any other type; a state marked incomplete or carrying only
// raw unprocessed fields is assembled best-effort, flagged incomplete, and
// annotated with the raw fields that were available so diagnostics can
// display what the producer actually sent. The entity is never dropped.
func projectLinkedList(e *Entity, state map[string]any) map[string]any {
	_, hasNodes := state["nodes"]
	incomplete, _ := state["incomplete"].(bool)
	if hasNodes && !incomplete {
		return map[string]any{
			"head":        state["head"],
			"nodes":       state["nodes"],
			"connections": state["connections"],
			"highlights":  highlightsOf(e),
		}
	}

	nodes := state["nodes"]
	if nodes == nil {
		nodes = []any{}
	}
	connections := state["connections"]
	if connections == nil {
		connections = []any{}
	}
	available := make([]string, 0, len(state))
	for k := range state {
		available = append(available, k)
	}
	sort.Strings(available)

	return map[string]any{
		"head":            state["head"],
		"nodes":           nodes,
		"connections":     connections,
		"incomplete":      true,
		"availableFields": available,
		"highlights":      highlightsOf(e),
	}
}

// arraysFrom normalizes the several array spellings producers use into the
// legacy "arrays" list of {name, values} bags.
func arraysFrom(state map[string]any) any {
	if arrays, ok := state["arrays"]; ok {
		return arrays
	}
	if values, ok := state["values"].([]any); ok {
		return []any{map[string]any{"name": "array", "values": values}}
	}
	if values, ok := state["array"].([]any); ok {
		return []any{map[string]any{"name": "array", "values": values}}
	}
	return []any{}
}

// highlightsOf prefers the entity-level highlights, falling back to a
// highlights bag embedded in the state.
func highlightsOf(e *Entity) any {
	if e.Highlights != nil {
		return e.Highlights
	}
	if e.State != nil {
		if h, ok := e.State["highlights"]; ok {
			return h
		}
	}
	return nil
}

// firstOf returns the first present key from state, or nil.
func firstOf(state map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := state[k]; ok {
			return v
		}
	}
	return nil
}
