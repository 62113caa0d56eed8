package viz

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Harshyadav812/Visualize-sub002/viz/anim"
	"github.com/Harshyadav812/Visualize-sub002/viz/emit"
	"github.com/Harshyadav812/Visualize-sub002/viz/store"
)

// RenderMode names the rendering path chosen for a step.
type RenderMode string

const (
	// ModeOrchestrator renders all of a step's entities concurrently.
	ModeOrchestrator RenderMode = "orchestrator"
	// ModeLegacy renders the step's primary entity via the single-entity
	// renderer, using the legacy step shape.
	ModeLegacy RenderMode = "legacy"
)

// ErrorContext locates a renderer-reported failure.
type ErrorContext struct {
	EntityType string
	StepIndex  int
	Mode       RenderMode
}

// ResolvedStep is one step prepared for rendering: the canonical step, its
// validation report, and the chosen rendering path.
type ResolvedStep struct {
	Step        *UIRStep
	Report      ValidationReport
	Orchestrate bool
	Mode        RenderMode
}

// DebugInfo is the observational diagnostics surface. It reflects state;
// it never influences rendering decisions.
type DebugInfo struct {
	Format         Format
	StepIndex      int
	StepCount      int
	Mode           RenderMode
	Valid          bool
	EntityTypes    []string
	EntityCount    int
	HasGlobalState bool
}

// Engine is the facade over the visualization core. Given a producer
// payload it normalizes the steps once, then serves resolved steps with
// their validation reports and rendering strategy, adapts both renderer
// error callbacks into one surface, and drives animation lifecycle across
// step transitions.
//
// Engine methods are safe for concurrent use.
type Engine struct {
	mu      sync.Mutex
	session string
	current int
	debug   bool

	analysis *Analysis
	uirSteps []UIRStep

	logger  *zap.Logger
	emitter emit.Emitter
	metrics *Metrics
	sched   *anim.Scheduler
	cache   store.Store[LegacyStep]
	onError func(error, ErrorContext)

	// stepAnims tracks animations the facade started for the current
	// step, removed on the next transition.
	stepAnims []string
}

// New parses the payload and builds an engine over it. Malformed payloads
// degrade to an empty step sequence; New never fails.
func New(raw json.RawMessage, opts ...Option) *Engine {
	e := &Engine{
		session: uuid.NewString(),
		logger:  zap.NewNop(),
		emitter: emit.NewNullEmitter(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.sched == nil {
		e.sched = anim.Default()
	}
	if e.cache == nil {
		e.cache = store.NewMemStore[LegacyStep]()
	}

	start := time.Now()
	e.analysis = ParseAnalysis(raw)
	e.uirSteps = e.analysis.Steps()
	e.metrics.ObserveNormalize(time.Since(start))

	e.emitter.Emit(emit.Event{
		Session: e.session,
		Step:    -1,
		Msg:     "analysis_loaded",
		Meta: map[string]any{
			"format":     string(e.analysis.Format),
			"step_count": len(e.uirSteps),
		},
	})
	return e
}

// Session returns the engine's session identifier.
func (e *Engine) Session() string { return e.session }

// Format returns the detected payload format.
func (e *Engine) Format() Format { return e.analysis.Format }

// StepCount returns the number of resolved canonical steps.
func (e *Engine) StepCount() int { return len(e.uirSteps) }

// Step resolves the step at index i: validation report plus rendering
// strategy. An out-of-range index yields (nil, false), not an error.
func (e *Engine) Step(i int) (*ResolvedStep, bool) {
	resolved, ok := e.resolveStep(i)
	if !ok {
		return nil, false
	}

	e.metrics.StepResolved(resolved.Mode)
	e.metrics.ValidationFindings(resolved.Report)
	if !resolved.Report.IsValid {
		e.emitter.Emit(emit.Event{
			Session: e.session,
			Step:    i,
			Msg:     "validation_failed",
			Meta:    map[string]any{"errors": len(resolved.Report.Errors)},
		})
	}
	return resolved, true
}

// Resolve is the error-returning sibling of Step for callers adapting the
// engine to error-based APIs.
func (e *Engine) Resolve(i int) (*ResolvedStep, error) {
	if len(e.uirSteps) == 0 {
		return nil, ErrNoAnalysis
	}
	step, ok := e.Step(i)
	if !ok {
		return nil, ErrStepOutOfRange
	}
	return step, nil
}

// resolveStep computes a step's report and strategy without counting it as
// a resolution. Internal callers that only inspect a step (diagnostics,
// error-context lookup) go through here so metrics and emissions reflect
// steps actually served.
func (e *Engine) resolveStep(i int) (*ResolvedStep, bool) {
	if i < 0 || i >= len(e.uirSteps) {
		return nil, false
	}
	step := &e.uirSteps[i]
	report := Validate(step)
	orchestrate := ShouldOrchestrate(step)
	mode := ModeLegacy
	if orchestrate {
		mode = ModeOrchestrator
	}
	return &ResolvedStep{
		Step:        step,
		Report:      report,
		Orchestrate: orchestrate,
		Mode:        mode,
	}, true
}

// SetStep transitions the engine to step i: animations started for the
// previous step are removed, then the transition is emitted. Out-of-range
// indices still transition (the step simply resolves to nothing).
func (e *Engine) SetStep(i int) {
	e.mu.Lock()
	prev := e.current
	e.current = i
	tracked := e.stepAnims
	e.stepAnims = nil
	e.mu.Unlock()

	for _, id := range tracked {
		e.sched.Remove(id)
	}
	e.metrics.SetActiveAnimations(e.sched.Len())

	e.emitter.Emit(emit.Event{
		Session: e.session,
		Step:    i,
		Msg:     "step_changed",
		Meta:    map[string]any{"from": prev},
	})
}

// CurrentStep returns the engine's current step index.
func (e *Engine) CurrentStep() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.current
}

// Animate starts an animation scoped to the current step. It is removed
// automatically on the next SetStep. An empty id gets a generated one; the
// effective id is returned.
func (e *Engine) Animate(id string, cb anim.Callback, opts anim.AddOptions) string {
	a := e.sched.Add(id, cb, opts)
	e.mu.Lock()
	e.stepAnims = append(e.stepAnims, a.ID)
	e.mu.Unlock()
	e.metrics.SetActiveAnimations(e.sched.Len())
	return a.ID
}

// Scheduler returns the animation scheduler the facade drives.
func (e *Engine) Scheduler() *anim.Scheduler { return e.sched }

// LegacySteps returns the whole step sequence converted to the legacy
// shape for the single-entity renderer. The conversion runs once per
// session and is cached; step changes reuse it.
func (e *Engine) LegacySteps() []LegacyStep {
	ctx := context.Background()
	if cached, err := e.cache.LoadConverted(ctx, e.session); err == nil {
		return cached
	}

	var converted []LegacyStep
	if e.analysis.Format == FormatLegacy {
		converted = e.analysis.LegacySteps
	} else {
		converted = ToLegacy(e.uirSteps)
	}
	if err := e.cache.SaveConverted(ctx, e.session, converted); err != nil {
		e.logger.Warn("failed to cache converted steps", zap.Error(err))
	}
	return converted
}

// ReportRendererError is the unified error surface for both renderer
// collaborators. The failure is logged with its context, counted,
// emitted, and forwarded to the caller's handler. Rendering continues;
// nothing here is fatal.
func (e *Engine) ReportRendererError(entityType string, stepIndex int, err error) {
	if err == nil {
		return
	}
	mode := ModeLegacy
	if step, ok := e.resolveStep(stepIndex); ok {
		mode = step.Mode
	}
	ectx := ErrorContext{EntityType: entityType, StepIndex: stepIndex, Mode: mode}

	e.logger.Error("renderer error",
		zap.String("entity_type", entityType),
		zap.Int("step", stepIndex),
		zap.String("mode", string(mode)),
		zap.Error(err),
	)
	e.metrics.RendererError(entityType)
	e.emitter.Emit(emit.Event{
		Session:    e.session,
		Step:       stepIndex,
		EntityType: entityType,
		Msg:        "renderer_error",
		Meta:       map[string]any{"error": err.Error(), "mode": string(mode)},
	})
	if e.onError != nil {
		e.onError(err, ectx)
	}
}

// ReportError adapts the single-entity renderer's error callback, which
// carries no entity context, onto the unified surface using the current
// step's primary entity.
func (e *Engine) ReportError(err error) {
	current := e.CurrentStep()
	entityType := ""
	if step, ok := e.resolveStep(current); ok {
		if primary := step.Step.PrimaryEntity(); primary != nil {
			entityType = string(primary.Type)
		}
	}
	e.ReportRendererError(entityType, current, err)
}

// Debug returns the diagnostics snapshot for the current step. It is
// purely observational. When the debug toggle is off it returns the zero
// value.
func (e *Engine) Debug() DebugInfo {
	if !e.debug {
		return DebugInfo{}
	}
	current := e.CurrentStep()
	info := DebugInfo{
		Format:    e.analysis.Format,
		StepIndex: current,
		StepCount: len(e.uirSteps),
		Mode:      ModeLegacy,
	}
	step, ok := e.resolveStep(current)
	if !ok {
		return info
	}
	info.Mode = step.Mode
	info.Valid = step.Report.IsValid
	info.EntityCount = len(step.Step.Entities)
	info.HasGlobalState = len(step.Step.GlobalState.Variables) > 0
	for _, t := range step.Step.EntityTypes() {
		info.EntityTypes = append(info.EntityTypes, string(t))
	}
	return info
}
