package viz

import "errors"

// ErrNoAnalysis is returned by Engine.Resolve when the payload normalized
// to nothing. The rendering surface degrades to a "no data" placeholder
// instead of surfacing this; the sentinel exists for callers that want the
// distinction.
var ErrNoAnalysis = errors.New("no analysis payload")

// ErrStepOutOfRange is returned by Engine.Resolve for a step index outside
// the resolved sequence. Engine.Step reports the same condition as
// (nil, false) for callers that prefer the comma-ok form.
var ErrStepOutOfRange = errors.New("step index out of range")
