package viz

// Step reconstruction: legacy steps sometimes arrive without explicit
// visualization data, carrying instead a compact replay payload
// {base: {array: [...]}, ops: [...]} or nothing at all. ResolveStep turns
// either into concrete visualization data, falling back to the previous
// step's resolved state so a sequence never renders empty mid-animation.

// ResolveStep returns the visualization data for one legacy step.
//
// Priority order, first match wins:
//  1. The step already carries explicit visualization data: returned
//     unchanged, never reconstructed.
//  2. The step carries a replay payload: the operations are replayed from
//     the base container and the final snapshot is packaged as
//     single-array visualization data, preserving the raw operation list
//     for display.
//  3. Otherwise prev is returned unchanged (carry-forward fallback).
//
// Reconstruction is deterministic and idempotent: re-running it over the
// same inputs yields identical results.
func ResolveStep(step *LegacyStep, prev map[string]any) map[string]any {
	if step == nil || step.Visualization == nil {
		return prev
	}
	data := step.Visualization.Data
	if isExplicitData(data) {
		return data
	}
	if base, ops, ok := replayInputs(data); ok {
		final := base
		if snaps := Replay(base, ops); len(snaps) > 0 {
			final = snaps[len(snaps)-1].Values
		}
		return map[string]any{
			"arrays": []any{
				map[string]any{"name": "array", "values": final},
			},
			"operations": data["ops"],
		}
	}
	return prev
}

// ResolveSteps resolves a whole legacy step sequence left to right,
// threading the carry-forward accumulator exactly once per step.
//
// Side effect: a step whose Visualization exists but carries no data has
// its Data backfilled in place with the resolved state. The backfill is
// additive only; present data is never overwritten, so a second pass over
// the same sequence produces identical results.
func ResolveSteps(steps []LegacyStep) []map[string]any {
	resolved := make([]map[string]any, len(steps))
	var carry map[string]any
	for i := range steps {
		carry = ResolveStep(&steps[i], carry)
		resolved[i] = carry
		if steps[i].Visualization != nil && steps[i].Visualization.Data == nil {
			steps[i].Visualization.Data = carry
		}
	}
	return resolved
}

// isExplicitData reports whether data is complete per-entity visualization
// data rather than a compact replay payload or nothing.
func isExplicitData(data map[string]any) bool {
	if len(data) == 0 {
		return false
	}
	_, hasBase := data["base"]
	_, hasOps := data["ops"]
	if hasBase || hasOps {
		// A replay payload is an instruction to reconstruct, not data.
		return false
	}
	return true
}

// replayInputs extracts the base container and decoded operations from a
// compact replay payload, if data carries one.
func replayInputs(data map[string]any) ([]any, []Operation, bool) {
	base, ok := data["base"].(map[string]any)
	if !ok {
		return nil, nil, false
	}
	arr, ok := base["array"].([]any)
	if !ok {
		return nil, nil, false
	}
	rawOps, _ := data["ops"].([]any)
	return arr, decodeOperations(rawOps), true
}

// decodeOperations converts a JSON-decoded operation list into typed
// Operations. Entries that are not objects are kept as zero-valued
// operations so replay still emits a snapshot for them.
func decodeOperations(raw []any) []Operation {
	ops := make([]Operation, 0, len(raw))
	for _, entry := range raw {
		m, ok := entry.(map[string]any)
		if !ok {
			ops = append(ops, Operation{})
			continue
		}
		var op Operation
		if kind, ok := m["op"].(string); ok {
			op.Op = OpKind(kind)
		}
		if idx, ok := asInt(m["index"]); ok {
			op.Index = &idx
		}
		if list, ok := m["indices"].([]any); ok {
			for _, v := range list {
				if n, ok := asInt(v); ok {
					op.Indices = append(op.Indices, n)
				}
			}
		}
		op.Value = m["value"]
		if p, ok := m["pointer"].(string); ok {
			op.Pointer = p
		}
		ops = append(ops, op)
	}
	return ops
}

// asInt coerces JSON numbers (float64 after decoding) and native ints.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	}
	return 0, false
}
