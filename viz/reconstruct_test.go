package viz

import (
	"reflect"
	"testing"
)

func TestResolveStep_PassThrough(t *testing.T) {
	data := map[string]any{
		"arrays": []any{map[string]any{"name": "nums", "values": []any{1, 2}}},
	}
	step := &LegacyStep{Visualization: &Visualization{Type: EntityArray, Data: data}}

	got := ResolveStep(step, map[string]any{"stale": true})
	if !reflect.DeepEqual(got, data) {
		t.Errorf("explicit data not passed through: %v", got)
	}
}

func TestResolveStep_ReplayPayload(t *testing.T) {
	step := &LegacyStep{Visualization: &Visualization{
		Type: EntityArray,
		Data: map[string]any{
			"base": map[string]any{"array": []any{1, 2, 3, 4, 5}},
			"ops": []any{
				map[string]any{"op": "swap", "indices": []any{0, 4}},
				map[string]any{"op": "set", "index": 2, "value": 7},
			},
		},
	}}

	got := ResolveStep(step, nil)
	arrays, ok := got["arrays"].([]any)
	if !ok || len(arrays) != 1 {
		t.Fatalf("expected one packaged array, got %v", got["arrays"])
	}
	values := arrays[0].(map[string]any)["values"]
	want := []any{5, 2, 7, 4, 1}
	if !reflect.DeepEqual(values, want) {
		t.Errorf("replayed values = %v, want %v", values, want)
	}
	if got["operations"] == nil {
		t.Error("raw operation list not preserved for display")
	}
}

func TestResolveStep_CarryForward(t *testing.T) {
	prev := map[string]any{"arrays": []any{}}

	t.Run("nil visualization inherits previous state", func(t *testing.T) {
		got := ResolveStep(&LegacyStep{}, prev)
		if !reflect.DeepEqual(got, prev) {
			t.Errorf("got %v, want carried-forward %v", got, prev)
		}
	})

	t.Run("empty data inherits previous state", func(t *testing.T) {
		step := &LegacyStep{Visualization: &Visualization{Type: EntityArray}}
		got := ResolveStep(step, prev)
		if !reflect.DeepEqual(got, prev) {
			t.Errorf("got %v, want carried-forward %v", got, prev)
		}
	})

	t.Run("nil step inherits previous state", func(t *testing.T) {
		got := ResolveStep(nil, prev)
		if !reflect.DeepEqual(got, prev) {
			t.Errorf("got %v, want carried-forward %v", got, prev)
		}
	})
}

func TestResolveSteps_AccumulatesOncePerStep(t *testing.T) {
	explicit := map[string]any{"string": "abc"}
	steps := []LegacyStep{
		{Visualization: &Visualization{Type: EntityString, Data: explicit}},
		{Visualization: &Visualization{Type: EntityString}},
		{},
	}

	resolved := ResolveSteps(steps)
	if len(resolved) != 3 {
		t.Fatalf("expected 3 resolved states, got %d", len(resolved))
	}
	for i, r := range resolved {
		if !reflect.DeepEqual(r, explicit) {
			t.Errorf("step %d = %v, want carried state %v", i, r, explicit)
		}
	}
	// Backfill fills the absent data field additively.
	if steps[1].Visualization.Data == nil {
		t.Error("missing visualization data not backfilled")
	}
	if !reflect.DeepEqual(steps[0].Visualization.Data, explicit) {
		t.Error("present visualization data overwritten by backfill")
	}
}

func TestResolveSteps_Idempotent(t *testing.T) {
	steps := []LegacyStep{
		{Visualization: &Visualization{Type: EntityArray, Data: map[string]any{
			"base": map[string]any{"array": []any{3, 1, 2}},
			"ops": []any{
				map[string]any{"op": "swap", "indices": []any{0, 1}},
			},
		}}},
		{Visualization: &Visualization{Type: EntityArray}},
	}

	first := ResolveSteps(steps)
	second := ResolveSteps(steps)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("reconstruction not idempotent:\nfirst:  %v\nsecond: %v", first, second)
	}
}
