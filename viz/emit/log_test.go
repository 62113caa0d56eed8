package emit

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestLogEmitterText(t *testing.T) {
	var buf bytes.Buffer
	emitter := NewLogEmitter(&buf, false)

	emitter.Emit(Event{
		Session:    "sess-01",
		Step:       2,
		EntityType: "array",
		Msg:        "step_resolved",
	})

	got := buf.String()
	want := "[step_resolved] session=sess-01 step=2 entity=array\n"
	if got != want {
		t.Errorf("text output = %q, want %q", got, want)
	}
}

func TestLogEmitterTextOmitsEmptyFields(t *testing.T) {
	var buf bytes.Buffer
	emitter := NewLogEmitter(&buf, false)

	emitter.Emit(Event{Session: "sess-01", Step: -1, Msg: "analysis_loaded"})

	got := buf.String()
	if strings.Contains(got, "entity=") {
		t.Errorf("empty entity type should be omitted, got %q", got)
	}
	if strings.Contains(got, "meta=") {
		t.Errorf("empty meta should be omitted, got %q", got)
	}
}

func TestLogEmitterTextIncludesMeta(t *testing.T) {
	var buf bytes.Buffer
	emitter := NewLogEmitter(&buf, false)

	emitter.Emit(Event{
		Session: "sess-01",
		Step:    0,
		Msg:     "renderer_error",
		Meta:    map[string]any{"error": "canvas lost"},
	})

	got := buf.String()
	if !strings.Contains(got, `meta={"error":"canvas lost"}`) {
		t.Errorf("meta missing from text output: %q", got)
	}
}

func TestLogEmitterJSON(t *testing.T) {
	var buf bytes.Buffer
	emitter := NewLogEmitter(&buf, true)

	emitter.Emit(Event{
		Session:    "sess-01",
		Step:       3,
		EntityType: "hashmap",
		Msg:        "validation_failed",
		Meta:       map[string]any{"errors": float64(2)},
	})
	emitter.Emit(Event{Session: "sess-01", Step: 4, Msg: "step_changed"})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 JSONL lines, got %d: %q", len(lines), buf.String())
	}

	var decoded struct {
		Session    string         `json:"session"`
		Step       int            `json:"step"`
		EntityType string         `json:"entityType"`
		Msg        string         `json:"msg"`
		Meta       map[string]any `json:"meta"`
	}
	if err := json.Unmarshal([]byte(lines[0]), &decoded); err != nil {
		t.Fatalf("first line is not valid JSON: %v", err)
	}
	if decoded.Session != "sess-01" || decoded.Step != 3 || decoded.EntityType != "hashmap" {
		t.Errorf("decoded event mismatch: %+v", decoded)
	}
	if decoded.Meta["errors"] != float64(2) {
		t.Errorf("meta round-trip mismatch: %v", decoded.Meta)
	}
}

func TestLogEmitterNilWriterDefaultsToStdout(t *testing.T) {
	emitter := NewLogEmitter(nil, false)
	if emitter.writer == nil {
		t.Fatal("nil writer was not replaced")
	}
}
