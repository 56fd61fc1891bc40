package stream

import (
	"errors"
	"testing"
)

func TestStateDepth(t *testing.T) {
	state := NewState()
	if state.Depth() != 0 {
		t.Errorf("expected depth 0, got %d", state.Depth())
	}

	// Open object
	state.ProcessEvent(&Event{Type: EventBeginObject})
	if state.Depth() != 1 {
		t.Errorf("expected depth 1, got %d", state.Depth())
	}

	// Open array inside object
	state.ProcessEvent(&Event{Type: EventKey, Key: "a"})
	state.ProcessEvent(&Event{Type: EventBeginArray})
	if state.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", state.Depth())
	}

	// Close array
	state.ProcessEvent(&Event{Type: EventEndArray})
	if state.Depth() != 1 {
		t.Errorf("expected depth 1, got %d", state.Depth())
	}

	// Close object
	state.ProcessEvent(&Event{Type: EventEndObject})
	if state.Depth() != 0 {
		t.Errorf("expected depth 0, got %d", state.Depth())
	}
}

func TestStateCurrentPath(t *testing.T) {
	state := NewState()
	if state.CurrentPath() != "" {
		t.Errorf("expected empty path, got %q", state.CurrentPath())
	}

	steps := []struct {
		ev   Event
		path string
	}{
		{Event{Type: EventBeginObject}, ""},
		{Event{Type: EventKey, Key: "a"}, "a"},
		{Event{Type: EventBeginObject}, "a"},
		{Event{Type: EventKey, Key: "b"}, "a.b"},
		{Event{Type: EventBeginArray}, "a.b"},
		{Event{Type: EventInt, Int: 1}, "a.b[0]"},
		{Event{Type: EventInt, Int: 2}, "a.b[1]"},
		{Event{Type: EventEndArray}, "a.b"},
		{Event{Type: EventKey, Key: "x.y"}, `a["x.y"]`},
		{Event{Type: EventNull}, `a["x.y"]`},
		{Event{Type: EventEndObject}, "a"},
		{Event{Type: EventEndObject}, ""},
	}
	for i, step := range steps {
		if err := state.ProcessEvent(&step.ev); err != nil {
			t.Fatalf("step %d: unexpected error: %v", i, err)
		}
		if got := state.CurrentPath(); got != step.path {
			t.Errorf("step %d (%#v): expected path %q, got %q", i, &step.ev, step.path, got)
		}
	}
}

func TestStateScalarKey(t *testing.T) {
	state := NewState()
	state.ProcessEvent(&Event{Type: EventBeginObject})
	if !state.AtKey() {
		t.Fatal("expected key position")
	}
	if err := state.ProcessEvent(&Event{Type: EventInt, Int: 7}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state.AtKey() {
		t.Error("expected value position after key")
	}
	if got := state.CurrentPath(); got != "7" {
		t.Errorf("expected path 7, got %q", got)
	}
	if err := state.ProcessEvent(&Event{Type: EventString, String: "v"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !state.AtKey() {
		t.Error("expected key position after value")
	}
}

func TestStateErrors(t *testing.T) {
	tests := []struct {
		name   string
		events []Event
	}{
		{"negative depth", []Event{{Type: EventEndObject}}},
		{"mismatched end", []Event{{Type: EventBeginArray}, {Type: EventEndObject}}},
		{"key without value", []Event{{Type: EventBeginObject}, {Type: EventKey, Key: "k"}, {Type: EventEndObject}}},
		{"key in array", []Event{{Type: EventBeginArray}, {Type: EventKey, Key: "k"}}},
		{"key at top", []Event{{Type: EventKey, Key: "k"}}},
	}
	for _, tt := range tests {
		state := NewState()
		var err error
		for i := range tt.events {
			if err = state.ProcessEvent(&tt.events[i]); err != nil {
				break
			}
		}
		if !errors.Is(err, ErrMalformedInput) {
			t.Errorf("%s: expected ErrMalformedInput, got %v", tt.name, err)
		}
	}
}

func TestStateIndex(t *testing.T) {
	state := NewState()
	state.ProcessEvent(&Event{Type: EventBeginArray})
	if got := state.CurrentPath(); got != "" {
		t.Errorf("expected empty path before first element, got %q", got)
	}
	state.ProcessEvent(&Event{Type: EventBool, Bool: true})
	state.ProcessEvent(&Event{Type: EventBool})
	if got := state.CurrentPath(); got != "[1]" {
		t.Errorf("expected path [1], got %q", got)
	}
	if state.IsInObject() || state.AtKey() {
		t.Error("expected to be in array")
	}
}
