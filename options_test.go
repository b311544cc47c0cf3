package glemu

import (
	"testing"
)

func TestDefaultOptions(t *testing.T) {
	o := defaultOptions()
	if o.label != "" {
		t.Errorf("label = %q, want empty", o.label)
	}
	if o.resources != nil {
		t.Error("resources should be nil by default")
	}
}

func TestWithLabel(t *testing.T) {
	ia := NewIndexArray(newRecordingGL(), true, 4, WithLabel("ui-batch"))
	if ia.label != "ui-batch" {
		t.Errorf("label = %q, want %q", ia.label, "ui-batch")
	}
}

func TestWithResources(t *testing.T) {
	r := NewResources()
	ia := NewIndexArray(newRecordingGL(), true, 4, WithResources(r))
	if ia.tracker != r {
		t.Error("tracker not set")
	}
	if r.Len() != 1 {
		t.Errorf("Len = %d, want 1", r.Len())
	}
}

func TestOptionsLastWins(t *testing.T) {
	r1, r2 := NewResources(), NewResources()
	ia := NewIndexArray(newRecordingGL(), true, 4,
		WithLabel("a"), WithResources(r1),
		WithLabel("b"), WithResources(r2),
	)
	if ia.label != "b" {
		t.Errorf("label = %q, want %q", ia.label, "b")
	}
	if r1.Len() != 0 || r2.Len() != 1 {
		t.Errorf("r1.Len = %d, r2.Len = %d, want 0 and 1", r1.Len(), r2.Len())
	}
}
