package core

import "testing"

func TestInputFrame(t *testing.T) {
	var f InputFrame
	if f.Has(ActionJump) {
		t.Fatal("zero frame should be empty")
	}

	f.Set(ActionJump)
	f.Set(ActionNone)
	if !f.Has(ActionJump) || f.Has(ActionPause) || f.Has(ActionNone) {
		t.Errorf("frame = %016b, expected only Jump", f)
	}

	c := f.Clone()
	f.Clear()
	if f.Has(ActionJump) {
		t.Error("Clear should drop every action")
	}
	if !c.Has(ActionJump) {
		t.Error("Clone should not share state with the original")
	}

	if got := NewInputFrame(ActionPause, ActionFaster); !got.Has(ActionPause) || !got.Has(ActionFaster) {
		t.Errorf("NewInputFrame = %016b, expected Pause|Faster", got)
	}
}

func TestActionString(t *testing.T) {
	tests := []struct {
		a        Action
		expected string
	}{
		{ActionJump, "Jump"},
		{ActionSlower, "Slower"},
		{Action(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.a.String(); got != tt.expected {
			t.Errorf("Action(%d).String() = %q, expected %q", tt.a, got, tt.expected)
		}
	}
}
