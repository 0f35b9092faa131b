package encoder

import (
	"testing"

	"encoderctl/host/sim"
)

func TestTarget(t *testing.T) {
	r := newRig(t)
	tgt, err := NewTarget(Uint16Value(350), Uint16Value(5), Uint16Value(0), Uint16Value(359))
	if err != nil {
		t.Fatalf("NewTarget failed: %v", err)
	}
	if tgt.Kind() != KindUint16 {
		t.Errorf("Expected kind u16, got %v", tgt.Kind())
	}

	r.knob.TurnN(sim.Clockwise, 2, func() { tgt.Poll(r.enc, ClockwiseIncreases, Wrap) })
	if got := tgt.Value(); !got.Equal(Uint16Value(0)) {
		t.Errorf("Expected wrap to 0, got %v", got)
	}

	if !tgt.SetStep(Uint16Value(45)) {
		t.Fatalf("SetStep failed")
	}
	r.knob.Turn(sim.Clockwise, func() { tgt.Poll(r.enc, ClockwiseIncreases, Wrap) })
	if got := tgt.Value(); !got.Equal(Uint16Value(45)) {
		t.Errorf("Expected 45 after a coarse step, got %v", got)
	}

	if tgt.SetStep(Uint8Value(1)) {
		t.Errorf("Expected a mismatched step to be refused")
	}
	if tgt.SetRange(Uint16Value(0), IntValue(9)) {
		t.Errorf("Expected a mismatched bound to be refused")
	}
	if !tgt.SetValue(Uint16Value(7)) || !tgt.Value().Equal(Uint16Value(7)) {
		t.Errorf("Expected SetValue to write 7")
	}
	if !tgt.SetRange(Uint16Value(0), Uint16Value(9)) {
		t.Errorf("Expected SetRange to succeed")
	}
	if !tgt.Step().Equal(Uint16Value(45)) {
		t.Errorf("Expected step 45, got %v", tgt.Step())
	}
}

func TestNewTargetMixedKinds(t *testing.T) {
	if _, err := NewTarget(IntValue(1), IntValue(1), IntValue(0), Uint32Value(5)); err == nil {
		t.Errorf("Expected an error for mixed kinds")
	}
	if _, err := NewTarget(Value{kind: Kind(20)}, Value{}, Value{}, Value{}); err == nil {
		t.Errorf("Expected an error for an invalid kind")
	}
}

func TestStepCycle(t *testing.T) {
	c := NewStepCycle([]Value{UintValue(1), UintValue(10), UintValue(100)})
	expected := []uint64{10, 100, 1, 10}

	if c.Current().Uint64() != 1 {
		t.Errorf("Expected first step 1, got %v", c.Current())
	}
	for i, want := range expected {
		if got := c.Next(); got.Uint64() != want {
			t.Errorf("Press %d: expected %d, got %v", i, want, got)
		}
	}
	if c.Index() != 1 {
		t.Errorf("Expected index 1, got %d", c.Index())
	}

	var empty StepCycle
	if empty.Next() != (Value{}) || empty.Current() != (Value{}) {
		t.Errorf("Expected zero values from an empty cycle")
	}
}
