package core_test

import (
	"testing"

	"encoderctl/core"
	"encoderctl/host/sim"
)

func TestDebounceFirstRequestAccepted(t *testing.T) {
	core.SetTime(0)
	var d core.Debounce
	if !d.TryAccept(3000) {
		t.Errorf("Expected a fresh gate to accept at time 0")
	}
	if d.TryAccept(3000) {
		t.Errorf("Expected an immediate second request to be rejected")
	}
}

func TestDebounceWindow(t *testing.T) {
	testCases := []struct {
		after    uint32
		expected bool
	}{
		{1, false},
		{2999, false},
		{3000, true},
		{10000, true},
	}

	for _, tc := range testCases {
		core.SetTime(50000)
		var d core.Debounce
		d.TryAccept(3000)
		core.SetTime(50000 + tc.after)
		if got := d.TryAccept(3000); got != tc.expected {
			t.Errorf("After %d ticks: expected %v, got %v", tc.after, tc.expected, got)
		}
	}
}

func TestDebounceRejectKeepsWindow(t *testing.T) {
	core.SetTime(1000)
	var d core.Debounce
	d.TryAccept(3000)

	// Rejections must not push the window out
	for now := uint32(1500); now < 4000; now += 500 {
		core.SetTime(now)
		if d.TryAccept(3000) {
			t.Fatalf("Unexpected accept at %d", now)
		}
	}
	core.SetTime(4000)
	if !d.TryAccept(3000) {
		t.Errorf("Expected accept exactly one interval after the first")
	}
}

func TestDebounceTickRollover(t *testing.T) {
	core.SetTime(^uint32(0) - 1000)
	var d core.Debounce
	d.TryAccept(3000)

	core.SetTime(1000) // 2001 ticks later
	if d.TryAccept(3000) {
		t.Errorf("Expected reject across the rollover")
	}
	core.SetTime(2000) // 3001 ticks later
	if !d.TryAccept(3000) {
		t.Errorf("Expected accept across the rollover")
	}
}

func TestDebounceReset(t *testing.T) {
	core.SetTime(10)
	var d core.Debounce
	d.TryAccept(3000)
	d.Reset()
	if !d.TryAccept(3000) {
		t.Errorf("Expected a reset gate to accept")
	}
}

func TestButtonPress(t *testing.T) {
	core.SetTime(0)
	g := sim.NewGPIO()
	core.SetGPIODriver(g)

	b, err := core.NewButton(7, core.PullUp)
	if err != nil {
		t.Fatalf("NewButton failed: %v", err)
	}
	if !b.ActiveLow || b.Pressed() {
		t.Fatalf("Expected an idle active-low button")
	}

	// Short glitch shorter than the settle time
	g.Drive(7, false)
	b.Update()
	sim.Advance(core.TimerFromUS(1000))
	b.Update()
	g.Drive(7, true)
	sim.Advance(core.TimerFromUS(1000))
	if b.Update() || b.Pressed() {
		t.Errorf("Expected a glitch to be ignored")
	}

	// Held press
	g.Drive(7, false)
	b.Update()
	presses := 0
	for i := 0; i < 30; i++ {
		sim.Advance(core.TimerFromUS(1000))
		if b.Update() {
			presses++
		}
	}
	if presses != 1 || !b.Pressed() {
		t.Errorf("Expected one debounced press, got %d (pressed=%v)", presses, b.Pressed())
	}

	// Release and press again
	g.Drive(7, true)
	for i := 0; i < 30; i++ {
		sim.Advance(core.TimerFromUS(1000))
		b.Update()
	}
	g.Drive(7, false)
	for i := 0; i < 30; i++ {
		sim.Advance(core.TimerFromUS(1000))
		b.Update()
	}
	if b.Presses() != 2 {
		t.Errorf("Expected 2 presses, got %d", b.Presses())
	}
}

func TestButtonInvalidPin(t *testing.T) {
	core.SetGPIODriver(sim.NewGPIO())
	if _, err := core.NewButton(core.PinNone, core.PullUp); err == nil {
		t.Errorf("Expected an error for an unset pin")
	}
}
