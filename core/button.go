package core

import "fmt"

// DefaultSettleUS is the time a button level has to stay unchanged before
// it is taken as the new state.
const DefaultSettleUS = 20000

// Button is a polled push button with level debounce and one-shot press
// detection. Wire it to a pull-up input (ActiveLow) or a pull-down input.
type Button struct {
	Pin       GPIOPin
	ActiveLow bool   // Pressed reads as low (switch to ground with pull-up)
	Settle    uint32 // Ticks a raw level must be stable before it is accepted

	pressed   bool   // Debounced state
	candidate bool   // Last raw state seen
	since     uint32 // Tick count when candidate was first seen
	presses   uint32 // Number of debounced presses
}

// NewButton configures pin as an input with the given bias and returns a
// button reading it. A pull-up bias implies active-low wiring.
func NewButton(pin GPIOPin, pull Pull) (*Button, error) {
	if !pin.Valid() {
		return nil, fmt.Errorf("button: pin not set")
	}
	if err := MustGPIO().ConfigureInput(pin, pull); err != nil {
		return nil, fmt.Errorf("button pin %d: %w", pin, err)
	}
	b := &Button{
		Pin:       pin,
		ActiveLow: pull == PullUp,
		Settle:    TimerFromUS(DefaultSettleUS),
	}
	b.candidate = b.raw()
	b.pressed = b.candidate
	b.since = GetTime()
	return b, nil
}

func (b *Button) raw() bool {
	return MustGPIO().ReadPin(b.Pin) != b.ActiveLow
}

// Update samples the button and returns true exactly once per debounced
// press. Releases are tracked but not reported.
func (b *Button) Update() bool {
	level := b.raw()
	if level != b.candidate {
		b.candidate = level
		b.since = GetTime()
		return false
	}
	if level == b.pressed || Elapsed(b.since) < b.Settle {
		return false
	}
	b.pressed = level
	if level {
		b.presses++
		return true
	}
	return false
}

// Pressed returns the debounced button state as of the last Update.
func (b *Button) Pressed() bool {
	return b.pressed
}

// Presses returns the number of debounced presses seen so far.
func (b *Button) Presses() uint32 {
	return b.presses
}
