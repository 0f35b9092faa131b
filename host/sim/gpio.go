// Package sim provides simulated hardware for exercising the encoder engine
// without a board: an in-memory GPIO driver and a knob that drives the
// clock/data lines the way a mechanical detent encoder does.
package sim

import (
	"fmt"
	"sync"

	"encoderctl/core"
)

// Mode is the configured direction of a simulated pin
type Mode uint8

const (
	Unconfigured Mode = iota
	Input
	Output
)

func (m Mode) String() string {
	switch m {
	case Input:
		return "input"
	case Output:
		return "output"
	default:
		return "unconfigured"
	}
}

// PinState is the simulated state of one pin
type PinState struct {
	Mode  Mode
	Pull  core.Pull
	Level bool
}

// GPIO is an in-memory core.GPIODriver. Inputs are driven from the outside
// with Drive; outputs keep the level written by SetPin.
type GPIO struct {
	mu    sync.Mutex
	pins  map[core.GPIOPin]*PinState
	reads uint32
}

// NewGPIO creates an empty simulated driver
func NewGPIO() *GPIO {
	return &GPIO{
		pins: make(map[core.GPIOPin]*PinState),
	}
}

func (g *GPIO) pin(pin core.GPIOPin) *PinState {
	p, ok := g.pins[pin]
	if !ok {
		p = &PinState{}
		g.pins[pin] = p
	}
	return p
}

// ConfigureInput configures a pin as an input. A pulled-up input idles high
// unless it has already been driven.
func (g *GPIO) ConfigureInput(pin core.GPIOPin, pull core.Pull) error {
	if !pin.Valid() {
		return fmt.Errorf("sim: invalid pin")
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	_, known := g.pins[pin]
	p := g.pin(pin)
	p.Mode = Input
	p.Pull = pull
	if !known {
		p.Level = pull == core.PullUp
	}
	return nil
}

// ConfigureOutput configures a pin as an output, initially low
func (g *GPIO) ConfigureOutput(pin core.GPIOPin) error {
	if !pin.Valid() {
		return fmt.Errorf("sim: invalid pin")
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	p := g.pin(pin)
	if p.Mode != Output {
		p.Level = false
	}
	p.Mode = Output
	p.Pull = core.PullNone
	return nil
}

// SetPin sets an output level. Unconfigured pins become outputs.
func (g *GPIO) SetPin(pin core.GPIOPin, value bool) error {
	if !pin.Valid() {
		return fmt.Errorf("sim: invalid pin")
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	p := g.pin(pin)
	switch p.Mode {
	case Input:
		return fmt.Errorf("sim: pin %d is an input", pin)
	case Unconfigured:
		p.Mode = Output
	}
	p.Level = value
	return nil
}

// ReadPin returns the level of a configured pin, false otherwise
func (g *GPIO) ReadPin(pin core.GPIOPin) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.reads++
	p, ok := g.pins[pin]
	if !ok || p.Mode == Unconfigured {
		return false
	}
	return p.Level
}

// Drive sets the externally applied level of a pin.
func (g *GPIO) Drive(pin core.GPIOPin, level bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.pin(pin).Level = level
}

// State returns a copy of the pin state and whether the pin is known
func (g *GPIO) State(pin core.GPIOPin) (PinState, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	p, ok := g.pins[pin]
	if !ok {
		return PinState{}, false
	}
	return *p, true
}

// Reads returns the number of ReadPin calls
func (g *GPIO) Reads() uint32 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.reads
}
