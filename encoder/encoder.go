// Package encoder regulates a caller-owned numeric value from a polled
// rotary encoder.
//
// Every Poll samples the clock line, looks for a rising edge, passes it
// through a debounce gate, resolves the direction from the data line and
// steps the value under a Clamp or Wrap overflow policy. The value may be
// any of the Kind scalars; it is passed by reference together with its tag
// and is only read on entry and written on exit.
//
// An Encoder is not safe for concurrent use. Exactly one polling loop may
// own it.
package encoder

import (
	"errors"
	"fmt"

	"encoderctl/core"
)

// Pins names the lines of an encoder module. Unused lines are core.PinNone.
type Pins struct {
	CLK core.GPIOPin // Clock (A) line
	DT  core.GPIOPin // Data (B) line
	SW  core.GPIOPin // Push switch
	VCC core.GPIOPin // Supply pin driven high
	GND core.GPIOPin // Ground pin driven low
}

// NoPins returns a Pins with every line unset
func NoPins() Pins {
	return Pins{
		CLK: core.PinNone,
		DT:  core.PinNone,
		SW:  core.PinNone,
		VCC: core.PinNone,
		GND: core.PinNone,
	}
}

// Event is the outcome of one Poll
type Event uint8

const (
	EventNone     Event = iota // No edge, or the encoder is not usable
	EventBounce                // Rising edge dropped by the debounce gate
	EventIncrease              // Value stepped up
	EventDecrease              // Value stepped down
)

func (e Event) String() string {
	switch e {
	case EventBounce:
		return "bounce"
	case EventIncrease:
		return "up"
	case EventDecrease:
		return "down"
	default:
		return "none"
	}
}

// ParseEvent is the inverse of Event.String
func ParseEvent(s string) (Event, error) {
	switch s {
	case "none":
		return EventNone, nil
	case "bounce":
		return EventBounce, nil
	case "up":
		return EventIncrease, nil
	case "down":
		return EventDecrease, nil
	}
	return EventNone, fmt.Errorf("unknown encoder event %q", s)
}

// Stepped reports whether the event applied a step
func (e Event) Stepped() bool {
	return e == EventIncrease || e == EventDecrease
}

// Encoder is the state of one rotary encoder
type Encoder struct {
	pins     Pins
	unit     uint8 // Instance number recorded with core events
	gpio     core.GPIODriver
	gate     core.Debounce
	interval uint32 // Debounce interval in ticks
	edge     edgeDetector
	reg      register
	button   *core.Button
}

// New configures the encoder lines on the registered GPIO driver.
// VCC is driven high and GND low, SW becomes a pull-up button, CLK and DT
// become pull-up inputs. An encoder without CLK or DT can be created but
// every Poll on it is a no-op.
func New(p Pins) (*Encoder, error) {
	gpio := core.GPIO()
	if gpio == nil {
		return nil, errors.New("encoder: GPIO driver not configured")
	}
	e := &Encoder{
		pins:     p,
		gpio:     gpio,
		interval: core.TimerFromUS(core.DefaultDebounceUS),
	}
	e.reg.dirty = true

	if p.VCC.Valid() {
		if err := gpio.ConfigureOutput(p.VCC); err != nil {
			return nil, fmt.Errorf("encoder vcc pin %d: %w", p.VCC, err)
		}
		if err := gpio.SetPin(p.VCC, true); err != nil {
			return nil, fmt.Errorf("encoder vcc pin %d: %w", p.VCC, err)
		}
	}
	if p.GND.Valid() {
		if err := gpio.ConfigureOutput(p.GND); err != nil {
			return nil, fmt.Errorf("encoder gnd pin %d: %w", p.GND, err)
		}
		if err := gpio.SetPin(p.GND, false); err != nil {
			return nil, fmt.Errorf("encoder gnd pin %d: %w", p.GND, err)
		}
	}
	if p.SW.Valid() {
		b, err := core.NewButton(p.SW, core.PullUp)
		if err != nil {
			return nil, fmt.Errorf("encoder sw: %w", err)
		}
		e.button = b
	}
	if p.DT.Valid() {
		if err := gpio.ConfigureInput(p.DT, core.PullUp); err != nil {
			return nil, fmt.Errorf("encoder dt pin %d: %w", p.DT, err)
		}
	}
	if p.CLK.Valid() {
		if err := gpio.ConfigureInput(p.CLK, core.PullUp); err != nil {
			return nil, fmt.Errorf("encoder clk pin %d: %w", p.CLK, err)
		}
		e.edge.last = gpio.ReadPin(p.CLK)
	}
	return e, nil
}

// Pins returns the configured lines
func (e *Encoder) Pins() Pins {
	return e.pins
}

// Configured reports whether both quadrature lines are set
func (e *Encoder) Configured() bool {
	return e.pins.CLK.Valid() && e.pins.DT.Valid()
}

// Button returns the push switch, or nil when SW is not connected.
// The encoder never polls it; that is left to the caller's loop.
func (e *Encoder) Button() *core.Button {
	return e.button
}

// SetUnit sets the instance number recorded with core events
func (e *Encoder) SetUnit(unit uint8) {
	e.unit = unit
}

// SetDebounce sets the minimum ticks between two accepted clock edges
func (e *Encoder) SetDebounce(ticks uint32) {
	e.interval = ticks
}

// Kind returns the kind of the stored value
func (e *Encoder) Kind() Kind {
	return e.reg.kind
}

// Current returns the stored value as of the last Poll
func (e *Encoder) Current() Value {
	return e.reg.current
}

// Invalidate forces the next Poll to reload the caller's values.
func (e *Encoder) Invalidate() {
	e.reg.dirty = true
}

// Poll runs one regulation cycle.
//
// current, step, min and max must point at variables of kind's Go type
// (see Load). The four values are reloaded whenever kind or any of them
// differs from what the encoder holds, so the range and step can be changed
// live. The resulting value is written back through current; the other
// references are only read.
//
// Poll never fails. Unset lines and unusable references make it a no-op
// that returns EventNone without touching anything.
func (e *Encoder) Poll(side Side, policy Policy, current any, kind Kind, step, min, max any) Event {
	if !e.Configured() {
		return EventNone
	}
	in, ok := loadInputs(kind, current, step, min, max)
	if !ok {
		core.RecordEvent(core.EvtNoop, e.unit, uint32(kind), 0)
		core.DebugPrintln("encoder: references do not match type " + kind.String())
		return EventNone
	}
	if e.reg.changed(kind, in) {
		e.reg.synchronize(kind, in)
		core.RecordEvent(core.EvtResync, e.unit, uint32(kind), uint32(in.current.bits))
	}

	event := EventNone
	clk := e.gpio.ReadPin(e.pins.CLK)
	if e.edge.poll(clk) {
		core.RecordEvent(core.EvtEdge, e.unit, 0, 0)
		if e.gate.TryAccept(e.interval) {
			dt := e.gpio.ReadPin(e.pins.DT)
			dir := resolve(side, clk, dt)
			if e.reg.apply(dir, policy) {
				core.RecordEvent(core.EvtBounded, e.unit, uint32(policy), uint32(e.reg.current.bits))
			}
			core.RecordEvent(core.EvtStep, e.unit, uint32(int32(dir)), uint32(e.reg.current.bits))
			event = EventIncrease
			if dir == Decrease {
				event = EventDecrease
			}
		} else {
			core.RecordEvent(core.EvtBounce, e.unit, 0, 0)
			event = EventBounce
		}
	}

	Store(current, e.reg.current)
	return event
}
