package sim

import (
	"encoderctl/core"
)

// Rotation is the physical turning direction of a knob
type Rotation int8

const (
	Clockwise        Rotation = 1
	CounterClockwise Rotation = -1
)

// DefaultPhaseUS is the time spent in each quadrature phase of a detent.
// A detent has four phases, so one detent takes 4ms.
const DefaultPhaseUS = 1000

// Knob drives the clock and data lines of a simulated encoder.
// Both lines idle high (pull-up wiring). One detent clockwise pulls CLK low,
// then DT low, then releases CLK and DT; counter-clockwise leads with DT.
// Time is advanced with core.SetTime after every phase.
type Knob struct {
	GPIO  *GPIO
	CLK   core.GPIOPin
	DT    core.GPIOPin
	Phase uint32 // Ticks per phase
}

// NewKnob creates a knob on the given lines and drives them to idle.
func NewKnob(g *GPIO, clk, dt core.GPIOPin) *Knob {
	k := &Knob{
		GPIO:  g,
		CLK:   clk,
		DT:    dt,
		Phase: core.TimerFromUS(DefaultPhaseUS),
	}
	g.Drive(clk, true)
	g.Drive(dt, true)
	return k
}

// Advance moves the simulated clock forward
func Advance(ticks uint32) {
	core.SetTime(core.GetTime() + ticks)
}

func (k *Knob) set(pin core.GPIOPin, level bool, poll func()) {
	k.GPIO.Drive(pin, level)
	Advance(k.Phase)
	if poll != nil {
		poll()
	}
}

// Turn rotates the knob by one detent, calling poll after every phase.
func (k *Knob) Turn(r Rotation, poll func()) {
	lead, lag := k.CLK, k.DT
	if r == CounterClockwise {
		lead, lag = k.DT, k.CLK
	}
	k.set(lead, false, poll)
	k.set(lag, false, poll)
	k.set(lead, true, poll)
	k.set(lag, true, poll)
}

// TurnN rotates the knob by n detents
func (k *Knob) TurnN(r Rotation, n int, poll func()) {
	for i := 0; i < n; i++ {
		k.Turn(r, poll)
	}
}

// Bounce chatters the clock line n times, one tick per transition, leaving
// it at its previous level. The data line is left untouched.
func (k *Knob) Bounce(n int, poll func()) {
	level := k.GPIO.ReadPin(k.CLK)
	for i := 0; i < n; i++ {
		k.GPIO.Drive(k.CLK, !level)
		Advance(1)
		if poll != nil {
			poll()
		}
		k.GPIO.Drive(k.CLK, level)
		Advance(1)
		if poll != nil {
			poll()
		}
	}
}
