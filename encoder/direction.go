package encoder

import "fmt"

// Side maps the physical rotation onto the sign of a step
type Side uint8

const (
	// ClockwiseIncreases adds the step on clockwise rotation
	ClockwiseIncreases Side = iota
	// ClockwiseDecreases subtracts the step on clockwise rotation
	ClockwiseDecreases
)

func (s Side) String() string {
	if s == ClockwiseDecreases {
		return "ccw"
	}
	return "cw"
}

// ParseSide accepts "cw" (clockwise increases) and "ccw"
func ParseSide(s string) (Side, error) {
	switch s {
	case "cw", "clockwise":
		return ClockwiseIncreases, nil
	case "ccw", "counterclockwise":
		return ClockwiseDecreases, nil
	}
	return 0, fmt.Errorf("unknown rotation side %q", s)
}

// Direction is the sign of a step
type Direction int8

const (
	Decrease Direction = -1
	Increase Direction = 1
)

func (d Direction) String() string {
	if d == Decrease {
		return "down"
	}
	return "up"
}

// Phase is the quadrature relationship seen at a rising clock edge
type Phase uint8

const (
	PhaseALeads Phase = iota // Data differs from clock: clock line moved last
	PhaseBLeads              // Data equals clock: data line moved first
)

// phaseOf classifies one sample of the two lines
func phaseOf(clk, dt bool) Phase {
	if dt != clk {
		return PhaseALeads
	}
	return PhaseBLeads
}

// resolve decides the step direction from a single sample taken at an
// accepted clock edge. Only the clock line is debounced and edge-gated, the
// data line is sampled once per accepted edge.
func resolve(side Side, clk, dt bool) Direction {
	dir := Decrease
	if phaseOf(clk, dt) == PhaseALeads {
		dir = Increase
	}
	if side == ClockwiseDecreases {
		dir = -dir
	}
	return dir
}

// edgeDetector reports rising transitions of the clock line
type edgeDetector struct {
	last bool
}

// poll records level and returns true on a low to high transition
func (d *edgeDetector) poll(level bool) bool {
	rising := level && !d.last
	d.last = level
	return rising
}
