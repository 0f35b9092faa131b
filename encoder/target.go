package encoder

import "fmt"

// Target owns a regulated variable whose type is only known at run time,
// as when it comes from a config file. It holds one reference per operand
// and passes them to Poll.
type Target struct {
	kind    Kind
	current any
	step    any
	min     any
	max     any
}

// NewTarget allocates the four operands. All values must share one kind.
func NewTarget(initial, step, min, max Value) (*Target, error) {
	k := initial.Kind()
	if !k.Valid() {
		return nil, fmt.Errorf("unknown scalar type %s", k)
	}
	for _, v := range []Value{step, min, max} {
		if v.Kind() != k {
			return nil, fmt.Errorf("operand of type %s in a %s target", v.Kind(), k)
		}
	}
	return &Target{
		kind:    k,
		current: NewRef(initial),
		step:    NewRef(step),
		min:     NewRef(min),
		max:     NewRef(max),
	}, nil
}

// Poll runs one cycle of e on the target
func (t *Target) Poll(e *Encoder, side Side, policy Policy) Event {
	return e.Poll(side, policy, t.current, t.kind, t.step, t.min, t.max)
}

// Kind returns the type of the operands
func (t *Target) Kind() Kind {
	return t.kind
}

// Value returns the regulated value
func (t *Target) Value() Value {
	v, _ := Load(t.current, t.kind)
	return v
}

// Step returns the current step size
func (t *Target) Step() Value {
	v, _ := Load(t.step, t.kind)
	return v
}

// SetValue overwrites the regulated value. The encoder picks it up on its
// next Poll.
func (t *Target) SetValue(v Value) bool {
	return Store(t.current, v)
}

// SetStep changes the step size
func (t *Target) SetStep(v Value) bool {
	return Store(t.step, v)
}

// SetRange changes both bounds
func (t *Target) SetRange(min, max Value) bool {
	if min.Kind() != t.kind || max.Kind() != t.kind {
		return false
	}
	return Store(t.min, min) && Store(t.max, max)
}

// StepCycle rotates through a fixed list of step sizes, as a mode button
// does for coarse and fine adjustment.
type StepCycle struct {
	steps []Value
	index int
}

// NewStepCycle starts at the first entry of steps
func NewStepCycle(steps []Value) *StepCycle {
	return &StepCycle{steps: steps}
}

// Current returns the active step size
func (c *StepCycle) Current() Value {
	if len(c.steps) == 0 {
		return Value{}
	}
	return c.steps[c.index]
}

// Next advances to the following step size, wrapping after the last
func (c *StepCycle) Next() Value {
	if len(c.steps) == 0 {
		return Value{}
	}
	c.index = (c.index + 1) % len(c.steps)
	return c.steps[c.index]
}

// Index returns the position of the active step size
func (c *StepCycle) Index() int {
	return c.index
}
