package encoder

import (
	"tinygo.org/x/drivers"
)

// Binding ties an Encoder to one typed variable and its range, so callers
// that know T at compile time do not have to pass references around.
type Binding[T Scalar] struct {
	Encoder *Encoder
	Side    Side
	Policy  Policy
	Value   *T // Regulated variable, owned by the caller
	Step    T
	Min     T
	Max     T

	last Event
}

// Bind regulates *value in [min, max] by step.
func Bind[T Scalar](enc *Encoder, value *T, step, min, max T) *Binding[T] {
	return &Binding[T]{
		Encoder: enc,
		Value:   value,
		Step:    step,
		Min:     min,
		Max:     max,
	}
}

// Poll runs one cycle of the bound encoder
func (b *Binding[T]) Poll() Event {
	b.last = b.Encoder.Poll(b.Side, b.Policy, b.Value, KindOf[T](), &b.Step, &b.Min, &b.Max)
	return b.last
}

// Update implements drivers.Sensor so a binding can sit in the same polling
// loop as other TinyGo sensors. which is ignored: any measurement request
// runs exactly one Poll.
func (b *Binding[T]) Update(which drivers.Measurement) error {
	b.Poll()
	return nil
}

// Last returns the event of the most recent Poll
func (b *Binding[T]) Last() Event {
	return b.last
}

var _ drivers.Sensor = (*Binding[uint32])(nil)
