package encoder

// inputs are the four caller-supplied scalars of one poll
type inputs struct {
	current, step, min, max Value
}

func loadInputs(k Kind, current, step, min, max any) (inputs, bool) {
	var in inputs
	var ok bool
	if in.current, ok = Load(current, k); !ok {
		return in, false
	}
	if in.step, ok = Load(step, k); !ok {
		return in, false
	}
	if in.min, ok = Load(min, k); !ok {
		return in, false
	}
	if in.max, ok = Load(max, k); !ok {
		return in, false
	}
	return in, true
}

// register holds the regulated value, its step and its bounds. All four
// slots share kind; synchronize replaces them together.
type register struct {
	kind    Kind
	current Value
	step    Value
	min     Value
	max     Value
	dirty   bool // Reload from the caller before the next step
}

// changed reports whether the caller's inputs differ from the stored slots.
func (r *register) changed(k Kind, in inputs) bool {
	return r.dirty || r.kind != k ||
		!r.current.Equal(in.current) ||
		!r.step.Equal(in.step) ||
		!r.min.Equal(in.min) ||
		!r.max.Equal(in.max)
}

// synchronize adopts the caller's kind and values verbatim
func (r *register) synchronize(k Kind, in inputs) {
	r.kind = k
	r.current = in.current
	r.step = in.step
	r.min = in.min
	r.max = in.max
	r.dirty = false
}

// apply moves current one step in dir and re-bounds it under policy.
// It reports whether the policy had to move the value onto a bound.
func (r *register) apply(dir Direction, policy Policy) bool {
	switch r.kind {
	case KindUint:
		return stepAndBound[uint](r, dir, policy)
	case KindInt:
		return stepAndBound[int](r, dir, policy)
	case KindUint8:
		return stepAndBound[uint8](r, dir, policy)
	case KindUint16:
		return stepAndBound[uint16](r, dir, policy)
	case KindUint32:
		return stepAndBound[uint32](r, dir, policy)
	case KindUint64:
		return stepAndBound[uint64](r, dir, policy)
	case KindFloat32:
		return stepAndBound[float32](r, dir, policy)
	}
	return false
}
