package encoder

import "fmt"

// Policy selects what happens to a value stepped outside [min, max]
type Policy uint8

const (
	// Clamp saturates at the bound that was crossed
	Clamp Policy = iota
	// Wrap jumps to the opposite bound
	Wrap
)

func (p Policy) String() string {
	if p == Wrap {
		return "wrap"
	}
	return "clamp"
}

// ParsePolicy accepts "clamp" and "wrap"
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "clamp", "limit":
		return Clamp, nil
	case "wrap", "rotate":
		return Wrap, nil
	}
	return 0, fmt.Errorf("unknown overflow policy %q", s)
}

// excursion marks a step whose exact result is not representable in T
type excursion int8

const (
	inRange excursion = 0
	below   excursion = -1 // Result would be below the smallest T
	above   excursion = 1  // Result would be above the largest T
)

// advance applies one step. Integer arithmetic wraps silently in Go, so
// a carry out of T is reported as an excursion instead of a value.
func advance[T Scalar](cur, step T, dir Direction) (T, excursion) {
	if dir == Increase {
		next := cur + step
		switch {
		case step > 0 && next < cur:
			return next, above
		case step < 0 && next > cur:
			return next, below
		}
		return next, inRange
	}
	next := cur - step
	switch {
	case step > 0 && next > cur:
		return next, below
	case step < 0 && next < cur:
		return next, above
	}
	return next, inRange
}

// bound runs the overflow policy over v. The lower check runs first and the
// upper check sees its result, so an inverted range settles on max under
// Clamp. Comparisons stay in T, which is exact for every kind.
func bound[T Scalar](v T, exc excursion, min, max T, policy Policy) T {
	if exc == below || (exc == inRange && v < min) {
		if policy == Wrap {
			v = max
		} else {
			v = min
		}
		exc = inRange
	}
	if exc == above || v > max {
		if policy == Wrap {
			v = min
		} else {
			v = max
		}
	}
	return v
}

// stepAndBound is the single step operation shared by every kind.
// Unsigned decrements that would reach or cross zero are pre-empted: the
// value lands on min without the subtraction being carried out.
func stepAndBound[T Scalar](r *register, dir Direction, policy Policy) bool {
	cur, step := get[T](r.current), get[T](r.step)
	min, max := get[T](r.min), get[T](r.max)

	var next T
	exc := inRange
	if r.kind.Unsigned() && dir == Decrease && cur <= step {
		next = min
	} else {
		next, exc = advance(cur, step, dir)
	}
	out := bound(next, exc, min, max, policy)
	r.current = put(r.kind, out)
	return exc != inRange || out != next
}
