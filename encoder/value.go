package encoder

import (
	"fmt"
	"math"
	"strconv"
)

// Value is one scalar of a single Kind. Unsigned kinds keep their bits
// zero-extended to 64 bits, KindInt keeps them sign-extended and
// KindFloat32 keeps the IEEE-754 single precision bits.
type Value struct {
	kind Kind
	bits uint64
}

func UintValue(v uint) Value       { return Value{KindUint, uint64(v)} }
func IntValue(v int) Value         { return Value{KindInt, uint64(int64(v))} }
func Uint8Value(v uint8) Value     { return Value{KindUint8, uint64(v)} }
func Uint16Value(v uint16) Value   { return Value{KindUint16, uint64(v)} }
func Uint32Value(v uint32) Value   { return Value{KindUint32, uint64(v)} }
func Uint64Value(v uint64) Value   { return Value{KindUint64, v} }
func Float32Value(v float32) Value { return Value{KindFloat32, uint64(math.Float32bits(v))} }

// ValueOf wraps a typed scalar
func ValueOf[T Scalar](v T) Value {
	return put(KindOf[T](), v)
}

// FromInt64 converts n to kind k with Go conversion semantics.
func FromInt64(k Kind, n int64) Value {
	switch k {
	case KindUint:
		return UintValue(uint(n))
	case KindInt:
		return IntValue(int(n))
	case KindUint8:
		return Uint8Value(uint8(n))
	case KindUint16:
		return Uint16Value(uint16(n))
	case KindUint32:
		return Uint32Value(uint32(n))
	case KindUint64:
		return Uint64Value(uint64(n))
	default:
		return Float32Value(float32(n))
	}
}

// Kind returns the active representation
func (v Value) Kind() Kind {
	return v.kind
}

// Uint64 returns the magnitude of an unsigned value
func (v Value) Uint64() uint64 {
	return v.bits
}

// Int64 returns a signed value
func (v Value) Int64() int64 {
	return int64(v.bits)
}

// Float32 returns a float value
func (v Value) Float32() float32 {
	return math.Float32frombits(uint32(v.bits))
}

// Equal reports exact equality. Values of different kinds are never equal.
// Floats compare numerically, so NaN never equals itself.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	if v.kind == KindFloat32 {
		return v.Float32() == o.Float32()
	}
	return v.bits == o.bits
}

// AppendText appends the decimal form of v to dst
func (v Value) AppendText(dst []byte) []byte {
	switch {
	case v.kind == KindFloat32:
		return strconv.AppendFloat(dst, float64(v.Float32()), 'g', -1, 32)
	case v.kind == KindInt:
		return strconv.AppendInt(dst, v.Int64(), 10)
	default:
		return strconv.AppendUint(dst, v.bits, 10)
	}
}

func (v Value) String() string {
	return string(v.AppendText(nil))
}

// ParseValue parses a decimal literal as kind k
func ParseValue(k Kind, s string) (Value, error) {
	switch k {
	case KindUint, KindUint8, KindUint16, KindUint32, KindUint64:
		n, err := strconv.ParseUint(s, 10, bitSize(k))
		if err != nil {
			return Value{}, fmt.Errorf("%s value %q: %w", k, s, err)
		}
		return Value{k, n}, nil
	case KindInt:
		n, err := strconv.ParseInt(s, 10, strconv.IntSize)
		if err != nil {
			return Value{}, fmt.Errorf("%s value %q: %w", k, s, err)
		}
		return IntValue(int(n)), nil
	case KindFloat32:
		f, err := strconv.ParseFloat(s, 32)
		if err != nil {
			return Value{}, fmt.Errorf("%s value %q: %w", k, s, err)
		}
		return Float32Value(float32(f)), nil
	}
	return Value{}, fmt.Errorf("unknown scalar type %s", k)
}

func bitSize(k Kind) int {
	switch k {
	case KindUint8:
		return 8
	case KindUint16:
		return 16
	case KindUint32:
		return 32
	case KindUint64:
		return 64
	default:
		return strconv.IntSize
	}
}

// get unpacks v as T. T must match v's kind.
func get[T Scalar](v Value) T {
	var zero T
	switch any(zero).(type) {
	case float32:
		return T(math.Float32frombits(uint32(v.bits)))
	case int:
		return T(int64(v.bits))
	default:
		return T(v.bits)
	}
}

// put packs x as kind k
func put[T Scalar](k Kind, x T) Value {
	switch any(x).(type) {
	case float32:
		return Value{k, uint64(math.Float32bits(float32(x)))}
	case int:
		return Value{k, uint64(int64(x))}
	default:
		return Value{k, uint64(x)}
	}
}
