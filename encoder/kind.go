package encoder

import (
	"fmt"
	"strconv"
)

// Kind is the scalar representation of a regulated value. The set is closed:
// every operation switches over exactly these arms.
type Kind uint8

const (
	KindUint    Kind = iota // native unsigned int
	KindInt                 // native signed int
	KindUint8               // uint8
	KindUint16              // uint16
	KindUint32              // uint32
	KindUint64              // uint64
	KindFloat32             // float32
)

var kindNames = [...]string{
	KindUint:    "uint",
	KindInt:     "int",
	KindUint8:   "u8",
	KindUint16:  "u16",
	KindUint32:  "u32",
	KindUint64:  "u64",
	KindFloat32: "f32",
}

// Valid reports whether k is one of the supported kinds
func (k Kind) Valid() bool {
	return int(k) < len(kindNames)
}

// Unsigned reports whether k is an unsigned integer kind
func (k Kind) Unsigned() bool {
	switch k {
	case KindUint, KindUint8, KindUint16, KindUint32, KindUint64:
		return true
	}
	return false
}

func (k Kind) String() string {
	if !k.Valid() {
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// ParseKind accepts the short names used in reports and config files
// as well as the Go type names.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "uint":
		return KindUint, nil
	case "int":
		return KindInt, nil
	case "u8", "uint8":
		return KindUint8, nil
	case "u16", "uint16":
		return KindUint16, nil
	case "u32", "uint32":
		return KindUint32, nil
	case "u64", "uint64":
		return KindUint64, nil
	case "f32", "float", "float32":
		return KindFloat32, nil
	}
	return 0, fmt.Errorf("unknown scalar type %q", s)
}

// Scalar is the set of Go types a regulated value may have
type Scalar interface {
	uint | int | uint8 | uint16 | uint32 | uint64 | float32
}

// KindOf returns the Kind matching T
func KindOf[T Scalar]() Kind {
	var zero T
	switch any(zero).(type) {
	case uint:
		return KindUint
	case int:
		return KindInt
	case uint8:
		return KindUint8
	case uint16:
		return KindUint16
	case uint32:
		return KindUint32
	case uint64:
		return KindUint64
	default:
		return KindFloat32
	}
}
