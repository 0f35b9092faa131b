package encoder

import (
	"math"
	"testing"
)

func TestKindNames(t *testing.T) {
	testCases := []struct {
		kind Kind
		name string
	}{
		{KindUint, "uint"},
		{KindInt, "int"},
		{KindUint8, "u8"},
		{KindUint16, "u16"},
		{KindUint32, "u32"},
		{KindUint64, "u64"},
		{KindFloat32, "f32"},
	}
	for _, tc := range testCases {
		if tc.kind.String() != tc.name {
			t.Errorf("Expected %q, got %q", tc.name, tc.kind.String())
		}
		k, err := ParseKind(tc.name)
		if err != nil || k != tc.kind {
			t.Errorf("ParseKind(%q): expected %v, got %v (%v)", tc.name, tc.kind, k, err)
		}
	}
	if _, err := ParseKind("i64"); err == nil {
		t.Errorf("Expected an error for an unsupported type")
	}
	if Kind(42).Valid() {
		t.Errorf("Expected Kind(42) to be invalid")
	}
	if KindInt.Unsigned() || KindFloat32.Unsigned() || !KindUint8.Unsigned() {
		t.Errorf("Unsigned classification is wrong")
	}
}

func TestKindOf(t *testing.T) {
	checks := map[Kind]Kind{
		KindOf[uint]():    KindUint,
		KindOf[int]():     KindInt,
		KindOf[uint8]():   KindUint8,
		KindOf[uint16]():  KindUint16,
		KindOf[uint32]():  KindUint32,
		KindOf[uint64]():  KindUint64,
		KindOf[float32](): KindFloat32,
	}
	if len(checks) != 7 {
		t.Fatalf("Expected 7 distinct kinds, got %d", len(checks))
	}
	for got, want := range checks {
		if got != want {
			t.Errorf("Expected %v, got %v", want, got)
		}
	}
}

func TestParseValue(t *testing.T) {
	testCases := []struct {
		kind Kind
		in   string
		want Value
		ok   bool
	}{
		{KindUint8, "255", Uint8Value(255), true},
		{KindUint8, "256", Value{}, false},
		{KindUint16, "-1", Value{}, false},
		{KindInt, "-42", IntValue(-42), true},
		{KindUint64, "18446744073709551615", Uint64Value(math.MaxUint64), true},
		{KindFloat32, "0.25", Float32Value(0.25), true},
		{KindFloat32, "abc", Value{}, false},
		{Kind(9), "1", Value{}, false},
	}
	for _, tc := range testCases {
		got, err := ParseValue(tc.kind, tc.in)
		if (err == nil) != tc.ok {
			t.Errorf("ParseValue(%v, %q): unexpected error state %v", tc.kind, tc.in, err)
			continue
		}
		if tc.ok && !got.Equal(tc.want) {
			t.Errorf("ParseValue(%v, %q): expected %v, got %v", tc.kind, tc.in, tc.want, got)
		}
	}
}

func TestValueText(t *testing.T) {
	testCases := []struct {
		v    Value
		want string
	}{
		{IntValue(-7), "-7"},
		{Uint64Value(math.MaxUint64), "18446744073709551615"},
		{Float32Value(1.75), "1.75"},
		{FromInt64(KindUint8, 300), "44"},
		{ValueOf[uint16](9), "9"},
	}
	for _, tc := range testCases {
		if tc.v.String() != tc.want {
			t.Errorf("Expected %q, got %q", tc.want, tc.v.String())
		}
	}
}

func TestValueEqual(t *testing.T) {
	if Uint8Value(1).Equal(Uint16Value(1)) {
		t.Errorf("Values of different kinds compared equal")
	}
	nan := Float32Value(float32(math.NaN()))
	if nan.Equal(nan) {
		t.Errorf("NaN compared equal to itself")
	}
	if !Float32Value(0).Equal(Float32Value(float32(math.Copysign(0, -1)))) {
		t.Errorf("Expected +0 and -0 to compare equal")
	}
}

func TestLoadStore(t *testing.T) {
	var u8 uint8 = 9
	var f float32 = 2.5
	var n int = -3

	v, ok := Load(&u8, KindUint8)
	if !ok || !v.Equal(Uint8Value(9)) {
		t.Errorf("Expected u8 9, got %v %v", v, ok)
	}
	if _, ok := Load(&u8, KindUint16); ok {
		t.Errorf("Expected a mismatched kind to fail")
	}
	if _, ok := Load((*uint8)(nil), KindUint8); ok {
		t.Errorf("Expected a nil pointer to fail")
	}
	if _, ok := Load(u8, KindUint8); ok {
		t.Errorf("Expected a non-pointer to fail")
	}
	if _, ok := Load(&n, Kind(100)); ok {
		t.Errorf("Expected an invalid kind to fail")
	}

	if !Store(&f, Float32Value(0.5)) || f != 0.5 {
		t.Errorf("Expected f32 store to write 0.5, got %v", f)
	}
	if Store(&n, UintValue(4)) {
		t.Errorf("Expected a uint value not to store into an int")
	}
	if n != -3 {
		t.Errorf("Expected rejected store to leave -3, got %d", n)
	}

	ref := NewRef(IntValue(11))
	p, ok := ref.(*int)
	if !ok || *p != 11 {
		t.Errorf("Expected *int holding 11, got %#v", ref)
	}
	if NewRef(Value{kind: Kind(50)}) != nil {
		t.Errorf("Expected nil ref for an invalid kind")
	}
}

func TestResolve(t *testing.T) {
	testCases := []struct {
		side Side
		clk  bool
		dt   bool
		want Direction
	}{
		{ClockwiseIncreases, true, false, Increase},
		{ClockwiseIncreases, true, true, Decrease},
		{ClockwiseDecreases, true, false, Decrease},
		{ClockwiseDecreases, true, true, Increase},
	}
	for _, tc := range testCases {
		if got := resolve(tc.side, tc.clk, tc.dt); got != tc.want {
			t.Errorf("resolve(%v, %v, %v): expected %v, got %v", tc.side, tc.clk, tc.dt, tc.want, got)
		}
	}
}

func TestEdgeDetector(t *testing.T) {
	levels := []bool{false, true, true, false, true, false, false, true}
	rising := []bool{false, true, false, false, true, false, false, true}

	var d edgeDetector
	for i, level := range levels {
		if got := d.poll(level); got != rising[i] {
			t.Errorf("Sample %d: expected %v, got %v", i, rising[i], got)
		}
	}
}

func TestParseSide(t *testing.T) {
	for _, in := range []string{"cw", "clockwise"} {
		if s, err := ParseSide(in); err != nil || s != ClockwiseIncreases {
			t.Errorf("ParseSide(%q): got %v %v", in, s, err)
		}
	}
	for _, in := range []string{"ccw", "counterclockwise"} {
		if s, err := ParseSide(in); err != nil || s != ClockwiseDecreases {
			t.Errorf("ParseSide(%q): got %v %v", in, s, err)
		}
	}
	if _, err := ParseSide("left"); err == nil {
		t.Errorf("Expected an error for an unknown side")
	}
}
