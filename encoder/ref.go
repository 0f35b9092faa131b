package encoder

// A reference is a caller-owned pointer whose element type matches a Kind:
// *uint, *int, *uint8, *uint16, *uint32, *uint64 or *float32.

type codec struct {
	load  func(ref any) (Value, bool)
	store func(ref any, v Value) bool
}

func refCodec[T Scalar](k Kind) codec {
	return codec{
		load: func(ref any) (Value, bool) {
			p, ok := ref.(*T)
			if !ok || p == nil {
				return Value{}, false
			}
			return put(k, *p), true
		},
		store: func(ref any, v Value) bool {
			p, ok := ref.(*T)
			if !ok || p == nil || v.kind != k {
				return false
			}
			*p = get[T](v)
			return true
		},
	}
}

// codecs is indexed by Kind
var codecs = [...]codec{
	KindUint:    refCodec[uint](KindUint),
	KindInt:     refCodec[int](KindInt),
	KindUint8:   refCodec[uint8](KindUint8),
	KindUint16:  refCodec[uint16](KindUint16),
	KindUint32:  refCodec[uint32](KindUint32),
	KindUint64:  refCodec[uint64](KindUint64),
	KindFloat32: refCodec[float32](KindFloat32),
}

// Load reads the scalar behind ref as kind k. It fails when ref is nil or
// does not point at k's Go type.
func Load(ref any, k Kind) (Value, bool) {
	if !k.Valid() {
		return Value{}, false
	}
	return codecs[k].load(ref)
}

// Store writes v through ref. It fails when ref does not point at the Go
// type of v's kind.
func Store(ref any, v Value) bool {
	if !v.kind.Valid() {
		return false
	}
	return codecs[v.kind].store(ref, v)
}

// NewRef allocates a variable of v's Go type holding v and returns a
// pointer to it.
func NewRef(v Value) any {
	switch v.kind {
	case KindUint:
		x := get[uint](v)
		return &x
	case KindInt:
		x := get[int](v)
		return &x
	case KindUint8:
		x := get[uint8](v)
		return &x
	case KindUint16:
		x := get[uint16](v)
		return &x
	case KindUint32:
		x := get[uint32](v)
		return &x
	case KindUint64:
		x := get[uint64](v)
		return &x
	case KindFloat32:
		x := get[float32](v)
		return &x
	}
	return nil
}
