// Package segment implements the packed, variable-length entry buffer that
// spec.md calls a segment: a single contiguous byte run holding a sequence
// of tagged values, each self-describing its own length and its
// predecessor's length so the buffer can be walked in either direction
// without a side index.
package segment

import "math"

// Kind identifies which variant of Value is populated.
type Kind uint8

const (
	KindInt Kind = iota
	KindUint
	KindFloat
	KindBytes
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindUint:
		return "uint"
	case KindFloat:
		return "float"
	case KindBytes:
		return "bytes"
	default:
		return "unknown"
	}
}

// Value is the sum type every segment entry carries. Construct one with
// Int, Uint, Float, or Bytes; inspect it with Kind and the matching
// accessor.
type Value struct {
	kind Kind
	i    int64
	u    uint64
	f    float64
	b    []byte
}

func Int(v int64) Value    { return Value{kind: KindInt, i: v} }
func Uint(v uint64) Value  { return Value{kind: KindUint, u: v} }
func Float(v float64) Value { return Value{kind: KindFloat, f: v} }
func Bytes(b []byte) Value { return Value{kind: KindBytes, b: b} }

func (v Value) Kind() Kind { return v.kind }

func (v Value) Int() (int64, bool) {
	if v.kind == KindInt {
		return v.i, true
	}

	return 0, false
}

func (v Value) Uint() (uint64, bool) {
	if v.kind == KindUint {
		return v.u, true
	}

	return 0, false
}

func (v Value) Float() (float64, bool) {
	if v.kind == KindFloat {
		return v.f, true
	}

	return 0, false
}

func (v Value) Bytes() ([]byte, bool) {
	if v.kind == KindBytes {
		return v.b, true
	}

	return nil, false
}

// Equal reports whether a and b carry the same kind and value.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}

	switch a.kind {
	case KindInt:
		return a.i == b.i
	case KindUint:
		return a.u == b.u
	case KindFloat:
		return a.f == b.f || (math.IsNaN(a.f) && math.IsNaN(b.f))
	case KindBytes:
		if len(a.b) != len(b.b) {
			return false
		}
		for i := range a.b {
			if a.b[i] != b.b[i] {
				return false
			}
		}

		return true
	default:
		return false
	}
}

// canonicalize rewrites a Bytes value that parses as a canonical signed
// 64-bit decimal integer into the equivalent Int value, so that
// Push(Bytes("42")) and Push(Int(42)) land on the same wire encoding.
// Every other value passes through unchanged.
func canonicalize(v Value) Value {
	if v.kind != KindBytes {
		return v
	}

	if n, ok := parseCanonicalDecimalInt(v.b); ok {
		return Int(n)
	}

	return v
}

// parseCanonicalDecimalInt parses b as a signed 64-bit decimal integer,
// accepting only the single canonical textual form for that value: an
// optional leading '-', no leading zeros (except the literal "0"), and no
// leading '+'. Any other byte string is rejected so that non-canonical
// spellings (" 42", "+42", "007") are kept as raw bytes rather than
// silently coerced.
func parseCanonicalDecimalInt(b []byte) (int64, bool) {
	if len(b) == 0 {
		return 0, false
	}

	i := 0
	neg := false
	if b[0] == '-' {
		neg = true
		i++
	}

	if i >= len(b) {
		return 0, false
	}

	if b[i] == '0' && len(b)-i > 1 {
		return 0, false
	}

	if neg && b[i] == '0' {
		return 0, false
	}

	var v uint64
	for ; i < len(b); i++ {
		c := b[i]
		if c < '0' || c > '9' {
			return 0, false
		}

		d := uint64(c - '0')
		if v > (math.MaxUint64-d)/10 {
			return 0, false
		}

		v = v*10 + d
	}

	if neg {
		if v > uint64(math.MaxInt64)+1 {
			return 0, false
		}
		if v == uint64(math.MaxInt64)+1 {
			return math.MinInt64, true
		}

		return -int64(v), true
	}

	if v > math.MaxInt64 {
		return 0, false
	}

	return int64(v), true
}
