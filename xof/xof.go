// Package xof implements the XOR-delta float64 stream codec: each value
// after the first is represented as its XOR against the previous value,
// bit-packed into one of three frame shapes depending on whether the
// significant-bit window matches the previously described one.
//
// The frame shapes and state machine are grounded on the teacher's Gorilla
// value encoder (internal/encoding/numeric_gorilla.go) in
// github.com/arloliu/mebo, but the header field widths differ: this codec's
// "new window" frame carries a 6-bit leading-zero count and a 6-bit
// significant-bit length, not the teacher's narrower fields.
package xof

import (
	"math"
	"math/bits"

	"github.com/arloliu/flexlist/errs"
)

// Encoder produces a bit-packed XOR-delta stream from a sequence of
// float64 values.
type Encoder struct {
	w           bitWriter
	prevBits    uint64
	prevLZ      int
	prevTZ      int
	prevL       int
	windowValid bool
	count       int
}

// NewEncoder returns an Encoder ready for Init.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// Init writes the raw 64-bit representation of v0 as the stream header.
func (e *Encoder) Init(v0 float64) {
	bits0 := math.Float64bits(v0)
	e.w.writeBits(bits0, 64)
	e.prevBits = bits0
	e.windowValid = false
	e.count = 1
}

// Append encodes the next value against the previously appended (or
// Init'd) value.
func (e *Encoder) Append(vNew float64) {
	newBits := math.Float64bits(vNew)
	x := e.prevBits ^ newBits

	if x == 0 {
		e.w.writeBit(0)
		e.prevBits = newBits
		e.count++

		return
	}

	lz := bits.LeadingZeros64(x)
	tz := bits.TrailingZeros64(x)
	L := 64 - lz - tz

	if e.windowValid && lz >= e.prevLZ && tz >= e.prevTZ && L <= e.prevL {
		e.w.writeBits(0b10, 2)
		e.w.writeBits(x>>uint(e.prevTZ), e.prevL)
	} else {
		e.w.writeBits(0b11, 2)
		e.w.writeBits(uint64(lz), 6)
		e.w.writeBits(uint64(L), 6)
		e.w.writeBits(x>>uint(tz), L)
		e.prevLZ, e.prevTZ, e.prevL = lz, tz, L
		e.windowValid = true
	}

	e.prevBits = newBits
	e.count++
}

// Count returns the number of values written so far (Init counts as one).
func (e *Encoder) Count() int { return e.count }

// Bytes returns the encoded stream, flushing any partial trailing byte with
// zero padding.
func (e *Encoder) Bytes() []byte {
	e.w.flush()

	return e.w.buf
}

// ReadAll decodes n values (n must equal the number of values originally
// written, including the Init value; the stream carries no length prefix)
// from stream.
func ReadAll(stream []byte, n int) ([]float64, error) {
	if n <= 0 {
		return nil, nil
	}

	r := newBitReader(stream)

	bits0 := r.readBits(64)
	if r.exhausted {
		return nil, errs.ErrDecodeUnderflow
	}

	out := make([]float64, n)
	out[0] = math.Float64frombits(bits0)

	prevBits := bits0
	var prevLZ, prevTZ, prevL int

	for i := 1; i < n; i++ {
		b0 := r.readBit()
		if r.exhausted {
			return nil, errs.ErrDecodeUnderflow
		}

		if b0 == 0 {
			out[i] = out[i-1]

			continue
		}

		b1 := r.readBit()
		if r.exhausted {
			return nil, errs.ErrDecodeUnderflow
		}

		var cur uint64
		if b1 == 0 {
			payload := r.readBits(prevL)
			if r.exhausted {
				return nil, errs.ErrDecodeUnderflow
			}

			cur = prevBits ^ (payload << uint(prevTZ))
		} else {
			lz := int(r.readBits(6))
			L := int(r.readBits(6))
			if r.exhausted {
				return nil, errs.ErrDecodeUnderflow
			}

			// A 64-bit window does not fit the 6-bit field and is written
			// as 0; a new-window frame never carries an empty window.
			if L == 0 {
				L = 64
			}

			tz := 64 - lz - L
			payload := r.readBits(L)
			if r.exhausted {
				return nil, errs.ErrDecodeUnderflow
			}

			cur = prevBits ^ (payload << uint(tz))
			prevLZ, prevTZ, prevL = lz, tz, L
		}

		out[i] = math.Float64frombits(cur)
		prevBits = cur
	}

	_ = prevLZ

	return out, nil
}
