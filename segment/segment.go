package segment

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"

	"github.com/arloliu/flexlist/internal/pool"
	"github.com/arloliu/flexlist/internal/varint"
)

// headerSize is the fixed-width segment header: byteLength(4) + count(4) +
// tailOffset(4), all big-endian. Entries start immediately after it.
const headerSize = 12

// prevLenBigMarker mirrors the classic two-width previous-entry-length
// encoding (1 byte for small predecessors, a marker byte plus a 4-byte value
// for large ones) so that growing a list rarely has to touch more than the
// one entry immediately downstream of an edit.
const prevLenBigMarker = 254

// Segment is a single packed run of tagged entries, each self-describing its
// own length and its predecessor's length so the buffer can be walked
// forward or backward without an external index. It is the unit spec.md's
// capacity policy measures and the unit a tiered list promotes, splits, and
// merges.
type Segment struct {
	buf *pool.ByteBuffer
}

// New returns an empty segment drawn from the package buffer pool.
func New() *Segment {
	s := &Segment{buf: pool.GetSegmentBuffer()}
	s.buf.ExtendOrGrow(headerSize)
	s.setByteLength(headerSize)
	s.setCount(0)
	s.setTailOffsetRaw(0)

	return s
}

// FromBytes reconstructs a segment from wire bytes previously produced by
// Bytes (e.g. after a decompress round trip), copying them into a fresh
// pooled buffer.
func FromBytes(b []byte) *Segment {
	bb := pool.GetSegmentBuffer()
	bb.ExtendOrGrow(len(b))
	copy(bb.B, b)

	return &Segment{buf: bb}
}

// Free returns the segment's backing buffer to the pool. The segment must
// not be used afterward.
func (s *Segment) Free() {
	pool.PutSegmentBuffer(s.buf)
	s.buf = nil
}

// Reserve grows the segment's backing buffer so it can absorb at least
// extraBytes more of entries without reallocating, for callers who know
// roughly how large a segment will grow.
func (s *Segment) Reserve(extraBytes int) {
	s.buf.Grow(s.buf.Len() + extraBytes)
}

func (s *Segment) byteLength() int          { return int(varint.GetFixedWidth(s.buf.B[0:4], 4)) }
func (s *Segment) setByteLength(n int)      { varint.PutFixedWidth(s.buf.B[0:4], uint64(n), 4) }
func (s *Segment) count() int               { return int(varint.GetFixedWidth(s.buf.B[4:8], 4)) }
func (s *Segment) setCount(n int)           { varint.PutFixedWidth(s.buf.B[4:8], uint64(n), 4) }
func (s *Segment) tailOffsetRaw() int       { return int(varint.GetFixedWidth(s.buf.B[8:12], 4)) }
func (s *Segment) setTailOffsetRaw(off int) { varint.PutFixedWidth(s.buf.B[8:12], uint64(off), 4) }

// Count returns the number of entries in the segment.
func (s *Segment) Count() int { return s.count() }

// ByteLength returns the total encoded size of the segment, header included.
func (s *Segment) ByteLength() int { return s.byteLength() }

// BodyLength returns the encoded size of the segment's entries, header
// excluded: 0 for a genuinely empty segment. This is the quantity the
// capacity policy compares against fill-tier ceilings.
func (s *Segment) BodyLength() int { return s.byteLength() - headerSize }

// Bytes returns the segment's raw wire bytes (header + entries), suitable
// for storage or for feeding to Checksum.
func (s *Segment) Bytes() []byte { return s.buf.Bytes() }

// Checksum returns an xxhash64 digest of the segment's wire bytes, used by
// callers that persist or transmit a segment and want to detect corruption
// on the way back.
func (s *Segment) Checksum() uint64 { return xxhash.Sum64(s.buf.Bytes()) }

// HeadOffset returns the byte offset of the first entry, or -1 if the
// segment is empty.
func (s *Segment) HeadOffset() int {
	if s.count() == 0 {
		return -1
	}

	return headerSize
}

// TailOffset returns the byte offset of the last entry, or -1 if the
// segment is empty.
func (s *Segment) TailOffset() int {
	if s.count() == 0 {
		return -1
	}

	return s.tailOffsetRaw()
}

func (s *Segment) bodyEnd() int { return s.byteLength() }

// Get decodes the entry at offset.
func (s *Segment) Get(offset int) (Value, bool) {
	rec, ok := s.readAt(offset)
	if !ok {
		return Value{}, false
	}

	return rec.value, true
}

// Next returns the offset of the entry following offset, or (-1, false) at
// the end of the segment.
func (s *Segment) Next(offset int) (int, bool) {
	rec, ok := s.readAt(offset)
	if !ok {
		return -1, false
	}

	next := offset + rec.totalSize
	if next >= s.bodyEnd() {
		return -1, false
	}

	return next, true
}

// Prev returns the offset of the entry preceding offset, or (-1, false) at
// the head of the segment. This is O(1): the predecessor's total size is
// stored directly in the current entry's prev-length field.
func (s *Segment) Prev(offset int) (int, bool) {
	if offset <= headerSize {
		return -1, false
	}

	predSize, _ := readPrevLen(s.buf.B, offset)
	if predSize == 0 {
		return -1, false
	}

	return offset - predSize, true
}

// Index returns the offset of the i'th entry (0-based). Negative i counts
// from the tail, -1 being the last entry, and walks from the tail so that
// negative indexing does not pay the full forward-scan cost.
func (s *Segment) Index(i int) (int, bool) {
	n := s.count()
	if n == 0 {
		return -1, false
	}

	if i >= 0 {
		if i >= n {
			return -1, false
		}

		off := s.HeadOffset()
		for ; i > 0; i-- {
			off, _ = s.Next(off)
		}

		return off, true
	}

	steps := -1 - i
	if steps >= n {
		return -1, false
	}

	off := s.TailOffset()
	for ; steps > 0; steps-- {
		off, _ = s.Prev(off)
	}

	return off, true
}

// PushTail appends v as the new last entry and returns its offset.
func (s *Segment) PushTail(v Value) int {
	predSize := 0
	if s.count() > 0 {
		rec, _ := s.readAt(s.tailOffsetRaw())
		predSize = rec.totalSize
	}

	off := s.bodyEnd()
	s.writeEntryAt(off, predSize, v)
	s.setTailOffsetRaw(off)
	s.setCount(s.count() + 1)

	return off
}

// PushHead inserts v as the new first entry and returns its offset.
func (s *Segment) PushHead(v Value) int {
	if s.count() == 0 {
		return s.PushTail(v)
	}

	return s.InsertBefore(s.HeadOffset(), v)
}

// InsertBefore inserts v immediately before the entry at offset and returns
// the new entry's offset. offset must be a valid entry offset.
func (s *Segment) InsertBefore(offset int, v Value) int {
	predSize := 0
	if offset > headerSize {
		predSize, _ = readPrevLen(s.buf.B, offset)
	}

	// Build the new entry's bytes in a scratch buffer first so its exact
	// width (prev-len can be 1 or 5 bytes) is known before we touch the
	// segment buffer.
	scratch := pool.GetNodeScratchBuffer()
	defer pool.PutNodeScratchBuffer(scratch)
	scratch.Reset()
	scratch.ExtendOrGrow(5 + encodedSize(v))
	w := writePrevLen(scratch.B, predSize)
	w += encodeValue(scratch.B[w:], v)
	scratch.SetLength(w)

	s.buf.InsertGap(offset, w)
	copy(s.buf.B[offset:offset+w], scratch.B[:w])
	s.setByteLength(s.byteLength() + w)
	s.setCount(s.count() + 1)

	if s.tailOffsetRaw() >= offset {
		s.setTailOffsetRaw(s.tailOffsetRaw() + w)
	}

	s.fixupChain(offset+w, w)

	return offset
}

// InsertAfter inserts v immediately after the entry at offset and returns
// the new entry's offset.
func (s *Segment) InsertAfter(offset int, v Value) int {
	next, ok := s.Next(offset)
	if !ok {
		return s.PushTail(v)
	}

	return s.InsertBefore(next, v)
}

// DeleteAt removes the entry at offset. It returns the offset that now
// holds the entry which used to follow it (for iterator continuation), and
// false if the deleted entry was the last one.
func (s *Segment) DeleteAt(offset int) (int, bool) {
	rec, ok := s.readAt(offset)
	if !ok {
		panic("segment: DeleteAt: invalid offset")
	}

	predSize := 0
	if offset > headerSize {
		predSize, _ = readPrevLen(s.buf.B, offset)
	}

	wasTail := offset == s.tailOffsetRaw()
	entryEnd := offset + rec.totalSize

	s.buf.RemoveRange(offset, entryEnd)
	s.setByteLength(s.byteLength() - rec.totalSize)
	s.setCount(s.count() - 1)

	if wasTail {
		if s.count() == 0 {
			s.setTailOffsetRaw(0)
		} else {
			s.setTailOffsetRaw(offset - predSize)
		}

		return -1, false
	}

	if s.tailOffsetRaw() > offset {
		s.setTailOffsetRaw(s.tailOffsetRaw() - rec.totalSize)
	}

	s.fixupChain(offset, predSize)

	return offset, true
}

// DeleteRange removes the n entries starting at offset.
func (s *Segment) DeleteRange(offset int, n int) {
	for i := 0; i < n; i++ {
		next, ok := s.DeleteAt(offset)
		if !ok {
			return
		}

		offset = next
	}
}

// Replace overwrites the entry at offset with v and returns the (possibly
// shifted) offset of the replacement.
func (s *Segment) Replace(offset int, v Value) int {
	next, hadNext := s.DeleteAt(offset)

	if !hadNext {
		return s.PushTail(v)
	}

	return s.InsertBefore(next, v)
}

// Split moves every entry from offset to the end of s into a new segment,
// which is returned. s retains the entries before offset.
func (s *Segment) Split(offset int) *Segment {
	tail := New()

	for off := offset; off < s.bodyEnd(); {
		rec, _ := s.readAt(off)
		tail.PushTail(rec.value)
		off += rec.totalSize
	}

	s.buf.SetLength(offset)
	s.setByteLength(offset)
	s.setCount(s.count() - tail.Count())

	if s.count() == 0 {
		s.setTailOffsetRaw(0)
	} else {
		// Walk forward from the head to find the new tail's offset.
		off := headerSize
		last := off
		for off < s.bodyEnd() {
			last = off
			rec, _ := s.readAt(off)
			off += rec.totalSize
		}
		s.setTailOffsetRaw(last)
	}

	return tail
}

// AppendAll copies every entry of other onto the tail of s. other is left
// unmodified.
func (s *Segment) AppendAll(other *Segment) {
	for off := other.HeadOffset(); off >= 0; {
		rec, _ := other.readAt(off)
		s.PushTail(rec.value)
		off, _ = other.Next(off)
	}
}

// Compare reports whether a and b hold byte-identical wire encodings.
func Compare(a, b *Segment) bool {
	ab, bb := a.Bytes(), b.Bytes()
	if len(ab) != len(bb) {
		return false
	}

	for i := range ab {
		if ab[i] != bb[i] {
			return false
		}
	}

	return true
}

type entryRecord struct {
	value       Value
	totalSize   int // prev-len field + tag + payload
	prevLenSize int
}

// readAt decodes the entry starting at offset, including its prev-length
// prefix, validating that the tag is well-formed.
func (s *Segment) readAt(offset int) (entryRecord, bool) {
	if offset < headerSize || offset >= s.bodyEnd() {
		return entryRecord{}, false
	}

	_, plw := readPrevLen(s.buf.B, offset)
	v, n, ok := decodeValue(s.buf.B[offset+plw:])
	if !ok {
		return entryRecord{}, false
	}

	return entryRecord{value: v, totalSize: plw + n, prevLenSize: plw}, true
}

// writeEntryAt writes a brand-new entry (prev-length predSize, value v) at
// the end of the buffer, growing it as needed.
func (s *Segment) writeEntryAt(offset int, predSize int, v Value) {
	size := prevLenWidth(predSize) + encodedSize(v)
	s.buf.ExtendOrGrow(size)
	w := writePrevLen(s.buf.B[offset:], predSize)
	w += encodeValue(s.buf.B[offset+w:], v)
	s.setByteLength(offset + w)
}

// fixupChain repairs the prev-length field of the entry at offset (and, if
// its width changes as a result, cascades to the entry after it) to reflect
// that its predecessor's total size is now newPredSize. This is the
// cascade-update step classic packed-list encodings need whenever an edit
// changes how many bytes precede some later entry.
func (s *Segment) fixupChain(offset int, newPredSize int) {
	for offset < s.bodyEnd() {
		oldWidth := prevLenWidthAt(s.buf.B, offset)
		newWidth := prevLenWidth(newPredSize)

		if newWidth == oldWidth {
			writePrevLen(s.buf.B[offset:], newPredSize)

			return
		}

		delta := newWidth - oldWidth
		if delta > 0 {
			s.buf.InsertGap(offset+oldWidth, delta)
		} else {
			s.buf.RemoveRange(offset+newWidth, offset+oldWidth)
		}

		writePrevLen(s.buf.B[offset:], newPredSize)
		s.setByteLength(s.byteLength() + delta)

		if s.tailOffsetRaw() > offset {
			s.setTailOffsetRaw(s.tailOffsetRaw() + delta)
		}

		rec, ok := s.readAt(offset)
		if !ok {
			return
		}

		newPredSize = rec.totalSize
		offset += rec.totalSize
	}
}

// prevLenWidth returns the number of bytes needed to encode a prev-length
// field whose value is n.
func prevLenWidth(n int) int {
	if n < prevLenBigMarker {
		return 1
	}

	return 5
}

func prevLenWidthAt(buf []byte, offset int) int {
	if buf[offset] < prevLenBigMarker {
		return 1
	}

	return 5
}

// readPrevLen reads the prev-length field starting at offset, returning its
// value and width in bytes (1 or 5).
func readPrevLen(buf []byte, offset int) (int, int) {
	b0 := buf[offset]
	if b0 < prevLenBigMarker {
		return int(b0), 1
	}

	return int(binary.BigEndian.Uint32(buf[offset+1 : offset+5])), 5
}

// writePrevLen writes a prev-length field encoding value n at the start of
// dst and returns the number of bytes written (1 or 5).
func writePrevLen(dst []byte, n int) int {
	if n < prevLenBigMarker {
		dst[0] = byte(n)

		return 1
	}

	dst[0] = prevLenBigMarker
	binary.BigEndian.PutUint32(dst[1:5], uint32(n))

	return 5
}
