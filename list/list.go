package list

import (
	"github.com/arloliu/flexlist/capacity"
	"github.com/arloliu/flexlist/compress"
	"github.com/arloliu/flexlist/errs"
	"github.com/arloliu/flexlist/format"
	"github.com/arloliu/flexlist/internal/options"
	"github.com/arloliu/flexlist/segment"
)

// tier identifies which of the three physical representations a List
// currently uses.
type tier uint8

const (
	tierInvalid tier = iota
	tierSmall
	tierMedium
	tierFull
)

// List is the tiered container handle. Exactly one of the tier-specific
// field groups is meaningful at any time, selected by tier.
type List struct {
	tier tier

	fillIdx int
	depth   int

	// generation increments on every mutation made through the public API
	// (not through an Iter's own DeleteEntry, which re-anchors itself).
	// An Iter captures this at each successful step and treats a mismatch
	// on the next step as invalidation.
	generation int

	codec     compress.Codec
	codecKind format.CompressionKind
	checksum  bool

	// tierSmall
	small *segment.Segment

	// tierMedium
	f0, f1 *segment.Segment

	// tierFull
	head, tail *node
	nodeCount  int
}

// New creates an empty list at the Small tier, configured with fillIdx (an
// index into capacity.Ceilings) and depth (how many nodes at each end of
// the Full tier stay uncompressed).
func New(fillIdx int, depth int, opts ...Option) *List {
	if fillIdx < 0 || fillIdx >= capacity.NumTiers {
		panic(errs.ErrInvalidFillTier)
	}
	if depth < 0 || depth > 255 {
		panic(errs.ErrInvalidDepth)
	}

	cfg := defaultConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		panic(err)
	}

	l := &List{
		tier:      tierSmall,
		fillIdx:   fillIdx,
		depth:     depth,
		codec:     cfg.codec,
		codecKind: cfg.codecKind,
		checksum:  cfg.checksum,
		small:     segment.New(),
	}

	if cfg.capHint > 0 {
		l.small.Reserve(cfg.capHint)
	}

	return l
}

// Count returns the number of entries in the list.
func (l *List) Count() int {
	switch l.tier {
	case tierSmall:
		return l.small.Count()
	case tierMedium:
		return l.f0.Count() + l.f1.Count()
	case tierFull:
		n := 0
		for nd := l.head; nd != nil; nd = nd.next {
			n += nd.entryCount
		}

		return n
	default:
		return 0
	}
}

// Bytes returns the total encoded size of the list, summed across every
// constituent segment (decompressing nothing to compute it: Full-tier
// nodes cache their uncompressed byte length).
func (l *List) Bytes() int {
	switch l.tier {
	case tierSmall:
		return l.small.ByteLength()
	case tierMedium:
		return l.f0.ByteLength() + l.f1.ByteLength()
	case tierFull:
		n := 0
		for nd := l.head; nd != nil; nd = nd.next {
			n += nd.byteLength
		}

		return n
	default:
		return 0
	}
}

// Free releases every segment the list owns. The list must not be used
// afterward.
func (l *List) Free() {
	switch l.tier {
	case tierSmall:
		l.small.Free()
	case tierMedium:
		l.f0.Free()
		l.f1.Free()
	case tierFull:
		for nd := l.head; nd != nil; {
			next := nd.next
			if nd.seg != nil {
				nd.seg.Free()
			}
			nd = next
		}
	}

	l.tier = tierInvalid
}

// Dup returns a deep copy of l: an independent list with identical entries
// and zero storage sharing.
func (l *List) Dup() *List {
	dup := New(l.fillIdx, l.depth, WithCodec(l.codec, l.codecKind), WithChecksum(l.checksum))
	dup.Free() // discard the fresh Small segment; we'll rebuild tier-faithfully below

	switch l.tier {
	case tierSmall:
		dup.tier = tierSmall
		dup.small = segment.New()
		dup.small.AppendAll(l.small)
	case tierMedium:
		dup.tier = tierMedium
		dup.f0 = segment.New()
		dup.f0.AppendAll(l.f0)
		dup.f1 = segment.New()
		dup.f1.AppendAll(l.f1)
	case tierFull:
		dup.tier = tierFull
		var prev *node
		for nd := l.head; nd != nil; nd = nd.next {
			seg := segment.New()
			if nd.seg != nil {
				seg.AppendAll(nd.seg)
			} else {
				codec, err := compress.GetCodec(nd.codecKind)
				if err != nil {
					panic(err)
				}
				raw, err := codec.Decompress(nd.compressedBytes)
				if err != nil {
					panic(errs.ErrCorruptSegment)
				}
				tmp := segment.FromBytes(raw)
				seg.AppendAll(tmp)
				tmp.Free()
			}

			newNode := &node{seg: seg}
			newNode.refreshCache()
			if prev == nil {
				dup.head = newNode
			} else {
				prev.next = newNode
				newNode.prev = prev
			}
			prev = newNode
			dup.nodeCount++
		}
		dup.tail = prev
	}

	return dup
}
