package list

import (
	"github.com/arloliu/flexlist/errs"
	"github.com/arloliu/flexlist/segment"
)

// entryCursor pins a single logical position: either an (segment, offset)
// pair (Small/Medium tiers) or a (node, offset) pair (Full tier).
type entryCursor struct {
	seg    *segment.Segment
	nd     *node
	offset int
}

func (e entryCursor) segmentOf() *segment.Segment {
	if e.nd != nil {
		return e.nd.seg
	}

	return e.seg
}

// Iter walks a List's entries in one direction, tolerating deletion of the
// entry currently under the cursor via DeleteEntry. Any other mutation made
// through the List's public API between steps invalidates the iterator.
type Iter struct {
	l       *List
	reverse bool
	started bool
	hasCur  bool
	pending bool // cur is positioned but not yet returned by Next
	cur     entryCursor
	gen     int
}

// IterForward returns an iterator starting before the first entry.
func (l *List) IterForward() *Iter { return &Iter{l: l, gen: l.generation} }

// IterReverse returns an iterator starting after the last entry.
func (l *List) IterReverse() *Iter { return &Iter{l: l, reverse: true, gen: l.generation} }

// IterAtIndex returns a forward iterator whose first Next() call lands on
// logical index i.
func (l *List) IterAtIndex(i int) *Iter {
	it := &Iter{l: l, gen: l.generation}

	cur, ok := l.entryAt(i)
	it.cur = cur
	it.hasCur = ok
	it.started = true
	it.pending = true

	return it
}

// Next advances the iterator and reports whether a new current entry
// exists. It returns errs.ErrIteratorInvalidated if the list was mutated
// through its public API since the iterator's last step.
func (it *Iter) Next() (bool, error) {
	if it.gen != it.l.generation {
		return false, errs.ErrIteratorInvalidated
	}

	if it.pending {
		it.pending = false

		return it.hasCur, nil
	}

	if !it.started {
		it.started = true

		var cur entryCursor
		var ok bool
		if it.reverse {
			cur, ok = it.l.tailEntry()
		} else {
			cur, ok = it.l.headEntry()
		}
		it.cur, it.hasCur = cur, ok

		return ok, nil
	}

	if !it.hasCur {
		return false, nil
	}

	cur, ok := it.l.advanceEntry(it.cur, it.reverse)
	it.cur, it.hasCur = cur, ok

	return ok, nil
}

// Value returns the value at the iterator's current position.
func (it *Iter) Value() (segment.Value, bool) {
	if !it.hasCur {
		return segment.Value{}, false
	}

	return it.cur.segmentOf().Get(it.cur.offset)
}

// DeleteEntry removes the entry under the cursor and re-anchors the cursor
// on the entry that would come next in the iteration direction, all in one
// step: this is the one supported mutation that does not invalidate the
// iterator. It returns errs.ErrIteratorInvalidated if the iterator has no
// current entry or was invalidated by an intervening public mutation.
func (it *Iter) DeleteEntry() error {
	if it.gen != it.l.generation {
		return errs.ErrIteratorInvalidated
	}
	if !it.hasCur {
		return errs.ErrIteratorInvalidated
	}

	cur, ok := it.l.deleteEntryAndAdvance(it.cur, it.reverse)
	it.cur, it.hasCur = cur, ok
	it.gen = it.l.generation

	return nil
}

// Release marks the iterator done. Its zero value is already safe to
// discard; Release exists so callers have a symmetric counterpart to the
// IterX constructors.
func (it *Iter) Release() {
	it.hasCur = false
	it.started = true
}

// entryAt locates logical index i as an entryCursor.
func (l *List) entryAt(i int) (entryCursor, bool) {
	switch l.tier {
	case tierSmall:
		off, ok := l.small.Index(i)
		if !ok {
			return entryCursor{}, false
		}

		return entryCursor{seg: l.small, offset: off}, true
	case tierMedium:
		seg, off, ok := l.mediumLocate(i)
		if !ok {
			return entryCursor{}, false
		}

		return entryCursor{seg: seg, offset: off}, true
	case tierFull:
		nd, off, ok := l.fullLocate(i)
		if !ok {
			return entryCursor{}, false
		}

		return entryCursor{nd: nd, offset: off}, true
	default:
		return entryCursor{}, false
	}
}

func (l *List) headEntry() (entryCursor, bool) {
	switch l.tier {
	case tierSmall:
		off := l.small.HeadOffset()
		if off < 0 {
			return entryCursor{}, false
		}

		return entryCursor{seg: l.small, offset: off}, true
	case tierMedium:
		if l.f0.Count() > 0 {
			return entryCursor{seg: l.f0, offset: l.f0.HeadOffset()}, true
		}
		if l.f1.Count() > 0 {
			return entryCursor{seg: l.f1, offset: l.f1.HeadOffset()}, true
		}

		return entryCursor{}, false
	case tierFull:
		nd := l.head
		for nd != nil && nd.entryCount == 0 {
			nd = nd.next
		}
		if nd == nil {
			return entryCursor{}, false
		}

		l.ensureDecompressed(nd)

		return entryCursor{nd: nd, offset: nd.seg.HeadOffset()}, true
	default:
		return entryCursor{}, false
	}
}

func (l *List) tailEntry() (entryCursor, bool) {
	switch l.tier {
	case tierSmall:
		off := l.small.TailOffset()
		if off < 0 {
			return entryCursor{}, false
		}

		return entryCursor{seg: l.small, offset: off}, true
	case tierMedium:
		if l.f1.Count() > 0 {
			return entryCursor{seg: l.f1, offset: l.f1.TailOffset()}, true
		}
		if l.f0.Count() > 0 {
			return entryCursor{seg: l.f0, offset: l.f0.TailOffset()}, true
		}

		return entryCursor{}, false
	case tierFull:
		nd := l.tail
		for nd != nil && nd.entryCount == 0 {
			nd = nd.prev
		}
		if nd == nil {
			return entryCursor{}, false
		}

		l.ensureDecompressed(nd)

		return entryCursor{nd: nd, offset: nd.seg.TailOffset()}, true
	default:
		return entryCursor{}, false
	}
}

// advanceEntry returns the entry adjacent to cur in the iteration
// direction, crossing segment/node boundaries as needed.
func (l *List) advanceEntry(cur entryCursor, reverse bool) (entryCursor, bool) {
	switch l.tier {
	case tierSmall:
		var off int
		var ok bool
		if reverse {
			off, ok = cur.seg.Prev(cur.offset)
		} else {
			off, ok = cur.seg.Next(cur.offset)
		}
		if !ok {
			return entryCursor{}, false
		}

		return entryCursor{seg: cur.seg, offset: off}, true
	case tierMedium:
		return l.advanceMediumEntry(cur, reverse)
	case tierFull:
		return l.advanceFullEntry(cur, reverse)
	default:
		return entryCursor{}, false
	}
}

func (l *List) advanceMediumEntry(cur entryCursor, reverse bool) (entryCursor, bool) {
	if reverse {
		if off, ok := cur.seg.Prev(cur.offset); ok {
			return entryCursor{seg: cur.seg, offset: off}, true
		}
		if cur.seg == l.f1 && l.f0.Count() > 0 {
			return entryCursor{seg: l.f0, offset: l.f0.TailOffset()}, true
		}

		return entryCursor{}, false
	}

	if off, ok := cur.seg.Next(cur.offset); ok {
		return entryCursor{seg: cur.seg, offset: off}, true
	}
	if cur.seg == l.f0 && l.f1.Count() > 0 {
		return entryCursor{seg: l.f1, offset: l.f1.HeadOffset()}, true
	}

	return entryCursor{}, false
}

func (l *List) advanceFullEntry(cur entryCursor, reverse bool) (entryCursor, bool) {
	if reverse {
		if off, ok := cur.nd.seg.Prev(cur.offset); ok {
			return entryCursor{nd: cur.nd, offset: off}, true
		}

		nd := cur.nd.prev
		for nd != nil && nd.entryCount == 0 {
			nd = nd.prev
		}
		if nd == nil {
			return entryCursor{}, false
		}

		l.ensureDecompressed(nd)

		return entryCursor{nd: nd, offset: nd.seg.TailOffset()}, true
	}

	if off, ok := cur.nd.seg.Next(cur.offset); ok {
		return entryCursor{nd: cur.nd, offset: off}, true
	}

	nd := cur.nd.next
	for nd != nil && nd.entryCount == 0 {
		nd = nd.next
	}
	if nd == nil {
		return entryCursor{}, false
	}

	l.ensureDecompressed(nd)

	return entryCursor{nd: nd, offset: nd.seg.HeadOffset()}, true
}

// deleteEntryAndAdvance removes the entry at cur and returns the entry that
// takes its place in the iteration direction, computed before the deletion
// shifts anything so no re-scan from the list head/tail is needed.
func (l *List) deleteEntryAndAdvance(cur entryCursor, reverse bool) (entryCursor, bool) {
	switch l.tier {
	case tierSmall:
		return deleteSegEntry(cur.seg, cur.offset, reverse)
	case tierMedium:
		next, ok := deleteSegEntry(cur.seg, cur.offset, reverse)
		l.rebalanceMedium()
		if ok {
			return next, true
		}

		if reverse {
			if cur.seg == l.f1 && l.f0.Count() > 0 {
				return entryCursor{seg: l.f0, offset: l.f0.TailOffset()}, true
			}
		} else if cur.seg == l.f0 && l.f1.Count() > 0 {
			return entryCursor{seg: l.f1, offset: l.f1.HeadOffset()}, true
		}

		return entryCursor{}, false
	case tierFull:
		return l.deleteFullEntry(cur, reverse)
	default:
		return entryCursor{}, false
	}
}

// deleteSegEntry deletes the entry at offset within seg and returns the
// entry adjacent to it in the iteration direction, if one remains in seg.
func deleteSegEntry(seg *segment.Segment, offset int, reverse bool) (entryCursor, bool) {
	if reverse {
		predOff, hasPred := seg.Prev(offset)
		seg.DeleteAt(offset)
		if hasPred {
			return entryCursor{seg: seg, offset: predOff}, true
		}

		return entryCursor{}, false
	}

	nextOff, hasNext := seg.DeleteAt(offset)
	if hasNext {
		return entryCursor{seg: seg, offset: nextOff}, true
	}

	return entryCursor{}, false
}

func (l *List) deleteFullEntry(cur entryCursor, reverse bool) (entryCursor, bool) {
	nd := cur.nd
	neighborNode := nd.prev
	if !reverse {
		neighborNode = nd.next
	}

	next, ok := deleteSegEntry(nd.seg, cur.offset, reverse)
	nd.refreshCache()

	if nd.entryCount == 0 {
		l.unlinkNode(nd)
	}
	l.applyCompressionPolicy()

	if ok && nd.entryCount > 0 {
		// The compression sweep above may have compressed nd.
		l.ensureDecompressed(nd)

		return entryCursor{nd: nd, offset: next.offset}, true
	}

	walker := neighborNode
	for walker != nil && walker.entryCount == 0 {
		if reverse {
			walker = walker.prev
		} else {
			walker = walker.next
		}
	}
	if walker == nil {
		return entryCursor{}, false
	}

	l.ensureDecompressed(walker)
	if reverse {
		return entryCursor{nd: walker, offset: walker.seg.TailOffset()}, true
	}

	return entryCursor{nd: walker, offset: walker.seg.HeadOffset()}, true
}
