package list

import (
	"github.com/arloliu/flexlist/capacity"
	"github.com/arloliu/flexlist/segment"
)

// --- Small tier -------------------------------------------------------

// smallFits reports whether the Small segment can absorb one more entry of
// the given encoded size without promoting.
func (l *List) smallFits(reqBytes int) bool {
	return capacity.MayInsert(l.fillIdx, l.small.BodyLength(), reqBytes)
}

// promoteSmallToMedium splits the lone Small segment at its midpoint entry
// count (not lazily: the split happens the moment an insert no longer
// fits, rather than waiting for a subsequent oversize condition) into f0
// (the first half) and f1 (the second half).
func (l *List) promoteSmallToMedium() {
	mid := l.small.Count() / 2
	off, ok := l.small.Index(mid)

	l.f0 = l.small
	if ok {
		l.f1 = l.f0.Split(off)
	} else {
		l.f1 = segment.New()
	}
	l.small = nil
	l.tier = tierMedium
}

// --- Medium tier -------------------------------------------------------

// mediumLocate returns which of the two Medium segments holds logical
// index i, and i's offset within it.
func (l *List) mediumLocate(i int) (*segment.Segment, int, bool) {
	n0 := l.f0.Count()
	total := n0 + l.f1.Count()
	if i < 0 {
		i += total
	}
	if i < 0 || i >= total {
		return nil, -1, false
	}

	if i < n0 {
		off, _ := l.f0.Index(i)

		return l.f0, off, true
	}

	off, _ := l.f1.Index(i - n0)

	return l.f1, off, true
}

// mediumPushTail appends v to the back segment, splitting or promoting as
// needed. Medium only ever splits f0 (when f1 is still empty, the common
// single-segment-growing case); if both segments are already occupied and
// f1 still can't absorb the insert, the list promotes straight to Full
// rather than modeling a third Medium segment.
func (l *List) mediumPushTail(v segment.Value) {
	reqBytes := segment.EncodedSize(v)

	if l.f1.Count() == 0 {
		if capacity.MayInsert(l.fillIdx, l.f0.BodyLength(), reqBytes) {
			l.f0.PushTail(v)
			l.rebalanceMedium()
			l.maybePromoteMediumBySum()

			return
		}

		l.splitF0Midpoint()
	}

	if capacity.MayInsert(l.fillIdx, l.f1.BodyLength(), reqBytes) {
		l.f1.PushTail(v)
		l.rebalanceMedium()
		l.maybePromoteMediumBySum()

		return
	}

	l.promoteMediumToFull()
	l.fullPushTail(v)
}

// mediumPushHead prepends v to the front segment, mirroring mediumPushTail.
func (l *List) mediumPushHead(v segment.Value) {
	reqBytes := segment.EncodedSize(v)

	if l.f1.Count() == 0 {
		if capacity.MayInsert(l.fillIdx, l.f0.BodyLength(), reqBytes) {
			l.f0.PushHead(v)
			l.rebalanceMedium()
			l.maybePromoteMediumBySum()

			return
		}

		l.splitF0Midpoint()
	}

	if capacity.MayInsert(l.fillIdx, l.f0.BodyLength(), reqBytes) {
		l.f0.PushHead(v)
		l.rebalanceMedium()
		l.maybePromoteMediumBySum()

		return
	}

	l.promoteMediumToFull()
	l.fullPushHead(v)
}

// mediumInsertAt inserts v so it becomes logical index i (or immediately
// after i, if before is false).
func (l *List) mediumInsertAt(i int, v segment.Value, before bool) {
	seg, off, ok := l.mediumLocate(i)
	if !ok {
		l.mediumPushTail(v)

		return
	}

	if before {
		seg.InsertBefore(off, v)
	} else {
		seg.InsertAfter(off, v)
	}

	l.rebalanceMedium()
	l.maybePromoteMediumBySum()
}

// mediumDeleteAt removes the entry at logical index i.
func (l *List) mediumDeleteAt(i int) bool {
	seg, off, ok := l.mediumLocate(i)
	if !ok {
		return false
	}

	seg.DeleteAt(off)
	l.rebalanceMedium()

	return true
}

// mediumReplaceAt overwrites the entry at logical index i with v.
func (l *List) mediumReplaceAt(i int, v segment.Value) bool {
	seg, off, ok := l.mediumLocate(i)
	if !ok {
		return false
	}

	seg.Replace(off, v)
	l.maybePromoteMediumBySum()

	return true
}

// splitF0Midpoint moves the back half of f0 into f1 when f1 is still
// empty (the common single-segment-growing case this tier simplifies to).
func (l *List) splitF0Midpoint() {
	mid := l.f0.Count() / 2
	off, ok := l.f0.Index(mid)
	if !ok {
		return
	}

	moved := l.f0.Split(off)
	l.f1.AppendAll(moved)
	moved.Free()
}

// rebalanceMedium keeps the two segments from drifting too far out of
// balance: f0 is always the non-empty one when only one side has entries,
// and one entry shifts across the boundary whenever one side holds more
// than twice the other's count.
func (l *List) rebalanceMedium() {
	if l.f0.Count() == 0 && l.f1.Count() > 0 {
		l.f0, l.f1 = l.f1, l.f0
	}

	n0, n1 := l.f0.Count(), l.f1.Count()
	switch {
	case n0 > 2*n1 && n1 > 0:
		off, ok := l.f0.Index(-1)
		if !ok {
			return
		}
		v, _ := l.f0.Get(off)
		l.f0.DeleteAt(off)
		l.f1.PushHead(v)
	case n1 > 2*n0 && n0 > 0:
		off, ok := l.f1.Index(0)
		if !ok {
			return
		}
		v, _ := l.f1.Get(off)
		l.f1.DeleteAt(off)
		l.f0.PushTail(v)
	}
}

// maybePromoteMediumBySum promotes Medium to Full once the two segments'
// combined size exceeds three times the fill-tier ceiling.
func (l *List) maybePromoteMediumBySum() {
	ceiling := capacity.Ceiling(l.fillIdx)
	if ceiling == 0 {
		return
	}

	if l.f0.ByteLength()+l.f1.ByteLength() <= 3*ceiling {
		return
	}

	l.promoteMediumToFull()
}

// promoteMediumToFull converts the two Medium segments directly into the
// first one or two nodes of a Full-tier list.
func (l *List) promoteMediumToFull() {
	head := &node{seg: l.f0}
	head.refreshCache()

	l.head = head
	l.tail = head
	l.nodeCount = 1

	if l.f1.Count() > 0 {
		tailNode := &node{seg: l.f1, prev: head}
		tailNode.refreshCache()
		head.next = tailNode
		l.tail = tailNode
		l.nodeCount = 2
	} else {
		l.f1.Free()
	}

	l.f0, l.f1 = nil, nil
	l.tier = tierFull

	l.splitOversizedNodes()
	l.applyCompressionPolicy()
}
