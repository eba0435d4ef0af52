package list

import "github.com/arloliu/flexlist/segment"

// PushTail appends v as the new last entry, promoting tiers as needed.
func (l *List) PushTail(v segment.Value) {
	l.generation++

	switch l.tier {
	case tierSmall:
		if !l.smallFits(segment.EncodedSize(v)) {
			l.promoteSmallToMedium()
			l.mediumPushTail(v)

			return
		}
		l.small.PushTail(v)
	case tierMedium:
		l.mediumPushTail(v)
	case tierFull:
		l.fullPushTail(v)
	}
}

// PushHead inserts v as the new first entry, promoting tiers as needed.
func (l *List) PushHead(v segment.Value) {
	l.generation++

	switch l.tier {
	case tierSmall:
		if !l.smallFits(segment.EncodedSize(v)) {
			l.promoteSmallToMedium()
			l.mediumPushHead(v)

			return
		}
		l.small.PushHead(v)
	case tierMedium:
		l.mediumPushHead(v)
	case tierFull:
		l.fullPushHead(v)
	}
}

// InsertBefore inserts v immediately before logical index i.
func (l *List) InsertBefore(i int, v segment.Value) {
	l.insertAt(i, v, true)
}

// InsertAfter inserts v immediately after logical index i.
func (l *List) InsertAfter(i int, v segment.Value) {
	l.insertAt(i, v, false)
}

func (l *List) insertAt(i int, v segment.Value, before bool) {
	l.generation++

	switch l.tier {
	case tierSmall:
		if !l.smallFits(segment.EncodedSize(v)) {
			l.promoteSmallToMedium()
			l.mediumInsertAt(i, v, before)

			return
		}

		off, ok := l.small.Index(i)
		if !ok {
			l.small.PushTail(v)

			return
		}
		if before {
			l.small.InsertBefore(off, v)
		} else {
			l.small.InsertAfter(off, v)
		}
	case tierMedium:
		l.mediumInsertAt(i, v, before)
	case tierFull:
		l.fullInsertAt(i, v, before)
	}
}

// DeleteAt removes the entry at logical index i and reports whether one
// was removed.
func (l *List) DeleteAt(i int) bool {
	var removed bool

	switch l.tier {
	case tierSmall:
		off, ok := l.small.Index(i)
		if ok {
			l.small.DeleteAt(off)
		}
		removed = ok
	case tierMedium:
		removed = l.mediumDeleteAt(i)
	case tierFull:
		removed = l.fullDeleteAt(i)
	}

	if removed {
		l.generation++
	}

	return removed
}

// DeleteRange removes up to n entries starting at logical index i
// (negative i counts from the tail), clamped to the list's bounds.
func (l *List) DeleteRange(i int, n int) int {
	count := l.Count()
	if i < 0 {
		i += count
	}
	if i < 0 {
		i = 0
	}
	if i >= count {
		return 0
	}
	if i+n > count {
		n = count - i
	}

	removed := 0
	for j := 0; j < n; j++ {
		if !l.DeleteAt(i) {
			break
		}
		removed++
	}

	return removed
}

// ReplaceAt overwrites the entry at logical index i with v, reporting
// whether an entry existed at that index.
func (l *List) ReplaceAt(i int, v segment.Value) bool {
	var replaced bool

	switch l.tier {
	case tierSmall:
		off, ok := l.small.Index(i)
		if ok {
			l.small.Replace(off, v)
		}
		replaced = ok
	case tierMedium:
		replaced = l.mediumReplaceAt(i, v)
	case tierFull:
		replaced = l.fullReplaceAt(i, v)
	}

	if replaced {
		l.generation++
	}

	return replaced
}

// Index returns the value at logical index i (negative counts from the
// tail), and whether i was in range.
func (l *List) Index(i int) (segment.Value, bool) {
	switch l.tier {
	case tierSmall:
		off, ok := l.small.Index(i)
		if !ok {
			return segment.Value{}, false
		}

		return l.small.Get(off)
	case tierMedium:
		seg, off, ok := l.mediumLocate(i)
		if !ok {
			return segment.Value{}, false
		}

		return seg.Get(off)
	case tierFull:
		nd, off, ok := l.fullLocate(i)
		if !ok {
			return segment.Value{}, false
		}

		return nd.seg.Get(off)
	default:
		return segment.Value{}, false
	}
}

// Pop removes and returns the first (fromTail false) or last (fromTail
// true) entry.
func (l *List) Pop(fromTail bool) (segment.Value, bool) {
	idx := 0
	if fromTail {
		idx = -1
	}

	v, ok := l.Index(idx)
	if !ok {
		return segment.Value{}, false
	}

	l.DeleteAt(idx)

	return v, true
}

// Rotate moves the last entry to the front of the list.
func (l *List) Rotate() {
	v, ok := l.Pop(true)
	if !ok {
		return
	}

	l.PushHead(v)
}
