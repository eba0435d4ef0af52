package list

import (
	"github.com/arloliu/flexlist/capacity"
	"github.com/arloliu/flexlist/compress"
	"github.com/arloliu/flexlist/errs"
	"github.com/arloliu/flexlist/format"
	"github.com/arloliu/flexlist/segment"
)

// node is one element of the Full-tier doubly-linked list. It is either
// UNCOMPRESSED (seg non-nil, compressedBytes nil) or COMPRESSED
// (compressedBytes non-nil, seg nil); entryCount and byteLength stay valid
// in either state so Count/Bytes never need to decompress.
type node struct {
	prev, next *node

	seg             *segment.Segment
	compressedBytes []byte
	codecKind       format.CompressionKind
	checksum        uint64

	entryCount int
	byteLength int
}

// refreshCache recomputes entryCount/byteLength from seg. Call after any
// mutation of an UNCOMPRESSED node.
func (nd *node) refreshCache() {
	nd.entryCount = nd.seg.Count()
	nd.byteLength = nd.seg.ByteLength()
}

// compressNode transitions nd from UNCOMPRESSED to COMPRESSED using the
// list's configured codec. A no-op if nd is already COMPRESSED.
func (l *List) compressNode(nd *node) {
	if nd.seg == nil {
		return
	}

	raw := nd.seg.Bytes()
	compressed, err := l.codec.Compress(raw)
	if err != nil {
		panic(err)
	}

	if l.checksum {
		nd.checksum = nd.seg.Checksum()
	}

	nd.seg.Free()
	nd.seg = nil
	nd.compressedBytes = compressed
	nd.codecKind = l.codecKind
}

// decompressNode transitions nd from COMPRESSED to UNCOMPRESSED, verifying
// the stored checksum if the list was built with WithChecksum(true). A
// no-op if nd is already UNCOMPRESSED.
func (l *List) decompressNode(nd *node) {
	if nd.compressedBytes == nil {
		return
	}

	codec, err := compress.GetCodec(nd.codecKind)
	if err != nil {
		panic(err)
	}

	raw, err := codec.Decompress(nd.compressedBytes)
	if err != nil {
		panic(err)
	}

	seg := segment.FromBytes(raw)
	if l.checksum && seg.Checksum() != nd.checksum {
		panic(errs.ErrCorruptSegment)
	}

	nd.seg = seg
	nd.compressedBytes = nil
}

// ensureDecompressed makes nd readable/writable, decompressing it in place
// if necessary. A read that happens to touch a COMPRESSED node leaves it
// UNCOMPRESSED until the next applyCompressionPolicy sweep puts it back to
// sleep if it's still outside the depth window.
func (l *List) ensureDecompressed(nd *node) {
	l.decompressNode(nd)
}

// applyCompressionPolicy recomputes, from scratch, which nodes must be
// UNCOMPRESSED: the depth nodes closest to the head and the depth nodes
// closest to the tail (the two windows overlap and collapse to "every node
// uncompressed" once nodeCount <= 2*depth). Every other node is COMPRESSED.
// depth == 0 disables compression entirely, rather than degenerating into
// "every node compressed". Recomputing the whole policy on every mutation is
// simpler than tracking which individual nodes crossed the boundary, and no
// more than O(nodeCount) either way.
func (l *List) applyCompressionPolicy() {
	if l.depth == 0 {
		for nd := l.head; nd != nil; nd = nd.next {
			l.decompressNode(nd)
		}

		return
	}

	n := l.nodeCount
	idx := 0
	for nd := l.head; nd != nil; nd = nd.next {
		fromTail := n - 1 - idx
		if idx < l.depth || fromTail < l.depth {
			l.decompressNode(nd)
		} else {
			l.compressNode(nd)
		}
		idx++
	}
}

// splitOversizedNodes walks the Full-tier list and splits any node whose
// byte length exceeds the fill-tier ceiling into two, repeating until every
// node fits. Tier 0 (no ceiling) makes this a no-op.
func (l *List) splitOversizedNodes() {
	ceiling := capacity.Ceiling(l.fillIdx)
	if ceiling == 0 {
		return
	}

	for nd := l.head; nd != nil; nd = nd.next {
		l.ensureDecompressed(nd)

		for nd.byteLength > ceiling && nd.entryCount > 1 {
			mid, _ := nd.seg.Index(nd.entryCount / 2)
			tailSeg := nd.seg.Split(mid)

			nd.refreshCache()

			newNode := &node{seg: tailSeg, prev: nd, next: nd.next}
			newNode.refreshCache()

			if nd.next != nil {
				nd.next.prev = newNode
			} else {
				l.tail = newNode
			}
			nd.next = newNode
			l.nodeCount++
		}
	}
}

// fullLocate returns the node containing logical index i and the offset of
// that entry within the node's segment. i may be negative (counts from the
// tail). The node is decompressed on demand if necessary.
func (l *List) fullLocate(i int) (*node, int, bool) {
	n := l.Count()
	if n == 0 {
		return nil, -1, false
	}

	if i >= 0 {
		if i >= n {
			return nil, -1, false
		}

		remaining := i
		for nd := l.head; nd != nil; nd = nd.next {
			if remaining < nd.entryCount {
				l.ensureDecompressed(nd)
				off, _ := nd.seg.Index(remaining)

				return nd, off, true
			}
			remaining -= nd.entryCount
		}

		return nil, -1, false
	}

	steps := -1 - i
	if steps >= n {
		return nil, -1, false
	}

	remaining := steps
	for nd := l.tail; nd != nil; nd = nd.prev {
		if remaining < nd.entryCount {
			l.ensureDecompressed(nd)
			off, _ := nd.seg.Index(-1 - remaining)

			return nd, off, true
		}
		remaining -= nd.entryCount
	}

	return nil, -1, false
}

// fullPushTail appends v to the last node (creating the first node if the
// list is still empty), then re-applies the split and compression policies.
func (l *List) fullPushTail(v segment.Value) {
	if l.tail == nil {
		nd := &node{seg: segment.New()}
		nd.seg.PushTail(v)
		nd.refreshCache()
		l.head, l.tail = nd, nd
		l.nodeCount = 1
	} else {
		l.ensureDecompressed(l.tail)
		l.tail.seg.PushTail(v)
		l.tail.refreshCache()
	}

	l.splitOversizedNodes()
	l.applyCompressionPolicy()
}

// fullPushHead prepends v to the first node, then re-applies policies.
func (l *List) fullPushHead(v segment.Value) {
	if l.head == nil {
		l.fullPushTail(v)

		return
	}

	l.ensureDecompressed(l.head)
	l.head.seg.PushHead(v)
	l.head.refreshCache()

	l.splitOversizedNodes()
	l.applyCompressionPolicy()
}

// fullInsertAt inserts v so it becomes logical index i (or, if before is
// false, immediately after logical index i).
func (l *List) fullInsertAt(i int, v segment.Value, before bool) {
	nd, off, ok := l.fullLocate(i)
	if !ok {
		l.fullPushTail(v)

		return
	}

	if before {
		nd.seg.InsertBefore(off, v)
	} else {
		nd.seg.InsertAfter(off, v)
	}
	nd.refreshCache()

	l.splitOversizedNodes()
	l.applyCompressionPolicy()
}

// fullDeleteAt removes the entry at logical index i.
func (l *List) fullDeleteAt(i int) bool {
	nd, off, ok := l.fullLocate(i)
	if !ok {
		return false
	}

	nd.seg.DeleteAt(off)
	nd.refreshCache()

	if nd.entryCount == 0 {
		l.unlinkNode(nd)
	}

	l.applyCompressionPolicy()

	return true
}

// unlinkNode removes an emptied node from the Full-tier chain.
func (l *List) unlinkNode(nd *node) {
	if nd.prev != nil {
		nd.prev.next = nd.next
	} else {
		l.head = nd.next
	}
	if nd.next != nil {
		nd.next.prev = nd.prev
	} else {
		l.tail = nd.prev
	}

	if nd.seg != nil {
		nd.seg.Free()
	}
	l.nodeCount--
}

// fullReplaceAt overwrites the entry at logical index i with v.
func (l *List) fullReplaceAt(i int, v segment.Value) bool {
	nd, off, ok := l.fullLocate(i)
	if !ok {
		return false
	}

	nd.seg.Replace(off, v)
	nd.refreshCache()

	l.splitOversizedNodes()
	l.applyCompressionPolicy()

	return true
}
