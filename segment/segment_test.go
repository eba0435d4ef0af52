package segment_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/flexlist/segment"
)

func TestPushTailAndForwardWalk(t *testing.T) {
	s := segment.New()
	defer s.Free()

	want := []segment.Value{segment.Int(1), segment.Int(2), segment.Bytes([]byte("hello")), segment.Float(3.5)}
	for _, v := range want {
		s.PushTail(v)
	}

	require.Equal(t, len(want), s.Count())

	off := s.HeadOffset()
	for i, w := range want {
		got, ok := s.Get(off)
		require.True(t, ok, "entry %d", i)
		require.True(t, segment.Equal(w, got), "entry %d: want %v got %v", i, w, got)

		var hasNext bool
		off, hasNext = s.Next(off)
		require.Equal(t, i < len(want)-1, hasNext)
	}
}

func TestReverseWalkIsInverseOfForward(t *testing.T) {
	s := segment.New()
	defer s.Free()

	for i := 0; i < 20; i++ {
		s.PushTail(segment.Int(int64(i)))
	}

	var forward []int
	for off := s.HeadOffset(); off >= 0; {
		v, _ := s.Get(off)
		n, _ := v.Int()
		forward = append(forward, int(n))

		var ok bool
		off, ok = s.Next(off)
		if !ok {
			break
		}
	}

	var backward []int
	for off := s.TailOffset(); off >= 0; {
		v, _ := s.Get(off)
		n, _ := v.Int()
		backward = append(backward, int(n))

		var ok bool
		off, ok = s.Prev(off)
		if !ok {
			break
		}
	}

	require.Equal(t, len(forward), len(backward))
	for i := range forward {
		require.Equal(t, forward[i], backward[len(backward)-1-i])
	}
}

func TestPushHeadMaintainsOrder(t *testing.T) {
	s := segment.New()
	defer s.Free()

	for i := 0; i < 10; i++ {
		s.PushHead(segment.Int(int64(i)))
	}

	off := s.HeadOffset()
	for i := 9; i >= 0; i-- {
		v, _ := s.Get(off)
		n, _ := v.Int()
		require.Equal(t, int64(i), n)

		var ok bool
		off, ok = s.Next(off)
		require.Equal(t, i > 0, ok)
	}
}

func TestCanonicalByteStringEncodesAsInteger(t *testing.T) {
	a := segment.New()
	defer a.Free()
	b := segment.New()
	defer b.Free()

	a.PushTail(segment.Int(42))
	b.PushTail(segment.Bytes([]byte("42")))

	require.True(t, segment.Compare(a, b))

	got, ok := b.Get(b.HeadOffset())
	require.True(t, ok)
	require.Equal(t, segment.KindInt, got.Kind())
}

func TestNonCanonicalByteStringStaysBytes(t *testing.T) {
	s := segment.New()
	defer s.Free()

	for _, text := range []string{"007", "+42", "-0", " 42", "42 ", ""} {
		s.PushTail(segment.Bytes([]byte(text)))
	}

	off := s.HeadOffset()
	for range []string{"007", "+42", "-0", " 42", "42 ", ""} {
		v, ok := s.Get(off)
		require.True(t, ok)
		require.Equal(t, segment.KindBytes, v.Kind())

		var hasNext bool
		off, hasNext = s.Next(off)
		if !hasNext {
			break
		}
	}
}

func TestInsertBeforeAndDeleteAtRoundTrip(t *testing.T) {
	s := segment.New()
	defer s.Free()

	for i := 0; i < 8; i++ {
		s.PushTail(segment.Int(int64(i)))
	}

	third, _ := s.Index(3)
	s.InsertBefore(third, segment.Int(-1))

	vals := collectInts(t, s)
	require.Equal(t, []int64{0, 1, 2, -1, 3, 4, 5, 6, 7}, vals)

	off, _ := s.Index(3)
	next, ok := s.DeleteAt(off)
	require.True(t, ok)
	v, _ := s.Get(next)
	n, _ := v.Int()
	require.Equal(t, int64(3), n)

	vals = collectInts(t, s)
	require.Equal(t, []int64{0, 1, 2, 3, 4, 5, 6, 7}, vals)
}

func TestDeleteAtTailReturnsNoNext(t *testing.T) {
	s := segment.New()
	defer s.Free()

	s.PushTail(segment.Int(1))
	s.PushTail(segment.Int(2))

	tail := s.TailOffset()
	_, ok := s.DeleteAt(tail)
	require.False(t, ok)
	require.Equal(t, 1, s.Count())
}

func TestDeleteRangeClampsAtEnd(t *testing.T) {
	s := segment.New()
	defer s.Free()

	for i := 0; i < 5; i++ {
		s.PushTail(segment.Int(int64(i)))
	}

	s.DeleteRange(s.HeadOffset(), 100)
	require.Equal(t, 0, s.Count())
}

func TestReplacePreservesNeighbors(t *testing.T) {
	s := segment.New()
	defer s.Free()

	for i := 0; i < 5; i++ {
		s.PushTail(segment.Int(int64(i)))
	}

	mid, _ := s.Index(2)
	s.Replace(mid, segment.Bytes([]byte("replaced")))

	vals := collectVals(t, s)
	require.Len(t, vals, 5)
	require.Equal(t, segment.KindBytes, vals[2].Kind())
	n0, _ := vals[0].Int()
	require.Equal(t, int64(0), n0)
	n4, _ := vals[4].Int()
	require.Equal(t, int64(4), n4)
}

func TestSplitPartitionsEntries(t *testing.T) {
	s := segment.New()
	defer s.Free()

	for i := 0; i < 10; i++ {
		s.PushTail(segment.Int(int64(i)))
	}

	mid, _ := s.Index(5)
	tail := s.Split(mid)
	defer tail.Free()

	require.Equal(t, 5, s.Count())
	require.Equal(t, 5, tail.Count())
	require.Equal(t, []int64{0, 1, 2, 3, 4}, collectInts(t, s))
	require.Equal(t, []int64{5, 6, 7, 8, 9}, collectInts(t, tail))
}

func TestAppendAllMerges(t *testing.T) {
	a := segment.New()
	defer a.Free()
	b := segment.New()
	defer b.Free()

	for i := 0; i < 3; i++ {
		a.PushTail(segment.Int(int64(i)))
	}
	for i := 3; i < 6; i++ {
		b.PushTail(segment.Int(int64(i)))
	}

	a.AppendAll(b)
	require.Equal(t, []int64{0, 1, 2, 3, 4, 5}, collectInts(t, a))
}

func TestPrevLenWidthCascade(t *testing.T) {
	// Push a predecessor whose encoded size crosses the 254-byte
	// prev-length threshold, so the entry after it is written with the wide
	// 5-byte prev-length field.
	s := segment.New()
	defer s.Free()

	s.PushTail(segment.Bytes(make([]byte, 300)))
	s.PushTail(segment.Int(7))

	vals := collectVals(t, s)
	require.Len(t, vals, 2)
	n, _ := vals[1].Int()
	require.Equal(t, int64(7), n)

	// Now replace the big entry with a tiny one: the prev-length field
	// ahead of entry 2 must shrink back down to 1 byte, which goes through
	// the cascade-update path.
	head := s.HeadOffset()
	s.Replace(head, segment.Int(1))

	vals = collectVals(t, s)
	require.Len(t, vals, 2)
	n1, _ := vals[1].Int()
	require.Equal(t, int64(7), n1)
}

func TestChecksumChangesWithContent(t *testing.T) {
	a := segment.New()
	defer a.Free()
	a.PushTail(segment.Int(1))
	c1 := a.Checksum()

	a.PushTail(segment.Int(2))
	c2 := a.Checksum()

	require.NotEqual(t, c1, c2)
}

func collectInts(t *testing.T, s *segment.Segment) []int64 {
	t.Helper()

	var out []int64
	for off := s.HeadOffset(); off >= 0; {
		v, ok := s.Get(off)
		require.True(t, ok)
		n, ok := v.Int()
		require.True(t, ok, fmt.Sprintf("expected int at offset %d, got %v", off, v))
		out = append(out, n)

		var hasNext bool
		off, hasNext = s.Next(off)
		if !hasNext {
			break
		}
	}

	return out
}

func collectVals(t *testing.T, s *segment.Segment) []segment.Value {
	t.Helper()

	var out []segment.Value
	for off := s.HeadOffset(); off >= 0; {
		v, ok := s.Get(off)
		require.True(t, ok)
		out = append(out, v)

		var hasNext bool
		off, hasNext = s.Next(off)
		if !hasNext {
			break
		}
	}

	return out
}
