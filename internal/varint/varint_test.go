package varint_test

import (
	"testing"

	"github.com/arloliu/flexlist/internal/varint"
	"github.com/stretchr/testify/require"
)

func TestTaggedU64RoundTrip(t *testing.T) {
	values := []uint64{0, 1, 63, 64, 127, 128, 300, 1 << 20, 1 << 40, ^uint64(0)}

	for _, v := range values {
		buf := make([]byte, varint.MaxTaggedLen)
		n := varint.PutTaggedU64(buf, v)
		require.Equal(t, varint.LenTaggedU64(v), n)

		got, read := varint.GetTaggedU64(buf[:n])
		require.Equal(t, n, read)
		require.Equal(t, v, got)
	}
}

func TestGetTaggedU64NeedsMoreBytes(t *testing.T) {
	_, n := varint.GetTaggedU64(nil)
	require.Equal(t, 0, n)

	// A varint with the continuation bit set but no terminating byte.
	_, n = varint.GetTaggedU64([]byte{0x80, 0x80})
	require.Equal(t, 0, n)
}

func TestFixedWidthRoundTrip(t *testing.T) {
	for _, w := range []int{1, 2, 3, 4, 8} {
		buf := make([]byte, w)
		var v uint64 = 0x0102030405060708
		varint.PutFixedWidth(buf, v, w)
		got := varint.GetFixedWidth(buf, w)

		mask := uint64(1)<<(8*w) - 1
		if w == 8 {
			mask = ^uint64(0)
		}
		require.Equal(t, v&mask, got)
	}
}

func TestBitstreamSetGet(t *testing.T) {
	var word uint64
	word = varint.BitstreamSet(word, 0, 2, 0b11)
	word = varint.BitstreamSet(word, 2, 6, 0b101010)
	word = varint.BitstreamSet(word, 8, 6, 31)

	require.Equal(t, uint64(0b11), varint.BitstreamGet(word, 0, 2))
	require.Equal(t, uint64(0b101010), varint.BitstreamGet(word, 2, 6))
	require.Equal(t, uint64(31), varint.BitstreamGet(word, 8, 6))
}

func TestBitstreamFullWidth(t *testing.T) {
	word := varint.BitstreamSet(0, 0, 64, 0xDEADBEEFCAFEBABE)
	require.Equal(t, uint64(0xDEADBEEFCAFEBABE), varint.BitstreamGet(word, 0, 64))
}
