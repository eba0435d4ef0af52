package capacity_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/flexlist/capacity"
)

func TestTierZeroAlwaysAccepts(t *testing.T) {
	require.True(t, capacity.MayInsert(0, 1<<30, 1<<20))
	require.True(t, capacity.MayMerge(0, 1<<30))
}

func TestEmptySegmentAlwaysAccepts(t *testing.T) {
	require.True(t, capacity.MayInsert(1, 0, 1000))
}

func TestMayInsertRespectsCeiling(t *testing.T) {
	// Tier 1 ceiling is 64 bytes.
	require.True(t, capacity.MayInsert(1, 50, 10))  // 50+10+4 = 64
	require.False(t, capacity.MayInsert(1, 51, 10)) // 51+10+4 = 65
}

func TestMayInsertOverheadForLargePayload(t *testing.T) {
	// requestingBytes > 24 uses the wide overhead (4 bytes, counted twice).
	require.True(t, capacity.MayInsert(5, 900, 100)) // ceiling 1024: 900+100+8=1008
	require.False(t, capacity.MayInsert(5, 920, 100))
}

func TestMayMerge(t *testing.T) {
	require.True(t, capacity.MayMerge(1, 67))  // 67-3=64 <= 64
	require.False(t, capacity.MayMerge(1, 68)) // 68-3=65 > 64
}

func TestCeilingPanicsOnInvalidIndex(t *testing.T) {
	require.Panics(t, func() { capacity.Ceiling(-1) })
	require.Panics(t, func() { capacity.Ceiling(capacity.NumTiers) })
}
