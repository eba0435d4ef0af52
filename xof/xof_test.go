package xof_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/flexlist/xof"
)

func encodeAll(t *testing.T, vs []float64) []byte {
	t.Helper()

	e := xof.NewEncoder()
	e.Init(vs[0])
	for _, v := range vs[1:] {
		e.Append(v)
	}

	return e.Bytes()
}

func TestRoundTripRepeatedValue(t *testing.T) {
	vs := []float64{1.0, 1.0, 1.0, 1.0}
	got, err := xof.ReadAll(encodeAll(t, vs), len(vs))
	require.NoError(t, err)
	require.Equal(t, vs, got)
}

func TestRoundTripMixedDeltas(t *testing.T) {
	// The exact scenario from spec.md's end-to-end test list.
	vs := []float64{1.0, 1.0, 1.0 + math.Exp2(-10), 1.0 + math.Exp2(-20), 1.0}
	stream := encodeAll(t, vs)

	got, err := xof.ReadAll(stream, len(vs))
	require.NoError(t, err)
	require.Equal(t, len(vs), len(got))
	for i := range vs {
		require.Equal(t, math.Float64bits(vs[i]), math.Float64bits(got[i]), "value %d", i)
	}

	require.Less(t, len(stream)*8, len(vs)*64)
}

func TestRoundTripVariousPatterns(t *testing.T) {
	cases := [][]float64{
		{0.0},
		{-0.0, 0.0},
		{math.Pi, math.Pi, math.E, 1.0, -1.0, 0.0},
		{1.5, 1.5, 1.5, 2.5, 2.5, 100.25, -100.25},
		{math.Inf(1), math.Inf(1), math.Inf(-1)},
	}

	for _, vs := range cases {
		stream := encodeAll(t, vs)
		got, err := xof.ReadAll(stream, len(vs))
		require.NoError(t, err)
		require.Equal(t, len(vs), len(got))
		for i := range vs {
			require.Equal(t, math.Float64bits(vs[i]), math.Float64bits(got[i]), "value %d in case", i)
		}
	}
}

func TestReadAllUnderflow(t *testing.T) {
	vs := []float64{1.0, 2.0, 3.0}
	stream := encodeAll(t, vs)

	_, err := xof.ReadAll(stream[:1], len(vs))
	require.Error(t, err)
}

func TestSingleValueStream(t *testing.T) {
	stream := encodeAll(t, []float64{42.5})
	got, err := xof.ReadAll(stream, 1)
	require.NoError(t, err)
	require.Equal(t, []float64{42.5}, got)
}

func TestFirstValueAlwaysTakesNewWindowBranch(t *testing.T) {
	// windowValid starts false, so the very first non-zero delta after
	// Init is written as an "11" (new window) frame.
	e := xof.NewEncoder()
	e.Init(1.0)
	e.Append(2.0)
	e.Append(2.0 + math.Exp2(-1))

	stream := e.Bytes()
	// The first frame starts right after the 64-bit header.
	require.Equal(t, byte(0b11), stream[8]>>6)

	got, err := xof.ReadAll(stream, 3)
	require.NoError(t, err)
	require.Equal(t, []float64{1.0, 2.0, 2.0 + math.Exp2(-1)}, got)
}
