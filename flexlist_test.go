package flexlist_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/flexlist"
)

func TestNewPushAndIterate(t *testing.T) {
	l := flexlist.New(6, 2)
	defer l.Free()

	l.PushTail(flexlist.Int(1))
	l.PushTail(flexlist.Int(2))
	l.PushHead(flexlist.Int(0))

	require.Equal(t, 3, l.Count())

	it := l.IterForward()
	var got []int64
	for {
		ok, err := it.Next()
		require.NoError(t, err)
		if !ok {
			break
		}
		v, ok := it.Value()
		require.True(t, ok)
		n, _ := v.Int()
		got = append(got, n)
	}

	assert.Equal(t, []int64{0, 1, 2}, got)
}

func TestNewAcceptsWithChecksumOption(t *testing.T) {
	l := flexlist.New(0, 0, flexlist.WithChecksum(true))
	defer l.Free()

	for i := int64(0); i < 5; i++ {
		l.PushTail(flexlist.Int(i))
	}

	assert.Equal(t, 5, l.Count())
}
