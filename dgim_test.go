package streamsketch

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDGIMWindow(t *testing.T) {
	d, err := NewDGIM(16)
	require.NoError(t, err)

	for i := 0; i < 8; i++ {
		require.NoError(t, d.Push(1))
	}
	// DGIM's estimate is an approximation, not an exact count: the error
	// bound (spec.md §8) is half the oldest live bucket's size, so after
	// 8 ones the estimate lands close to, but not necessarily exactly, 8.
	est := d.Estimate()
	require.GreaterOrEqual(t, est, uint64(4))
	require.LessOrEqual(t, est, uint64(8))

	prev := est
	for i := 0; i < 16; i++ {
		require.NoError(t, d.Push(0))
		cur := d.Estimate()
		require.LessOrEqual(t, cur, prev)
		prev = cur
	}
	require.Equal(t, uint64(0), d.Estimate())
}

func TestDGIMRejectsBadParams(t *testing.T) {
	_, err := NewDGIM(0)
	require.Error(t, err)

	d, err := NewDGIM(10)
	require.NoError(t, err)
	require.Error(t, d.Push(2))
	require.Error(t, d.Push(-1))
}

func TestDGIMBucketInvariants(t *testing.T) {
	d, err := NewDGIM(64)
	require.NoError(t, err)
	for i := 0; i < 64; i++ {
		require.NoError(t, d.Push(i%2))
	}
	bySize := map[uint64]int{}
	for _, b := range d.buckets {
		bySize[b.size]++
		require.True(t, isPowerOfTwo(b.size))
	}
	for _, count := range bySize {
		require.LessOrEqual(t, count, 2)
	}
}

func isPowerOfTwo(n uint64) bool {
	return n > 0 && n&(n-1) == 0
}

func TestDGIMMonotonicityUnderZeros(t *testing.T) {
	d, err := NewDGIM(32)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		require.NoError(t, d.Push(1))
	}
	before := d.Estimate()
	require.NoError(t, d.Push(0))
	require.LessOrEqual(t, d.Estimate(), before)
}
