package streamsketch

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDGIMManagerSharedClock(t *testing.T) {
	m, err := NewDGIMManager(2, 16)
	require.NoError(t, err)

	// tick with no add_one: both bins stay at zero.
	m.Tick()
	est, err := m.CountLast(0, 0)
	require.NoError(t, err)
	require.Equal(t, uint64(0), est)

	// Multiple add_one calls at the same shared time must be legal and
	// both count (spec.md §4.3).
	m.Tick()
	require.NoError(t, m.AddOne(0))
	require.NoError(t, m.AddOne(0))
	est, err = m.CountLast(0, 0)
	require.NoError(t, err)
	require.Equal(t, uint64(2), est)

	// Bin 1 was never touched.
	est, err = m.CountLast(1, 0)
	require.NoError(t, err)
	require.Equal(t, uint64(0), est)
}

func TestDGIMManagerRejectsBadParams(t *testing.T) {
	_, err := NewDGIMManager(0, 16)
	require.Error(t, err)
	_, err = NewDGIMManager(2, 0)
	require.Error(t, err)

	m, err := NewDGIMManager(2, 16)
	require.NoError(t, err)
	require.Error(t, m.AddOne(5))
	_, err = m.CountLast(5, 0)
	require.Error(t, err)
}

func TestDGIMManagerExpiresAcrossTicks(t *testing.T) {
	m, err := NewDGIMManager(1, 4)
	require.NoError(t, err)

	m.Tick()
	require.NoError(t, m.AddOne(0))
	est, err := m.CountLast(0, 0)
	require.NoError(t, err)
	require.Equal(t, uint64(1), est)

	for i := 0; i < 10; i++ {
		m.Tick()
	}
	est, err = m.CountLast(0, 0)
	require.NoError(t, err)
	require.Equal(t, uint64(0), est)
}
