package streamsketch

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDuplicateDetectorScenario(t *testing.T) {
	dd, err := NewDuplicateDetector(1000, 0.01, 3, 0.7, 5)
	require.NoError(t, err)

	text := "wire transfer payment urgent immediate action"
	first := dd.ObserveMessage(text)
	require.False(t, first.IsDuplicate)
	require.Equal(t, 0.0, first.DuplicateScore)

	second := dd.ObserveMessage(text)
	require.True(t, second.IsDuplicate)
	require.Equal(t, 1.0, second.DuplicateScore)
}

func TestDuplicateDetectorEmptyText(t *testing.T) {
	dd, err := NewDuplicateDetector(100, 0.01, 3, 0.7, 1)
	require.NoError(t, err)
	isDup, score := dd.IsDuplicate("")
	require.False(t, isDup)
	require.Equal(t, 0.0, score)
}

func TestDuplicateDetectorShingleSizeOne(t *testing.T) {
	dd, err := NewDuplicateDetector(100, 0.01, 1, 0.5, 1)
	require.NoError(t, err)
	result := dd.ObserveMessage("alpha beta gamma")
	require.False(t, result.IsDuplicate)

	partial := dd.ObserveMessage("alpha zeta eta")
	require.InDelta(t, 1.0/3.0, partial.DuplicateScore, 1e-9)
}

func TestNewDuplicateDetectorRejectsBadParams(t *testing.T) {
	_, err := NewDuplicateDetector(100, 0.01, 0, 0.5, 1)
	require.Error(t, err)
	_, err = NewDuplicateDetector(100, 0.01, 3, 0, 1)
	require.Error(t, err)
	_, err = NewDuplicateDetector(100, 0.01, 3, 1.5, 1)
	require.Error(t, err)
	_, err = NewDuplicateDetector(0, 0.01, 3, 0.5, 1)
	require.Error(t, err)
}
