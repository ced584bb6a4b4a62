package streamsketch

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestFrequencyDetector(t *testing.T, topK int) *FrequencyDetector {
	t.Helper()
	cms, err := NewCountMinSketch(2048, 5, 11)
	require.NoError(t, err)
	fd, err := NewFrequencyDetector(cms, topK)
	require.NoError(t, err)
	return fd
}

func TestFrequencyDetectorObserveAndEstimate(t *testing.T) {
	fd := newTestFrequencyDetector(t, 2)
	require.NoError(t, fd.ObserveMessage("alpha beta alpha"))
	require.NoError(t, fd.ObserveMessage("alpha"))

	require.GreaterOrEqual(t, fd.EstimateFrequency("alpha"), uint64(3))
	require.Equal(t, uint64(2), fd.MessageCount())
}

func TestFrequencyDetectorTopKBounded(t *testing.T) {
	fd := newTestFrequencyDetector(t, 2)
	require.NoError(t, fd.ObserveMessage("alpha beta gamma delta"))
	fd.PeriodicUpdate([]string{"alpha", "beta", "gamma", "delta"})
	require.LessOrEqual(t, fd.TrackedCount(), 2)
}

func TestFrequencyDetectorReplacesMinimum(t *testing.T) {
	fd := newTestFrequencyDetector(t, 1)
	for i := 0; i < 3; i++ {
		require.NoError(t, fd.ObserveMessage("common"))
	}
	require.NoError(t, fd.ObserveMessage("rare"))

	fd.PeriodicUpdate([]string{"common"})
	require.Equal(t, 1, fd.TrackedCount())

	for i := 0; i < 10; i++ {
		require.NoError(t, fd.ObserveMessage("rare"))
	}
	fd.PeriodicUpdate([]string{"rare"})

	analysis := fd.GetFrequencyAnalysis(1)
	require.Len(t, analysis, 1)
	require.Equal(t, "rare", analysis[0].Token)
}

func TestFrequencyDetectorEstimateBatchLowercases(t *testing.T) {
	fd := newTestFrequencyDetector(t, 5)
	require.NoError(t, fd.ObserveMessage("alpha"))
	results := fd.EstimateBatch([]string{"ALPHA"})
	require.GreaterOrEqual(t, results["ALPHA"], uint64(1))
}

func TestNewFrequencyDetectorRejectsBadParams(t *testing.T) {
	cms, err := NewCountMinSketch(8, 2, 1)
	require.NoError(t, err)
	_, err = NewFrequencyDetector(nil, 5)
	require.Error(t, err)
	_, err = NewFrequencyDetector(cms, 0)
	require.Error(t, err)
}
