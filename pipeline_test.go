package streamsketch

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestPipeline(t *testing.T) *StreamingPipeline {
	t.Helper()
	cms, err := NewCountMinSketch(2048, 5, 3)
	require.NoError(t, err)
	fd, err := NewFrequencyDetector(cms, 10)
	require.NoError(t, err)
	bd, err := NewBurstDetector(50, 10, 5, 5, 2)
	require.NoError(t, err)
	dd, err := NewDuplicateDetector(1000, 0.01, 2, 0.7, 9)
	require.NoError(t, err)
	pipeline, err := NewStreamingPipeline(fd, bd, dd)
	require.NoError(t, err)
	return pipeline
}

func TestPipelineAggregation(t *testing.T) {
	p := newTestPipeline(t)

	_, err := p.ProcessMessage("alpha beta", nil)
	require.NoError(t, err)
	_, err = p.ProcessMessage("alpha gamma", nil)
	require.NoError(t, err)
	result, err := p.ProcessMessage("alpha beta", []string{"alpha"})
	require.NoError(t, err)

	require.GreaterOrEqual(t, result.Frequencies["alpha"], uint64(3))
	require.Equal(t, 1.0, result.Duplicate.DuplicateScore)
	require.True(t, result.Duplicate.IsDuplicate)
}

func TestPipelineRejectsNilDetectors(t *testing.T) {
	cms, err := NewCountMinSketch(8, 2, 1)
	require.NoError(t, err)
	fd, err := NewFrequencyDetector(cms, 2)
	require.NoError(t, err)

	_, err = NewStreamingPipeline(fd, nil, nil)
	require.Error(t, err)
}
