package streamsketch

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMetricsRecordAndSnapshot(t *testing.T) {
	m := NewMetrics()
	m.RecordMessage(0)
	m.RecordMessage(0)
	m.RecordDuplicateResult(0, true)
	m.RecordDuplicateResult(0, false)
	m.RecordBurstPromotion(0)
	m.RecordBurstEviction(0)
	m.RecordBurstActive(0)
	m.RecordTopKPromotion(0)

	require.Equal(t, uint64(2), m.MessagesObserved())
	require.Equal(t, uint64(1), m.BurstPromotions())
	require.Equal(t, uint64(1), m.BurstEvictions())
	require.Equal(t, uint64(1), m.BurstActiveCount())
	require.Equal(t, uint64(1), m.TopKPromotions())
	require.Equal(t, 0.5, m.DuplicateHitRatio())
}

func TestMetricsClear(t *testing.T) {
	m := NewMetrics()
	m.RecordMessage(0)
	m.Clear()
	require.Equal(t, uint64(0), m.MessagesObserved())
}

func TestMetricsNilSafe(t *testing.T) {
	var m *Metrics
	require.Equal(t, uint64(0), m.MessagesObserved())
	require.Equal(t, 0.0, m.DuplicateHitRatio())
	require.NotPanics(t, func() { m.Clear() })
}

func TestMetricsPrometheusCollector(t *testing.T) {
	m := NewMetrics()
	m.RecordMessage(0)
	collector := m.PrometheusCollector()
	require.NotNil(t, collector)
}
