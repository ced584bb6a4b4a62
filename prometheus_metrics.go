// Prometheus export is opt-in: a caller that wants it builds a collector
// from an existing *Metrics and registers it itself. Nothing here
// registers anything via init(), unlike the package-level globals in
// etalazz-vsa's prom_counters.go — this package's components are plain
// library values with no global state (spec.md §5), so metrics only
// exist once a caller constructs one.
package streamsketch

import "github.com/prometheus/client_golang/prometheus"

// prometheusCollector adapts a *Metrics snapshot into a prometheus.Collector.
type prometheusCollector struct {
	metrics *Metrics

	messagesObservedDesc        *prometheus.Desc
	topKPromotionsDesc          *prometheus.Desc
	burstPromotionsDesc         *prometheus.Desc
	burstEvictionsDesc          *prometheus.Desc
	burstActiveDesc             *prometheus.Desc
	duplicateHitRatioDesc       *prometheus.Desc
}

// PrometheusCollector wraps m as a prometheus.Collector the caller can
// register with their own registry. m must not be nil.
func (m *Metrics) PrometheusCollector() prometheus.Collector {
	return &prometheusCollector{
		metrics: m,
		messagesObservedDesc: prometheus.NewDesc(
			"streamsketch_messages_observed_total",
			"Total messages observed across all detectors.", nil, nil),
		topKPromotionsDesc: prometheus.NewDesc(
			"streamsketch_frequency_topk_promotions_total",
			"Total FrequencyDetector top-K replacements.", nil, nil),
		burstPromotionsDesc: prometheus.NewDesc(
			"streamsketch_burst_candidates_promoted_total",
			"Total BurstDetector candidate promotions.", nil, nil),
		burstEvictionsDesc: prometheus.NewDesc(
			"streamsketch_burst_candidates_evicted_total",
			"Total BurstDetector tracked-token evictions.", nil, nil),
		burstActiveDesc: prometheus.NewDesc(
			"streamsketch_burst_active_observations_total",
			"Total observations where IsBurst() was true.", nil, nil),
		duplicateHitRatioDesc: prometheus.NewDesc(
			"streamsketch_duplicate_hit_ratio",
			"Fraction of DuplicateDetector verdicts that were duplicates.", nil, nil),
	}
}

func (c *prometheusCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.messagesObservedDesc
	ch <- c.topKPromotionsDesc
	ch <- c.burstPromotionsDesc
	ch <- c.burstEvictionsDesc
	ch <- c.burstActiveDesc
	ch <- c.duplicateHitRatioDesc
}

func (c *prometheusCollector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.messagesObservedDesc, prometheus.CounterValue, float64(c.metrics.MessagesObserved()))
	ch <- prometheus.MustNewConstMetric(c.topKPromotionsDesc, prometheus.CounterValue, float64(c.metrics.TopKPromotions()))
	ch <- prometheus.MustNewConstMetric(c.burstPromotionsDesc, prometheus.CounterValue, float64(c.metrics.BurstPromotions()))
	ch <- prometheus.MustNewConstMetric(c.burstEvictionsDesc, prometheus.CounterValue, float64(c.metrics.BurstEvictions()))
	ch <- prometheus.MustNewConstMetric(c.burstActiveDesc, prometheus.CounterValue, float64(c.metrics.BurstActiveCount()))
	ch <- prometheus.MustNewConstMetric(c.duplicateHitRatioDesc, prometheus.GaugeValue, c.metrics.DuplicateHitRatio())
}
