/*
 * Copyright 2021 Dgraph Labs, Inc. and Contributors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Metrics is ambient, optional observability over a pipeline's
// detectors; nothing in this package's core logic reads it. Kept in the
// same sharded-atomic-counter shape as the teacher's own metrics.go
// (metricType enum + [doNotUse][]*uint64, padded to avoid false
// sharing), generalized from cache hit/miss/eviction counters to
// message/tracked-set/burst/duplicate counters.
package streamsketch

import (
	"bytes"
	"fmt"
	"sync/atomic"
)

type metricType int

const (
	messagesObserved metricType = iota
	frequencyTopKPromotions
	burstCandidatesPromoted
	burstCandidatesEvicted
	burstActiveTransitions
	duplicateHits
	duplicateMisses
	doNotUse
)

func stringFor(t metricType) string {
	switch t {
	case messagesObserved:
		return "messages-observed"
	case frequencyTopKPromotions:
		return "frequency-topk-promotions"
	case burstCandidatesPromoted:
		return "burst-candidates-promoted"
	case burstCandidatesEvicted:
		return "burst-candidates-evicted"
	case burstActiveTransitions:
		return "burst-active-transitions"
	case duplicateHits:
		return "duplicate-hits"
	case duplicateMisses:
		return "duplicate-misses"
	default:
		return "unidentified"
	}
}

// Metrics is a snapshot of counters accumulated over a pipeline's
// lifetime. The zero value is not usable; build one with NewMetrics.
type Metrics struct {
	all [doNotUse][]*uint64
}

// NewMetrics allocates a fresh, zeroed counter set.
func NewMetrics() *Metrics {
	m := &Metrics{}
	for i := 0; i < int(doNotUse); i++ {
		m.all[i] = make([]*uint64, 256)
		for j := range m.all[i] {
			m.all[i][j] = new(uint64)
		}
	}
	return m
}

func (m *Metrics) add(t metricType, shard, delta uint64) {
	if m == nil {
		return
	}
	idx := (shard % 25) * 10
	atomic.AddUint64(m.all[t][idx], delta)
}

func (m *Metrics) get(t metricType) uint64 {
	if m == nil {
		return 0
	}
	var total uint64
	for _, v := range m.all[t] {
		total += atomic.LoadUint64(v)
	}
	return total
}

// RecordMessage records one message observed by a pipeline, keyed by an
// arbitrary shard index (use 0 for a single-pipeline host).
func (m *Metrics) RecordMessage(shard uint64) { m.add(messagesObserved, shard, 1) }

// RecordTopKPromotion records one FrequencyDetector top-K replacement.
func (m *Metrics) RecordTopKPromotion(shard uint64) { m.add(frequencyTopKPromotions, shard, 1) }

// RecordBurstPromotion records one BurstDetector candidate promotion.
func (m *Metrics) RecordBurstPromotion(shard uint64) { m.add(burstCandidatesPromoted, shard, 1) }

// RecordBurstEviction records one BurstDetector tracked-token eviction.
func (m *Metrics) RecordBurstEviction(shard uint64) { m.add(burstCandidatesEvicted, shard, 1) }

// RecordBurstActive records one observation where IsBurst() was true.
func (m *Metrics) RecordBurstActive(shard uint64) { m.add(burstActiveTransitions, shard, 1) }

// RecordDuplicateResult records one DuplicateDetector verdict.
func (m *Metrics) RecordDuplicateResult(shard uint64, isDuplicate bool) {
	if isDuplicate {
		m.add(duplicateHits, shard, 1)
		return
	}
	m.add(duplicateMisses, shard, 1)
}

// MessagesObserved returns the total message count recorded.
func (m *Metrics) MessagesObserved() uint64 { return m.get(messagesObserved) }

// TopKPromotions returns the total FrequencyDetector top-K replacements.
func (m *Metrics) TopKPromotions() uint64 { return m.get(frequencyTopKPromotions) }

// BurstPromotions returns the total BurstDetector candidate promotions.
func (m *Metrics) BurstPromotions() uint64 { return m.get(burstCandidatesPromoted) }

// BurstEvictions returns the total BurstDetector tracked-token evictions.
func (m *Metrics) BurstEvictions() uint64 { return m.get(burstCandidatesEvicted) }

// BurstActiveCount returns how many observations found IsBurst() true.
func (m *Metrics) BurstActiveCount() uint64 { return m.get(burstActiveTransitions) }

// DuplicateHitRatio returns duplicate hits over all duplicate verdicts,
// 0 if none have been recorded.
func (m *Metrics) DuplicateHitRatio() float64 {
	hits, misses := m.get(duplicateHits), m.get(duplicateMisses)
	if hits == 0 && misses == 0 {
		return 0
	}
	return float64(hits) / float64(hits+misses)
}

// Clear resets every counter to zero.
func (m *Metrics) Clear() {
	if m == nil {
		return
	}
	for i := 0; i < int(doNotUse); i++ {
		for _, v := range m.all[i] {
			atomic.StoreUint64(v, 0)
		}
	}
}

func (m *Metrics) String() string {
	if m == nil {
		return ""
	}
	var buf bytes.Buffer
	for i := 0; i < int(doNotUse); i++ {
		t := metricType(i)
		fmt.Fprintf(&buf, "%s: %d ", stringFor(t), m.get(t))
	}
	fmt.Fprintf(&buf, "duplicate-hit-ratio: %.2f", m.DuplicateHitRatio())
	return buf.String()
}
