// FrequencyDetector wraps a CountMinSketch with a bounded top-K map,
// refreshed off the hot path. Grounded on
// original_source's streaming/detectors/frequency_detector.py
// (_top_tokens/_heap/_update_top_tokens/get_frequency_analysis).
package streamsketch

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// tokenCount is the MinHeap element used to find the minimum-estimate
// tracked token during periodic_update's replacement decision.
type tokenCount struct {
	token    string
	estimate uint64
}

func (t tokenCount) Less(other *tokenCount) bool { return t.estimate < other.estimate }

// FrequencyDetector tracks approximate per-token frequency via a
// CountMinSketch and a bounded top-K map of the current heaviest hitters.
type FrequencyDetector struct {
	cms          *CountMinSketch
	topK         map[string]uint64
	maxTracked   int
	messageCount uint64
}

// NewFrequencyDetector wraps cms with a top-K tracker capped at topK
// entries. topK must be positive.
func NewFrequencyDetector(cms *CountMinSketch, topK int) (*FrequencyDetector, error) {
	if cms == nil {
		return nil, errors.Wrap(ErrInvalidParameter, "cms must not be nil")
	}
	if topK <= 0 {
		return nil, errors.Wrap(ErrInvalidParameter, "top_k must be positive")
	}
	return &FrequencyDetector{
		cms:        cms,
		topK:       make(map[string]uint64, topK),
		maxTracked: topK,
	}, nil
}

// ObserveMessage feeds every token of text into the CMS and increments the
// message counter. The top-K map is not touched here (spec.md §4.5: "Top-K
// state is not updated here (hot path)").
func (f *FrequencyDetector) ObserveMessage(text string) error {
	for _, tok := range tokenize(text) {
		if err := f.cms.AddString(tok); err != nil {
			return err
		}
	}
	f.messageCount++
	return nil
}

// PeriodicUpdate refreshes the top-K map against the current CMS estimates
// of tokenSet, following the strict-replacement rule of spec.md §4.5.
func (f *FrequencyDetector) PeriodicUpdate(tokenSet []string) {
	for _, tok := range tokenSet {
		est := f.cms.EstimateString(tok)
		if _, tracked := f.topK[tok]; tracked {
			f.topK[tok] = est
			continue
		}
		if len(f.topK) < f.maxTracked {
			f.topK[tok] = est
			continue
		}
		minTok, minEst := f.minTracked()
		if est > minEst {
			delete(f.topK, minTok)
			f.topK[tok] = est
		}
	}
}

// minTracked scans the top-K map for the minimum-estimate entry, using
// MinHeap to stage the comparison (reused verbatim from the teacher's
// generic min-heap rather than hand-rolling the scan).
func (f *FrequencyDetector) minTracked() (string, uint64) {
	heap := NewMinHeap[tokenCount]()
	for tok, est := range f.topK {
		tc := tokenCount{token: tok, estimate: est}
		heap.Insert(&tc)
	}
	top, ok := heap.Peek()
	if !ok {
		return "", 0
	}
	return top.token, top.estimate
}

// GetFrequencyAnalysis returns the topN tracked tokens sorted by current
// CMS estimate, descending.
func (f *FrequencyDetector) GetFrequencyAnalysis(topN int) []TokenCount {
	out := make([]TokenCount, 0, len(f.topK))
	for tok := range f.topK {
		out = append(out, TokenCount{Token: tok, Count: f.cms.EstimateString(tok)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Token < out[j].Token
	})
	if topN >= 0 && topN < len(out) {
		out = out[:topN]
	}
	return out
}

// EstimateFrequency returns the CMS estimate for term, lowercased.
func (f *FrequencyDetector) EstimateFrequency(term string) uint64 {
	return f.cms.EstimateString(strings.ToLower(term))
}

// EstimateBatch returns CMS estimates for every term in terms, lowercased.
func (f *FrequencyDetector) EstimateBatch(terms []string) map[string]uint64 {
	out := make(map[string]uint64, len(terms))
	for _, term := range terms {
		out[term] = f.EstimateFrequency(term)
	}
	return out
}

// MessageCount returns the number of messages observed so far.
func (f *FrequencyDetector) MessageCount() uint64 { return f.messageCount }

// TrackedCount returns the number of tokens currently in the top-K map.
func (f *FrequencyDetector) TrackedCount() int { return len(f.topK) }

// TokenCount pairs a token with an approximate count, used by query
// results that need to preserve ranking order.
type TokenCount struct {
	Token string
	Count uint64
}
