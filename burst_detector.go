// BurstDetector tracks a bounded set of tokens, each backed by its own
// DGIM, and promotes candidate tokens into that set when their recent
// activity counter reaches a threshold. This is the canonical
// DGIM-per-tracked-token-with-promotion variant (spec.md §9 REDESIGN
// FLAGS); grounded on original_source's
// streaming/detectors/burst_detector.py for the tokenize/tick/push shape
// and on frequency_detector.py's top-K replacement rule for the
// promotion/eviction bookkeeping.
package streamsketch

import (
	"fmt"
	"sort"

	"github.com/pkg/errors"
)

// BurstDetector detects tokens whose recent activity, tracked via a
// per-token DGIM, meets or exceeds burstThreshold.
type BurstDetector struct {
	windowSize          uint64
	topKTokens          int
	burstThreshold      uint64
	reportTopN          int
	promotionThreshold  int
	tracked             map[string]*DGIM
	candidates          map[string]int
	messageCount        uint64
}

// NewBurstDetector configures a detector over windowSize-event DGIMs,
// tracking at most topKTokens tokens, reporting bursts at or above
// burstThreshold, and promoting candidates once their counter reaches
// promotionThreshold.
func NewBurstDetector(windowSize uint64, topKTokens int, burstThreshold uint64, reportTopN, promotionThreshold int) (*BurstDetector, error) {
	if windowSize == 0 {
		return nil, errors.Wrap(ErrInvalidParameter, "window_size must be positive")
	}
	if topKTokens <= 0 {
		return nil, errors.Wrap(ErrInvalidParameter, "top_k_tokens must be positive")
	}
	if promotionThreshold <= 0 {
		return nil, errors.Wrap(ErrInvalidParameter, "promotion_threshold must be positive")
	}
	return &BurstDetector{
		windowSize:         windowSize,
		topKTokens:         topKTokens,
		burstThreshold:     burstThreshold,
		reportTopN:         reportTopN,
		promotionThreshold: promotionThreshold,
		tracked:            make(map[string]*DGIM),
		candidates:         make(map[string]int),
	}, nil
}

// ObserveMessage advances every tracked token's DGIM exactly once
// (pushing 1 if the token appears in text, else 0) and bumps the
// candidate counter for every distinct untracked token in text.
func (b *BurstDetector) ObserveMessage(text string) error {
	present := make(map[string]bool)
	for _, tok := range distinctTokens(text) {
		present[tok] = true
	}
	for tok, dgim := range b.tracked {
		bit := 0
		if present[tok] {
			bit = 1
		}
		if err := dgim.Push(bit); err != nil {
			return err
		}
	}
	for tok := range present {
		if _, isTracked := b.tracked[tok]; isTracked {
			continue
		}
		b.candidates[tok]++
	}
	b.messageCount++
	return nil
}

// UpdateTrackedTokens runs the periodic promotion/eviction pass described
// in spec.md §4.6. It must be called separately from ObserveMessage.
func (b *BurstDetector) UpdateTrackedTokens() error {
	for tok, counter := range b.candidates {
		if counter < b.promotionThreshold {
			continue
		}
		if len(b.tracked) < b.topKTokens {
			if err := b.promote(tok, counter); err != nil {
				return err
			}
			delete(b.candidates, tok)
			continue
		}
		minTok, minEstimate := b.minTrackedEstimate()
		if uint64(counter) > minEstimate {
			delete(b.tracked, minTok)
			if err := b.promote(tok, counter); err != nil {
				return err
			}
		}
		delete(b.candidates, tok)
	}
	for tok, counter := range b.candidates {
		counter--
		if counter <= 0 {
			delete(b.candidates, tok)
			continue
		}
		b.candidates[tok] = counter
	}
	return nil
}

// promote constructs a fresh DGIM for tok, seeding it with counter
// 1-pushes to represent the recent activity already observed while it
// was a candidate.
func (b *BurstDetector) promote(tok string, counter int) error {
	dgim, err := NewDGIM(b.windowSize)
	if err != nil {
		return err
	}
	for i := 0; i < counter; i++ {
		if err := dgim.Push(1); err != nil {
			return err
		}
	}
	b.tracked[tok] = dgim
	return nil
}

func (b *BurstDetector) minTrackedEstimate() (string, uint64) {
	heap := NewMinHeap[tokenCount]()
	for tok, dgim := range b.tracked {
		tc := tokenCount{token: tok, estimate: dgim.Estimate()}
		heap.Insert(&tc)
	}
	top, ok := heap.Peek()
	if !ok {
		return "", 0
	}
	return top.token, top.estimate
}

// GetBurstTerms returns tracked tokens whose DGIM estimate is at or above
// burstThreshold, sorted descending by estimate and truncated to topN.
func (b *BurstDetector) GetBurstTerms(topN int) []TokenCount {
	out := make([]TokenCount, 0, len(b.tracked))
	for tok, dgim := range b.tracked {
		est := dgim.Estimate()
		if est < b.burstThreshold {
			continue
		}
		out = append(out, TokenCount{Token: tok, Count: est})
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

// IsBurst reports whether any tracked token currently meets or exceeds
// burstThreshold.
func (b *BurstDetector) IsBurst() bool {
	for _, dgim := range b.tracked {
		if dgim.Estimate() >= b.burstThreshold {
			return true
		}
	}
	return false
}

// BurstSummary is the aggregate result of GetBurstSummary.
type BurstSummary struct {
	Active bool
	Tokens []string
}

// GetBurstSummary reports the current burst state, formatting terms as
// "token: count" strings (spec.md §4.6).
func (b *BurstDetector) GetBurstSummary() BurstSummary {
	terms := b.GetBurstTerms(b.reportTopN)
	summary := BurstSummary{Active: b.IsBurst(), Tokens: make([]string, len(terms))}
	for i, t := range terms {
		summary.Tokens[i] = fmt.Sprintf("%s: %d", t.Token, t.Count)
	}
	return summary
}

// MessageCount returns the number of messages observed so far.
func (b *BurstDetector) MessageCount() uint64 { return b.messageCount }

// TrackedCount returns the number of tokens currently tracked.
func (b *BurstDetector) TrackedCount() int { return len(b.tracked) }
