// DuplicateDetector scores near-duplicate text via shingle membership in
// a Bloom filter. Grounded directly on original_source's
// streaming/detectors/duplicate_detector.py (shingles/is_duplicate/
// observe_message's query-then-insert ordering).
package streamsketch

import "github.com/pkg/errors"

// DuplicateDetector owns a Bloom filter and a shingle length, scoring
// each message by what fraction of its shingles are already present.
type DuplicateDetector struct {
	bloom             *BloomFilter
	shingleSize       int
	duplicateThreshold float64
}

// NewDuplicateDetector builds a DuplicateDetector backed by a Bloom
// filter sized for capacity/errorRate, scoring with shingles of size
// shingleSize and flagging duplicates at or above duplicateThreshold.
func NewDuplicateDetector(capacity uint64, errorRate float64, shingleSize int, duplicateThreshold float64, seed int64) (*DuplicateDetector, error) {
	if shingleSize <= 0 {
		return nil, errors.Wrap(ErrInvalidParameter, "shingle_size must be positive")
	}
	if duplicateThreshold <= 0 || duplicateThreshold > 1 {
		return nil, errors.Wrap(ErrInvalidParameter, "duplicate_threshold must be in (0,1]")
	}
	bloom, err := NewBloomFilter(capacity, errorRate, seed)
	if err != nil {
		return nil, err
	}
	return &DuplicateDetector{
		bloom:              bloom,
		shingleSize:        shingleSize,
		duplicateThreshold: duplicateThreshold,
	}, nil
}

// IsDuplicate reports whether text scores at or above the configured
// threshold, along with the score itself, without mutating Bloom state.
func (d *DuplicateDetector) IsDuplicate(text string) (bool, float64) {
	shingleList := shingles(text, d.shingleSize)
	if len(shingleList) == 0 {
		return false, 0
	}
	var hits int
	for _, s := range shingleList {
		if d.bloom.ContainsString(s) {
			hits++
		}
	}
	score := float64(hits) / float64(len(shingleList))
	return score >= d.duplicateThreshold, score
}

// DuplicateResult is the aggregate result of ObserveMessage.
type DuplicateResult struct {
	IsDuplicate     bool
	DuplicateScore  float64
	FillRatio       float64
}

// ObserveMessage scores text against the current Bloom state, then
// inserts every shingle of text. Query must precede insertion, or every
// message would trivially score as its own duplicate (spec.md §4.7).
func (d *DuplicateDetector) ObserveMessage(text string) DuplicateResult {
	isDup, score := d.IsDuplicate(text)
	for _, s := range shingles(text, d.shingleSize) {
		d.bloom.AddString(s)
	}
	return DuplicateResult{
		IsDuplicate:    isDup,
		DuplicateScore: score,
		FillRatio:      d.bloom.FillRatio(),
	}
}
