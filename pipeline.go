// StreamingPipeline fans one message to all three detectors and
// aggregates their results. Grounded on spec.md §4.8's fixed dispatch
// order; the detector set is a closed, explicitly composed trio rather
// than a plugin registry (spec.md §9's dynamic-dispatch redesign note).
package streamsketch

import "github.com/pkg/errors"

// PipelineResult aggregates one process_message call across all three
// detectors.
type PipelineResult struct {
	Frequencies map[string]uint64
	Burst       BurstSummary
	Duplicate   DuplicateResult
}

// StreamingPipeline owns one of each detector and mutates them strictly
// in sequence (spec.md §5); it holds no mutex of its own.
type StreamingPipeline struct {
	Frequency *FrequencyDetector
	Burst     *BurstDetector
	Duplicate *DuplicateDetector
}

// NewStreamingPipeline composes an already-constructed detector trio.
func NewStreamingPipeline(frequency *FrequencyDetector, burst *BurstDetector, duplicate *DuplicateDetector) (*StreamingPipeline, error) {
	if frequency == nil || burst == nil || duplicate == nil {
		return nil, errors.Wrap(ErrInvalidParameter, "frequency, burst, and duplicate detectors must all be non-nil")
	}
	return &StreamingPipeline{Frequency: frequency, Burst: burst, Duplicate: duplicate}, nil
}

// ProcessMessage feeds text to the frequency, burst, and duplicate
// detectors in that fixed order (spec.md §4.8/§5), then answers
// frequencyQueries (if any) against the now-updated CMS.
func (p *StreamingPipeline) ProcessMessage(text string, frequencyQueries []string) (PipelineResult, error) {
	if err := p.Frequency.ObserveMessage(text); err != nil {
		return PipelineResult{}, err
	}
	if err := p.Burst.ObserveMessage(text); err != nil {
		return PipelineResult{}, err
	}
	duplicateInfo := p.Duplicate.ObserveMessage(text)

	frequencies := map[string]uint64{}
	if len(frequencyQueries) > 0 {
		frequencies = p.Frequency.EstimateBatch(frequencyQueries)
	}

	return PipelineResult{
		Frequencies: frequencies,
		Burst:       p.Burst.GetBurstSummary(),
		Duplicate:   duplicateInfo,
	}, nil
}
