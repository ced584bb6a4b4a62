// This file implements DGIMManager: a fixed-size bank of independent
// binary streams sharing one external clock. Grounded directly on
// original_source's streaming/algorithms/dgim.py DGIMManager
// (tick/add_one/count_last): tick() advances a single shared clock with
// no implicit per-bin push, and add_one(bin) appends a bucket at the
// *current* shared time without advancing it, so several AddOne calls
// between two Ticks land on the same timestamp. That is a genuinely
// different contract from the single-clock-per-Push DGIM in dgim.go
// (where every Push, 0 or 1, advances that instance's own clock), so
// this type reuses dgim.go's bucket algebra (expireBuckets/repairBuckets/
// estimateBuckets) directly rather than composing *DGIM values.
package streamsketch

import "github.com/pkg/errors"

// DGIMManager is a bank of num_bins independent bucket streams addressed
// by integer index, all expiring against one shared current_time.
type DGIMManager struct {
	bins        [][]dgimBucket
	windowSize  uint64
	currentTime uint64
}

// NewDGIMManager creates a bank of numBins independent streams, each
// tracking a trailing window of windowSize events.
func NewDGIMManager(numBins, windowSize uint64) (*DGIMManager, error) {
	if numBins == 0 {
		return nil, errors.Wrap(ErrInvalidParameter, "num_bins must be positive")
	}
	if windowSize == 0 {
		return nil, errors.Wrap(ErrInvalidParameter, "window_size must be positive")
	}
	return &DGIMManager{
		bins:       make([][]dgimBucket, numBins),
		windowSize: windowSize,
	}, nil
}

// Tick advances the shared clock by one event; call exactly once per
// ingested message, before any AddOne calls for that message (spec.md
// §4.3/§5).
func (m *DGIMManager) Tick() {
	m.currentTime++
	for i, buckets := range m.bins {
		m.bins[i] = expireBuckets(buckets, m.currentTime, m.windowSize)
	}
}

// AddOne records a 1-bit in bin binIdx at the current shared time,
// without advancing the clock. Calling it more than once per Tick for
// the same bin is legal and records multiple buckets at that timestamp
// (spec.md §4.3).
func (m *DGIMManager) AddOne(binIdx uint64) error {
	if binIdx >= uint64(len(m.bins)) {
		return errors.Wrap(ErrInvalidInput, "bin index out of range")
	}
	buckets := append([]dgimBucket{{size: 1, endTime: m.currentTime}}, m.bins[binIdx]...)
	m.bins[binIdx] = repairBuckets(buckets)
	return nil
}

// CountLast returns the DGIM estimate for binIdx over the last k events,
// defaulting to the full configured window when k is 0 or exceeds it
// (spec.md §4.3).
func (m *DGIMManager) CountLast(binIdx, k uint64) (uint64, error) {
	if binIdx >= uint64(len(m.bins)) {
		return 0, errors.Wrap(ErrInvalidInput, "bin index out of range")
	}
	window := m.windowSize
	if k > 0 && k < window {
		window = k
	}
	live := expireBuckets(m.bins[binIdx], m.currentTime, window)
	return estimateBuckets(live), nil
}

// NumBins returns the number of bins in the bank.
func (m *DGIMManager) NumBins() uint64 { return uint64(len(m.bins)) }

// CurrentTime returns the shared clock's event count.
func (m *DGIMManager) CurrentTime() uint64 { return m.currentTime }
