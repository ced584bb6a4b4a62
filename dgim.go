// This file implements DGIM (Datar-Gionis-Indyk-Motwani): an approximate
// count of 1-bits over the last N events of a binary stream, in
// O(log^2 N) space. Grounded on original_source's
// streaming/algorithms/dgim.py, split out of that file's DGIMManager into
// its own single-stream type per spec.md §4.2/§4.3. The bucket algebra
// (expire/repair/estimate) is factored into free functions so that
// DGIMManager (dgim_manager.go), which drives a shared external clock
// instead of an owned per-instance one, can reuse it without duplicating
// the merge logic.
package streamsketch

import (
	"github.com/pkg/errors"
)

// dgimBucket covers size 1-bits (size is a power of two), the newest of
// which arrived at endTime.
type dgimBucket struct {
	size    uint64
	endTime uint64
}

// expireBuckets drops buckets, newest-first, that have fully aged out of
// a window of windowSize ending at currentTime.
func expireBuckets(buckets []dgimBucket, currentTime, windowSize uint64) []dgimBucket {
	cutoff := int64(currentTime) - int64(windowSize)
	for len(buckets) > 0 {
		last := buckets[len(buckets)-1]
		if int64(last.endTime) > cutoff {
			break
		}
		buckets = buckets[:len(buckets)-1]
	}
	return buckets
}

// repairBuckets merges buckets so that no more than two of any size
// survive, walking from the smallest size upward per spec.md §4.2 step 5.
// Buckets are newest-first and sizes are non-decreasing toward the tail,
// so every same-size run is contiguous.
func repairBuckets(buckets []dgimBucket) []dgimBucket {
	size := uint64(1)
	for {
		idx := make([]int, 0, 2)
		for i, b := range buckets {
			if b.size == size {
				idx = append(idx, i)
			}
		}
		if len(idx) < 3 {
			if len(idx) == 0 {
				return buckets
			}
			size *= 2
			continue
		}
		// Merge the two oldest (highest index) into one bucket of double
		// size, timestamped with the newer of the two.
		a, b := idx[len(idx)-2], idx[len(idx)-1]
		merged := dgimBucket{size: size * 2, endTime: buckets[a].endTime}
		tail := append([]dgimBucket{merged}, buckets[b+1:]...)
		buckets = append(buckets[:a:a], tail...)
		size *= 2
	}
}

// estimateBuckets sums every live bucket's size and subtracts half the
// oldest live bucket's size (spec.md §4.2), bounding the error to at most
// half that bucket's size.
func estimateBuckets(buckets []dgimBucket) uint64 {
	if len(buckets) == 0 {
		return 0
	}
	var total uint64
	for _, b := range buckets {
		total += b.size
	}
	oldest := buckets[len(buckets)-1]
	return total - oldest.size/2
}

// DGIM tracks an approximate count of 1-bits over the trailing
// windowSize events of one binary stream. Buckets are kept newest-first;
// at most two buckets of any given size coexist at once (spec.md §4.2).
// Each Push advances this DGIM's own clock by exactly one event,
// regardless of bit value — this is the variant BurstDetector uses
// directly, one DGIM per tracked token (spec.md §4.6).
type DGIM struct {
	buckets     []dgimBucket
	windowSize  uint64
	currentTime uint64
}

// NewDGIM creates a DGIM tracking the trailing windowSize events.
// windowSize must be positive.
func NewDGIM(windowSize uint64) (*DGIM, error) {
	if windowSize == 0 {
		return nil, errors.Wrap(ErrInvalidParameter, "window_size must be positive")
	}
	return &DGIM{windowSize: windowSize}, nil
}

// Push advances time by one event and, if bit is 1, records a new
// size-1 bucket. bit must be 0 or 1.
func (d *DGIM) Push(bit int) error {
	if bit != 0 && bit != 1 {
		return errors.Wrap(ErrInvalidInput, "bit must be 0 or 1")
	}
	d.currentTime++
	d.buckets = expireBuckets(d.buckets, d.currentTime, d.windowSize)
	if bit == 0 {
		return nil
	}
	d.buckets = append([]dgimBucket{{size: 1, endTime: d.currentTime}}, d.buckets...)
	d.buckets = repairBuckets(d.buckets)
	return nil
}

// Estimate returns the approximate count of 1-bits in the trailing
// window.
func (d *DGIM) Estimate() uint64 {
	d.buckets = expireBuckets(d.buckets, d.currentTime, d.windowSize)
	return estimateBuckets(d.buckets)
}

// CurrentTime returns the number of events pushed so far.
func (d *DGIM) CurrentTime() uint64 { return d.currentTime }

// WindowSize returns the configured sliding window length.
func (d *DGIM) WindowSize() uint64 { return d.windowSize }
