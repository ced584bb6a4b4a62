/*
 * Copyright 2019 Dgraph Labs, Inc. and Contributors
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

// This file implements the Count-Min Sketch: a collection of approximate
// frequency counters whose point query is always an upper bound on the
// true count. See https://en.wikipedia.org/wiki/Count%E2%80%93min_sketch.
package streamsketch

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
)

// CountMinSketch is a two-dimensional table of counters, one row per
// independent hash function, used for approximate frequency estimation in
// O(depth) time and O(width*depth) space. Unlike the teacher's 4-bit
// packed admission counters (which saturate and halve to model recency),
// every counter here accumulates exactly: this spec needs `total_count`
// to be the true sum of everything added, since the error bound in
// spec.md §3 is stated relative to it.
type CountMinSketch struct {
	table      [][]uint64
	rowSalts   [][]byte
	width      uint64
	depth      uint64
	seed       int64
	totalCount uint64
}

// NewCountMinSketch builds a sketch with explicit dimensions. Width and
// depth must both be positive.
func NewCountMinSketch(width, depth uint64, seed int64) (*CountMinSketch, error) {
	if width == 0 || depth == 0 {
		return nil, errors.Wrap(ErrInvalidParameter, "width and depth must be positive")
	}
	s := &CountMinSketch{
		table:    make([][]uint64, depth),
		rowSalts: make([][]byte, depth),
		width:    width,
		depth:    depth,
		seed:     seed,
	}
	for r := uint64(0); r < depth; r++ {
		s.table[r] = make([]uint64, width)
		s.rowSalts[r] = salt(seed, fmt.Sprintf("row-%d", r))
	}
	return s, nil
}

// NewCountMinSketchFromErrorDelta builds a sketch sized so that, per
// spec.md §4.1/§3, `estimate(x) <= true(x) + epsilon*total_count` holds
// with probability at least `1 - delta`: width = ceil(e/epsilon), depth =
// ceil(ln(1/delta)).
func NewCountMinSketchFromErrorDelta(epsilon, delta float64, seed int64) (*CountMinSketch, error) {
	if epsilon <= 0 {
		return nil, errors.Wrap(ErrInvalidParameter, "epsilon must be > 0")
	}
	if delta <= 0 || delta >= 1 {
		return nil, errors.Wrap(ErrInvalidParameter, "delta must be in (0,1)")
	}
	width := uint64(math.Ceil(math.E / epsilon))
	depth := uint64(math.Ceil(math.Log(1.0 / delta)))
	return NewCountMinSketch(width, depth, seed)
}

func (s *CountMinSketch) column(row uint64, item []byte) uint64 {
	return keyedHash128(s.rowSalts[row], item).mod(s.width)
}

// Add increments the counter estimate for item by count. Negative counts
// have no uint64 representation; callers that need the rejection in
// spec.md §4.1/§7 should use AddSigned.
func (s *CountMinSketch) Add(item []byte, count uint64) error {
	for r := uint64(0); r < s.depth; r++ {
		c := s.column(r, item)
		s.table[r][c] += count
	}
	s.totalCount += count
	return nil
}

// AddSigned is the spec-facing entry point: count may be negative, in
// which case the call is rejected per spec.md §4.1 ("negative counts
// rejected") rather than wrapping into a huge uint64 increment.
func (s *CountMinSketch) AddSigned(item []byte, count int64) error {
	if count < 0 {
		return errors.Wrap(ErrInvalidInput, "count must be non-negative")
	}
	return s.Add(item, uint64(count))
}

// AddOne is shorthand for Add(item, 1).
func (s *CountMinSketch) AddOne(item []byte) error {
	return s.Add(item, 1)
}

// AddString is a convenience wrapper over AddOne for string items.
func (s *CountMinSketch) AddString(item string) error {
	return s.AddOne([]byte(item))
}

// Estimate returns the minimum counter across all rows for item, which is
// always >= the true count (spec.md §3).
func (s *CountMinSketch) Estimate(item []byte) uint64 {
	if s.depth == 0 {
		return 0
	}
	min := uint64(math.MaxUint64)
	for r := uint64(0); r < s.depth; r++ {
		v := s.table[r][s.column(r, item)]
		if v < min {
			min = v
		}
	}
	return min
}

// EstimateString is a convenience wrapper over Estimate for string items.
func (s *CountMinSketch) EstimateString(item string) uint64 {
	return s.Estimate([]byte(item))
}

// TotalCount returns the monotonic sum of every count added so far.
func (s *CountMinSketch) TotalCount() uint64 { return s.totalCount }

// Width returns the sketch's column count.
func (s *CountMinSketch) Width() uint64 { return s.width }

// Depth returns the sketch's row count.
func (s *CountMinSketch) Depth() uint64 { return s.depth }

// Merge adds another sketch's counters into this one element-wise. Both
// sketches must share identical (width, depth, seed); merging sketches
// built with different dimensions or seeds would silently corrupt the row
// hashing, so it is rejected outright (spec.md §4.1/§7).
func (s *CountMinSketch) Merge(other *CountMinSketch) error {
	if other == nil {
		return errors.Wrap(ErrInvalidInput, "cannot merge a nil sketch")
	}
	if s.width != other.width || s.depth != other.depth || s.seed != other.seed {
		return errors.Wrap(ErrInvalidInput, "cannot merge count-min sketches with different width/depth/seed")
	}
	for r := uint64(0); r < s.depth; r++ {
		row, otherRow := s.table[r], other.table[r]
		for c := uint64(0); c < s.width; c++ {
			row[c] += otherRow[c]
		}
	}
	s.totalCount += other.totalCount
	return nil
}

func (s *CountMinSketch) String() string {
	size := humanize.IBytes(s.width * s.depth * 8)
	return fmt.Sprintf("CountMinSketch(width=%d, depth=%d, total=%s, size=%s)",
		s.width, s.depth, humanize.Comma(int64(s.totalCount)), size)
}
