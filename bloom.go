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

// This file implements a Bloom filter: a bit-packed, probabilistic set
// membership structure with no false negatives and a tunable false
// positive rate. Absorbs what used to be the teacher's separate
// Doorkeeper Filter (filter.go) — both were bit-packed double-hashing
// Bloom filters sized from (capacity, error rate); keeping two
// near-identical implementations around made no sense once this one
// became a first-class query surface (spec.md §4.4) rather than internal
// admission metadata.
package streamsketch

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
)

// BloomFilter provides probabilistic set membership: Contains never
// returns a false negative for an item that was Add-ed, and returns a
// false positive at approximately the configured error rate once fill
// ratio grows.
type BloomFilter struct {
	bits     []byte
	h1Salt   []byte
	h2Salt   []byte
	m        uint64 // number of bits
	k        uint64 // number of hash functions
	capacity uint64
	setBits  uint64
}

// NewBloomFilter sizes a filter for capacity distinct items at the given
// target error rate, per spec.md §3/§4.4:
//
//	m = ceil(-capacity * ln(error_rate) / (ln 2)^2)
//	k = max(1, round((m/capacity) * ln 2))
func NewBloomFilter(capacity uint64, errorRate float64, seed int64) (*BloomFilter, error) {
	if capacity == 0 {
		return nil, errors.Wrap(ErrInvalidParameter, "capacity must be positive")
	}
	if errorRate <= 0 || errorRate >= 1 {
		return nil, errors.Wrap(ErrInvalidParameter, "error_rate must be in (0,1)")
	}
	m := uint64(math.Ceil(-float64(capacity) * math.Log(errorRate) / (math.Ln2 * math.Ln2)))
	if m == 0 {
		m = 1
	}
	k := uint64(math.Round((float64(m) / float64(capacity)) * math.Ln2))
	if k < 1 {
		k = 1
	}
	return &BloomFilter{
		bits:     make([]byte, (m+7)/8),
		h1Salt:   salt(seed, "h1"),
		h2Salt:   salt(seed, "h2"),
		m:        m,
		k:        k,
		capacity: capacity,
	}, nil
}

// indices returns the k bit positions item hashes to, via enhanced double
// hashing: (h1 + i*h2 + i^2) mod m, from two independent keyed 128-bit
// hashes h1, h2 (spec.md §4.4), mirroring the original Python
// implementation's two blake2b hashes keyed "h1"/"h2".
func (b *BloomFilter) indices(item []byte) []uint64 {
	h1 := keyedHash128(b.h1Salt, item).combined()
	h2 := keyedHash128(b.h2Salt, item).combined()
	idx := make([]uint64, b.k)
	for i := uint64(0); i < b.k; i++ {
		idx[i] = (h1 + i*h2 + i*i) % b.m
	}
	return idx
}

func (b *BloomFilter) has(idx uint64) bool {
	return b.bits[idx/8]&(1<<(idx%8)) != 0
}

func (b *BloomFilter) set(idx uint64) bool {
	byteIdx, mask := idx/8, byte(1<<(idx%8))
	if b.bits[byteIdx]&mask != 0 {
		return false
	}
	b.bits[byteIdx] |= mask
	return true
}

// Add sets the bits for item. Bits are monotonic: once set, never
// cleared (spec.md §3).
func (b *BloomFilter) Add(item []byte) {
	for _, idx := range b.indices(item) {
		if b.set(idx) {
			b.setBits++
		}
	}
}

// AddString is a convenience wrapper over Add for string items.
func (b *BloomFilter) AddString(item string) { b.Add([]byte(item)) }

// AddMany adds every item in items.
func (b *BloomFilter) AddMany(items []string) {
	for _, it := range items {
		b.AddString(it)
	}
}

// Contains reports whether item may have been added. A false result is
// certain; a true result is probabilistic (spec.md §4.4).
func (b *BloomFilter) Contains(item []byte) bool {
	for _, idx := range b.indices(item) {
		if !b.has(idx) {
			return false
		}
	}
	return true
}

// ContainsString is a convenience wrapper over Contains for string items.
func (b *BloomFilter) ContainsString(item string) bool { return b.Contains([]byte(item)) }

// FillRatio returns the fraction of bits currently set, in [0,1].
func (b *BloomFilter) FillRatio() float64 {
	if b.m == 0 {
		return 0
	}
	return float64(b.setBits) / float64(b.m)
}

// M returns the number of bits backing the filter.
func (b *BloomFilter) M() uint64 { return b.m }

// K returns the number of hash functions used per item.
func (b *BloomFilter) K() uint64 { return b.k }

func (b *BloomFilter) String() string {
	return fmt.Sprintf("BloomFilter(m=%d, k=%d, size=%s, fill=%.2f%%)",
		b.m, b.k, humanize.IBytes(uint64(len(b.bits))), b.FillRatio()*100)
}
