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

// ShardRouter gives a host the sharding half of §5's multi-instance
// concurrency option (a): route a key to one of num_shards independent
// pipelines by rendezvous (HRW) hashing, then merge only the CMS tables
// across shards via CountMinSketch.Merge — DGIM and Bloom state stay
// shard-local, since neither admits efficient merge (spec.md §5).
//
// Adapted from the teacher's ClearKey (key.go): the same
// mutex-guarded set-of-strings idea, repurposed from tracking live cache
// keys to holding the shard node names (a slice) for the rendezvous hasher.
package streamsketch

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/dgryski/go-rendezvous"
	"github.com/pkg/errors"
)

// ShardRouter selects a shard index for a routing key via
// highest-random-weight hashing, grounded on dgryski/go-rendezvous.
type ShardRouter struct {
	mu    sync.RWMutex
	nodes []string
	hrw   *rendezvous.Rendezvous
}

// NewShardRouter builds a router over numShards shards, numbered 0 to
// numShards-1. numShards must be positive.
func NewShardRouter(numShards int) (*ShardRouter, error) {
	if numShards <= 0 {
		return nil, errors.Wrap(ErrInvalidParameter, "num_shards must be positive")
	}
	nodes := make([]string, numShards)
	for i := range nodes {
		nodes[i] = strconv.Itoa(i)
	}
	return &ShardRouter{
		nodes: nodes,
		hrw:   rendezvous.New(nodes, xxhash.Sum64String),
	}, nil
}

// ShardFor returns the shard index responsible for key.
func (r *ShardRouter) ShardFor(key string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	node := r.hrw.Lookup(key)
	idx, err := strconv.Atoi(node)
	if err != nil {
		return 0, errors.Wrapf(err, "shard router returned unparseable node %q", node)
	}
	return idx, nil
}

// NumShards returns the number of shards configured.
func (r *ShardRouter) NumShards() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.nodes)
}

// MergeCMS folds every sketch in shards into a single CountMinSketch.
// All inputs must share identical (width, depth, seed); see
// CountMinSketch.Merge.
func MergeCMS(shards []*CountMinSketch) (*CountMinSketch, error) {
	if len(shards) == 0 {
		return nil, errors.Wrap(ErrInvalidInput, "no shards to merge")
	}
	first := shards[0]
	merged, err := NewCountMinSketch(first.Width(), first.Depth(), first.seed)
	if err != nil {
		return nil, err
	}
	for i, s := range shards {
		if err := merged.Merge(s); err != nil {
			return nil, errors.Wrapf(err, "merging shard %d", i)
		}
	}
	return merged, nil
}

func (r *ShardRouter) String() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return fmt.Sprintf("ShardRouter(shards=%d)", len(r.nodes))
}
