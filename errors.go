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

package streamsketch

import "errors"

// Sentinel errors for the two error kinds this package raises. Both are
// fatal to the operation that returned them and leave receiver state
// unchanged; neither is retriable without fixing the caller's input.
var (
	// ErrInvalidParameter is returned at construction time when a
	// dimension, probability, or threshold is out of its valid range.
	ErrInvalidParameter = errors.New("streamsketch: invalid parameter")

	// ErrInvalidInput is returned from a call when the value passed in
	// violates the operation's contract (a non-binary DGIM bit, a
	// negative CMS count, a CMS merge across mismatched dimensions/seed,
	// an out-of-range DGIMManager bin index, or an empty MergeCMS input).
	ErrInvalidInput = errors.New("streamsketch: invalid input")
)
