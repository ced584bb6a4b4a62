package streamsketch

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	farm "github.com/dgryski/go-farm"
)

// hash128 is the pair of independent 64-bit halves that together stand in
// for the "keyed 128-bit hash" the spec requires of every CMS row and
// Bloom hash slot. hi comes from cespare/xxhash (already a direct teacher
// dependency); lo comes from dgryski/go-farm (also a direct teacher
// dependency, otherwise exercised only by the teacher's own hash
// benchmarks in its z package). Using two independent hash families
// instead of one family reseeded twice is what gives the rows/slots the
// statistical independence the error bounds in spec.md §3/§8 assume.
type hash128 struct {
	hi uint64
	lo uint64
}

// salt derives a stable, reproducible per-row/per-slot key from a sketch's
// seed and a short discriminator (the row index for CMS, "h1"/"h2" for
// Bloom's double hashing). Reproducibility across runs is required so
// that test vectors built against a fixed seed stay stable, matching the
// contract in spec.md §4.1 ("must be stable across runs").
func salt(seed int64, discriminator string) []byte {
	buf := make([]byte, 8+len(discriminator))
	binary.BigEndian.PutUint64(buf, uint64(seed))
	copy(buf[8:], discriminator)
	return buf
}

// keyedHash128 hashes item under saltBytes using two independent hash
// families and returns both 64-bit halves.
func keyedHash128(saltBytes, item []byte) hash128 {
	keyed := make([]byte, 0, len(saltBytes)+len(item))
	keyed = append(keyed, saltBytes...)
	keyed = append(keyed, item...)
	return hash128{
		hi: xxhash.Sum64(keyed),
		lo: farm.Fingerprint64(keyed),
	}
}

// mod reduces the 128-bit hash to the half-open range [0, n) by folding
// both halves together, so neither half alone determines the bucket.
func (h hash128) mod(n uint64) uint64 {
	if n == 0 {
		return 0
	}
	return (h.hi ^ h.lo) % n
}

// combined returns a single uint64 derived from both halves, used where a
// Bloom-style double-hashing scheme needs one integer per hash (h1, h2)
// rather than a reduced index.
func (h hash128) combined() uint64 {
	return h.hi ^ (h.lo*0x9E3779B97F4A7C15 + 1)
}
