package streamsketch

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBloomFilterNoFalseNegatives(t *testing.T) {
	b, err := NewBloomFilter(1000, 0.01, 1)
	require.NoError(t, err)

	items := []string{"alpha", "beta", "gamma"}
	b.AddMany(items)
	for _, it := range items {
		require.True(t, b.ContainsString(it))
	}
}

func TestBloomFilterFalsePositiveRate(t *testing.T) {
	b, err := NewBloomFilter(1000, 0.01, 2)
	require.NoError(t, err)

	inserted := make(map[string]bool, 1000)
	rng := rand.New(rand.NewSource(3))
	const alphabet = "abcdefghijklmnopqrstuvwxyz"
	randomString := func() string {
		buf := make([]byte, 8)
		for i := range buf {
			buf[i] = alphabet[rng.Intn(len(alphabet))]
		}
		return string(buf)
	}
	for len(inserted) < 1000 {
		s := randomString()
		inserted[s] = true
		b.AddString(s)
	}

	var falsePositives int
	const trials = 10000
	for i := 0; i < trials; i++ {
		s := randomString()
		if inserted[s] {
			continue
		}
		if b.ContainsString(s) {
			falsePositives++
		}
	}
	require.Less(t, float64(falsePositives)/float64(trials), 0.05)
}

func TestBloomFilterRejectsBadParams(t *testing.T) {
	_, err := NewBloomFilter(0, 0.01, 1)
	require.Error(t, err)
	_, err = NewBloomFilter(100, 0, 1)
	require.Error(t, err)
	_, err = NewBloomFilter(100, 1, 1)
	require.Error(t, err)
}

func TestBloomFilterFillRatio(t *testing.T) {
	b, err := NewBloomFilter(100, 0.05, 1)
	require.NoError(t, err)
	require.Equal(t, 0.0, b.FillRatio())
	for i := 0; i < 50; i++ {
		b.AddString(fmt.Sprintf("item-%d", i))
	}
	require.Greater(t, b.FillRatio(), 0.0)
	require.LessOrEqual(t, b.FillRatio(), 1.0)
}
