package streamsketch

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenReservoirTracksBest(t *testing.T) {
	r := NewTokenReservoir(1)
	_, _, ok := r.Best()
	require.False(t, ok)

	r.Add("alpha", 0.2)
	r.Add("beta", 0.9)
	r.Add("gamma", 0.5)

	tok, score, ok := r.Best()
	require.True(t, ok)
	require.Equal(t, "beta", tok)
	require.Equal(t, 0.9, score)
}

func TestTokenReservoirDeterministicTiebreak(t *testing.T) {
	r1 := NewTokenReservoir(42)
	r2 := NewTokenReservoir(42)
	for _, r := range []*TokenReservoir{r1, r2} {
		r.Add("alpha", 1.0)
		r.Add("beta", 1.0)
		r.Add("gamma", 1.0)
	}
	tok1, _, _ := r1.Best()
	tok2, _, _ := r2.Best()
	require.Equal(t, tok1, tok2)
}
