package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReliabilityScorePenalties(t *testing.T) {
	// Clean product: reference price present, normal discount.
	assert.Equal(t, 1.0, ReliabilityScore(299990, 999990, 70))

	// Extreme discount with a reference price.
	assert.InDelta(t, 0.7, ReliabilityScore(50000, 1000000, 95), 1e-9)

	// High (but not extreme) discount.
	assert.InDelta(t, 0.9, ReliabilityScore(50000, 500000, 90), 1e-9)

	// Missing reference price.
	assert.InDelta(t, 0.8, ReliabilityScore(50000, 0, 70), 1e-9)

	// Suspiciously low price.
	assert.InDelta(t, 0.9, ReliabilityScore(500, 5000, 70), 1e-9)

	// Every penalty at once.
	assert.InDelta(t, 0.4, ReliabilityScore(500, 0, 95), 1e-9)
}

func TestReliabilityScoreBounds(t *testing.T) {
	cases := []struct{ current, original, discount float64 }{
		{0, 0, 100},
		{500, 0, 95},
		{1, 1, 0},
		{1000000, 2000000, 50},
	}
	for _, tc := range cases {
		score := ReliabilityScore(tc.current, tc.original, tc.discount)
		assert.GreaterOrEqual(t, score, 0.1)
		assert.LessOrEqual(t, score, 1.0)
	}
}
