package extract

// Reliability penalties. Extreme discounts and missing reference prices
// correlate with scraping artifacts (mis-parsed cards, "desde $X"
// banners) rather than genuine offers.
const (
	penaltyExtremeDiscount = 0.3 // discount above 90%
	penaltyHighDiscount    = 0.1 // discount above 80%
	penaltyNoOriginal      = 0.2 // no reference price on the card
	penaltyLowPrice        = 0.1 // current price under $1.000 CLP
	minReliability         = 0.1
)

// ReliabilityScore rates how likely a discount claim is genuine, in
// [0.1, 1.0]. Penalties are additive and independent; the result is a
// confidence signal for downstream filtering, not a correctness check.
func ReliabilityScore(current, original, discount float64) float64 {
	score := 1.0

	if discount > 90 {
		score -= penaltyExtremeDiscount
	} else if discount > 80 {
		score -= penaltyHighDiscount
	}

	if original <= 0 {
		score -= penaltyNoOriginal
	}

	if current < 1000 {
		score -= penaltyLowPrice
	}

	if score < minReliability {
		return minReliability
	}
	return score
}
