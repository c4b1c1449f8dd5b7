package extract

import (
	"math"
	"regexp"
	"strconv"
)

// discountTolerance is the maximum gap, in percentage points, allowed
// between a badge-advertised discount and the price-derived one before
// the badge is considered inflated and ignored.
const discountTolerance = 5.0

var discountPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)-([0-9]+)\s*%`),
	regexp.MustCompile(`(?i)([0-9]+)\s*%\s*(?:off|dcto|descuento)`),
	regexp.MustCompile(`(?i)ahorra\s*([0-9]+)\s*%`),
	regexp.MustCompile(`(?i)([0-9]+)\s*%`),
}

// DiscountFromPrices computes the discount percentage implied by a
// reference/sale price pair. Inverted or missing reference prices yield
// 0, never a negative value.
func DiscountFromPrices(original, current float64) float64 {
	if original <= 0 || original <= current {
		return 0
	}
	return round2(100 * (original - current) / original)
}

// DiscountFromLabel parses an explicit discount badge ("70% OFF",
// "-50%", "ahorra 30%"). The first match wins, clamped to [0, 100];
// no match yields 0.
func DiscountFromLabel(text string) float64 {
	if text == "" {
		return 0
	}
	for _, pattern := range discountPatterns {
		if match := pattern.FindStringSubmatch(text); len(match) > 1 {
			value, err := strconv.Atoi(match[1])
			if err != nil {
				continue
			}
			return math.Min(float64(value), 100)
		}
	}
	return 0
}

// ReconcileDiscount resolves a badge-advertised discount against the
// price-derived one. Inflated discount badges are a known data-quality
// problem, so the badge is trusted only when it agrees with the prices
// within the tolerance; without a price pair the badge stands alone.
func ReconcileDiscount(label, derived float64, hasPricePair bool) float64 {
	if !hasPricePair || derived == 0 {
		if label > 0 {
			return label
		}
		return derived
	}
	if label > 0 && math.Abs(label-derived) <= discountTolerance {
		return label
	}
	return derived
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
