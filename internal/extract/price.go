package extract

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Price patterns for Chilean retail pages. Amounts use `.` as the
// thousands separator and `,` as the decimal separator ($1.234.567,50).
var pricePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\$\s*([0-9][0-9.,]*)`),
	regexp.MustCompile(`(?i)([0-9][0-9.,]*)\s*pesos`),
	regexp.MustCompile(`(?i)CLP\s*([0-9][0-9.,]*)`),
	regexp.MustCompile(`(?i)([0-9][0-9.,]*)\s*CLP`),
}

// ParsePrice extracts a single numeric price from a text fragment.
// It returns false when no positive price can be recovered; unparseable
// fragments are expected and never an error.
func ParsePrice(text string) (float64, bool) {
	prices := findPrices(text)
	if len(prices) == 0 {
		return 0, false
	}
	return prices[0], true
}

// ExtractPrices extracts every price-like substring from a text fragment.
// With two or more matches the lower value is the current (sale) price
// and the higher the original price, regardless of document order. A
// single match yields (value, 0); no match yields ok == false.
func ExtractPrices(text string) (current, original float64, ok bool) {
	prices := findPrices(text)
	switch len(prices) {
	case 0:
		return 0, 0, false
	case 1:
		return prices[0], 0, true
	default:
		lo, hi := prices[0], prices[0]
		for _, p := range prices[1:] {
			lo = math.Min(lo, p)
			hi = math.Max(hi, p)
		}
		return lo, hi, true
	}
}

func findPrices(text string) []float64 {
	if text == "" {
		return nil
	}

	var prices []float64
	for _, pattern := range pricePatterns {
		for _, match := range pattern.FindAllStringSubmatch(text, -1) {
			if price, ok := normalizeAmount(match[1]); ok {
				prices = append(prices, price)
			}
		}
	}
	return prices
}

// normalizeAmount converts a Chilean-formatted amount to a float:
// thousands dots are stripped, the decimal comma becomes a dot.
func normalizeAmount(raw string) (float64, bool) {
	raw = strings.Trim(raw, ".,")
	if raw == "" {
		return 0, false
	}

	cleaned := strings.ReplaceAll(raw, ".", "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")

	price, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || price <= 0 {
		return 0, false
	}
	return price, true
}
