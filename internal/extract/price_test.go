package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePriceChileanFormats(t *testing.T) {
	testCases := []struct {
		text     string
		expected float64
		ok       bool
	}{
		{"$1.234.567", 1234567, true},
		{"$ 150.000", 150000, true},
		{"$500", 500, true},
		{"1.000,50 pesos", 1000.50, true},
		{"CLP 25.990", 25990, true},
		{"25.990 CLP", 25990, true},
		{"clp 9.990", 9990, true},
		{"sin precio", 0, false},
		{"", 0, false},
		{"$0", 0, false},
		{"$abc", 0, false},
	}

	for _, tc := range testCases {
		price, ok := ParsePrice(tc.text)
		assert.Equal(t, tc.ok, ok, "ok mismatch for %q", tc.text)
		if tc.ok {
			assert.Equal(t, tc.expected, price, "price mismatch for %q", tc.text)
		}
	}
}

func TestExtractPricesPairOrdering(t *testing.T) {
	// The lower value is always the sale price, whatever the document order.
	current, original, ok := ExtractPrices("$450.000 $150.000 50% dcto")
	assert.True(t, ok)
	assert.Equal(t, 150000.0, current)
	assert.Equal(t, 450000.0, original)

	current, original, ok = ExtractPrices("Notebook HP $299.990 $999.990 70% OFF")
	assert.True(t, ok)
	assert.Equal(t, 299990.0, current)
	assert.Equal(t, 999990.0, original)
}

func TestExtractPricesSingle(t *testing.T) {
	current, original, ok := ExtractPrices("$500")
	assert.True(t, ok)
	assert.Equal(t, 500.0, current)
	assert.Zero(t, original)
}

func TestExtractPricesNone(t *testing.T) {
	current, original, ok := ExtractPrices("Envío gratis en compras sobre 3 unidades")
	assert.False(t, ok)
	assert.Zero(t, current)
	assert.Zero(t, original)
}

func TestExtractPricesManyKeepsExtremes(t *testing.T) {
	current, original, ok := ExtractPrices("$10.000 $80.000 $45.000")
	assert.True(t, ok)
	assert.Equal(t, 10000.0, current)
	assert.Equal(t, 80000.0, original)
}
