package process

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"descuentosgo/dealworker/internal/extract"
)

func candidate(name string, current, original, discount float64) extract.Product {
	return extract.Product{
		Name:               name,
		CurrentPrice:       current,
		OriginalPrice:      original,
		DiscountPercentage: discount,
		Store:              "falabella",
		ExtractedAt:        time.Now(),
	}
}

func TestProcessDropsBelowThreshold(t *testing.T) {
	p := NewProcessor(70)
	batch := []extract.Product{
		candidate("Notebook Lenovo IdeaPad", 299990, 999990, 70),
		candidate("Polera algodón", 6990, 9990, 30),
		candidate("Audífonos inalámbricos", 14990, 149990, 90),
	}

	out := p.Process(batch, "falabella")

	assert.Len(t, out, 2)
	assert.Equal(t, "Notebook Lenovo IdeaPad", out[0].Name)
	assert.Equal(t, "Audífonos inalámbricos", out[1].Name)
}

func TestProcessRecomputesMissingDiscount(t *testing.T) {
	p := NewProcessor(70)
	// Label extraction failed; the price pair still proves the deal.
	batch := []extract.Product{candidate("Freidora de aire", 24990, 99990, 0)}

	out := p.Process(batch, "paris")

	assert.Len(t, out, 1)
	assert.Equal(t, 75.01, out[0].DiscountPercentage)
	assert.Equal(t, "paris", out[0].Store)
}

func TestProcessRejectsBrokenCandidates(t *testing.T) {
	p := NewProcessor(70)
	batch := []extract.Product{
		candidate("", 9990, 99990, 90),
		candidate("Precio cero", 0, 99990, 90),
		candidate("Precio negativo", -100, 99990, 90),
	}

	assert.Empty(t, p.Process(batch, "ripley"))
}

func TestProcessScoresReliability(t *testing.T) {
	p := NewProcessor(70)
	batch := []extract.Product{
		candidate("Descuento normal", 299990, 999990, 70),
		candidate("Descuento extremo", 50000, 1000000, 95),
	}

	out := p.Process(batch, "falabella")

	assert.Len(t, out, 2)
	assert.InDelta(t, 1.0, out[0].Reliability, 1e-9)
	assert.InDelta(t, 0.7, out[1].Reliability, 1e-9)
}

func TestCleanTextStripsControlNoise(t *testing.T) {
	assert.Equal(t, "Taladro Bosch 500W", cleanText("  Taladro  Bosch\n\t500W\x00® "))
	assert.Equal(t, "Oferta 70% $9.990", cleanText("Oferta 70% $9.990"))
}

func TestDedupeCollapsesWhitespaceVariants(t *testing.T) {
	a := candidate("Parka   Hombre\tNorth Face", 29990, 119990, 75)
	b := candidate("parka hombre north face", 29990, 119990, 75)
	a.Reliability = 0.9
	b.Reliability = 0.7

	out := Dedupe([]extract.Product{a, b})

	assert.Len(t, out, 1)
	assert.Equal(t, 0.9, out[0].Reliability)
}

func TestDedupeHigherReliabilityWinsInPlace(t *testing.T) {
	first := candidate("Cafetera italiana", 9990, 39990, 75)
	first.Link = "https://www.paris.cl/p/cafetera"
	first.Reliability = 0.6
	second := candidate("Cafetera Italiana 6 tazas", 9990, 39990, 75)
	second.Link = "https://www.paris.cl/p/cafetera"
	second.Reliability = 0.9
	other := candidate("Tostador", 7990, 29990, 73)
	other.Link = "https://www.paris.cl/p/tostador"

	out := Dedupe([]extract.Product{first, second, other})

	assert.Len(t, out, 2)
	// The richer record replaced the first but kept its slot.
	assert.Equal(t, "Cafetera Italiana 6 tazas", out[0].Name)
	assert.Equal(t, 0.9, out[0].Reliability)
	assert.Equal(t, "Tostador", out[1].Name)
}

func TestDedupeIdempotent(t *testing.T) {
	batch := []extract.Product{
		candidate("Producto A", 9990, 39990, 75),
		candidate("Producto B", 19990, 79990, 75),
	}

	once := Dedupe(batch)
	twice := Dedupe(once)

	assert.Equal(t, once, twice)
}

func TestDedupeDifferentStoresKept(t *testing.T) {
	a := candidate("Mismo producto", 9990, 39990, 75)
	b := candidate("Mismo producto", 9990, 39990, 75)
	b.Store = "ripley"

	assert.Len(t, Dedupe([]extract.Product{a, b}), 2)
}

func TestEnrichTagsAndSavings(t *testing.T) {
	cases := []struct {
		name     string
		current  float64
		original float64
		discount float64
		tags     []string
		savings  float64
	}{
		{"mega y bajo", 2990, 29990, 90, []string{"Mega Oferta", "Precio Bajo"}, 27000},
		{"gran y medio", 14990, 79990, 81, []string{"Gran Descuento", "Precio Medio"}, 65000},
		{"oferta y alto", 299990, 999990, 70, []string{"Oferta", "Precio Alto"}, 700000},
	}

	p := NewProcessor(70)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := p.Process([]extract.Product{candidate("Producto "+tc.name, tc.current, tc.original, tc.discount)}, "easy")
			assert.Len(t, out, 1)
			assert.Equal(t, tc.tags, out[0].Tags)
			assert.Equal(t, tc.savings, out[0].Savings)
		})
	}
}

func TestFilters(t *testing.T) {
	batch := []extract.Product{
		{Name: "A", Store: "falabella", Category: "tecnologia", DiscountPercentage: 72},
		{Name: "B", Store: "paris", Category: "hogar", DiscountPercentage: 85},
		{Name: "C", Store: "falabella", Category: "hogar", DiscountPercentage: 91},
	}

	assert.Len(t, FilterByDiscount(batch, 85), 2)
	assert.Len(t, FilterByStore(batch, "falabella"), 2)
	assert.Len(t, FilterByCategory(batch, "hogar"), 2)
	assert.Empty(t, FilterByStore(batch, "lider"))
}

func TestSortBy(t *testing.T) {
	batch := []extract.Product{
		{Name: "Banana", CurrentPrice: 3000, DiscountPercentage: 75},
		{Name: "Ajo", CurrentPrice: 1000, DiscountPercentage: 90},
		{Name: "Choclo", CurrentPrice: 2000, DiscountPercentage: 80},
	}

	byDiscount := SortBy(batch, "discount_percentage", true)
	assert.Equal(t, "Ajo", byDiscount[0].Name)
	assert.Equal(t, "Banana", byDiscount[2].Name)

	byPrice := SortBy(batch, "current_price", false)
	assert.Equal(t, 1000.0, byPrice[0].CurrentPrice)

	byName := SortBy(batch, "name", false)
	assert.Equal(t, "Ajo", byName[0].Name)

	// Input batch is never reordered.
	assert.Equal(t, "Banana", batch[0].Name)

	unknown := SortBy(batch, "color", false)
	assert.Equal(t, batch, unknown)
}
