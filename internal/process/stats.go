package process

import "descuentosgo/dealworker/internal/extract"

// Statistics summarizes a processed batch for reporting.
type Statistics struct {
	TotalProducts  int            `json:"total_products"`
	Stores         map[string]int `json:"stores"`
	Categories     map[string]int `json:"categories"`
	DiscountRanges map[string]int `json:"discount_ranges"`
	PriceRanges    map[string]int `json:"price_ranges"`
}

// Discount and price bucket labels.
const (
	BucketDiscount70 = "70-80%"
	BucketDiscount80 = "80-90%"
	BucketDiscount90 = "90%+"

	BucketPriceLow  = "0-10000"
	BucketPriceMid  = "10000-50000"
	BucketPriceHigh = "50000+"
)

// ComputeStatistics counts products by store, category, discount bucket
// and price bucket.
func ComputeStatistics(products []extract.Product) Statistics {
	stats := Statistics{
		TotalProducts: len(products),
		Stores:        make(map[string]int),
		Categories:    make(map[string]int),
		DiscountRanges: map[string]int{
			BucketDiscount70: 0,
			BucketDiscount80: 0,
			BucketDiscount90: 0,
		},
		PriceRanges: map[string]int{
			BucketPriceLow:  0,
			BucketPriceMid:  0,
			BucketPriceHigh: 0,
		},
	}

	for _, product := range products {
		store := product.Store
		if store == "" {
			store = "unknown"
		}
		stats.Stores[store]++

		category := product.Category
		if category == "" {
			category = "unknown"
		}
		stats.Categories[category]++

		switch discount := product.DiscountPercentage; {
		case discount >= 90:
			stats.DiscountRanges[BucketDiscount90]++
		case discount >= 80:
			stats.DiscountRanges[BucketDiscount80]++
		case discount >= 70:
			stats.DiscountRanges[BucketDiscount70]++
		}

		switch price := product.CurrentPrice; {
		case price <= 10000:
			stats.PriceRanges[BucketPriceLow]++
		case price <= 50000:
			stats.PriceRanges[BucketPriceMid]++
		default:
			stats.PriceRanges[BucketPriceHigh]++
		}
	}

	return stats
}
