package extract

import "time"

// Product represents a product candidate extracted from a store page.
// A zero OriginalPrice means the page showed no reference price; the
// optional text fields are empty strings when absent.
type Product struct {
	Name               string    `json:"name"`
	CurrentPrice       float64   `json:"current_price"`
	OriginalPrice      float64   `json:"original_price,omitempty"`
	DiscountPercentage float64   `json:"discount_percentage"`
	Link               string    `json:"link,omitempty"`
	Image              string    `json:"image,omitempty"`
	Store              string    `json:"store"`
	Category           string    `json:"category,omitempty"`
	Reliability        float64   `json:"reliability,omitempty"`
	Savings            float64   `json:"savings,omitempty"`
	Tags               []string  `json:"tags,omitempty"`
	ExtractedAt        time.Time `json:"extracted_at"`
}

// HasOriginalPrice reports whether a reference ("before") price was found.
func (p *Product) HasOriginalPrice() bool {
	return p.OriginalPrice > 0
}

// Category represents a single category page of a store.
type Category struct {
	Name    string
	URL     string
	Enabled bool
}

// StoreConfig contains the static per-retailer extraction settings.
// Selector lists are ordered by priority; the first match wins.
type StoreConfig struct {
	Name       string
	BaseURL    string
	Categories []Category

	// CardSelectors are tried in order until one yields at least one
	// product card; groups are never merged.
	CardSelectors []string

	// Sub-selectors applied within a single card. Empty lists fall back
	// to the generic defaults.
	NameSelectors     []string
	DiscountSelectors []string
	CategorySelectors []string

	// MaxProductsPerPage bounds how many cards are processed per page.
	// Zero means the package default.
	MaxProductsPerPage int
}

// EnabledCategories returns the categories currently switched on.
func (c *StoreConfig) EnabledCategories() []Category {
	var out []Category
	for _, cat := range c.Categories {
		if cat.Enabled {
			out = append(out, cat)
		}
	}
	return out
}
