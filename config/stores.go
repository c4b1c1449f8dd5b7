package config

import "descuentosgo/dealworker/internal/extract"

// Store-specific behavior is data, not code: every retailer is a row in
// this table, consumed by the same extraction pipeline.

var genericCardSelectors = []string{
	".product-item", ".product-card", ".product-grid-item",
	".product-tile", ".product-container", ".product-box",
}

// Stores returns the static configuration table for the supported
// Chilean retailers, bounded by the runtime per-page cap.
func Stores(cfg Config) []extract.StoreConfig {
	stores := []extract.StoreConfig{
		{
			Name:    "falabella",
			BaseURL: "https://www.falabella.com",
			Categories: []extract.Category{
				{Name: "Liquidación", URL: "https://www.falabella.com/falabella-cl/collection/liquidacion", Enabled: true},
				{Name: "Ofertas", URL: "https://www.falabella.com/falabella-cl/collection/ofertas", Enabled: true},
				{Name: "Tecnología", URL: "https://www.falabella.com/falabella-cl/category/cat20002/Tecnologia", Enabled: true},
				{Name: "Hogar", URL: "https://www.falabella.com/falabella-cl/category/cat20001/Hogar-y-Muebles", Enabled: true},
			},
			CardSelectors: []string{".pod-item", ".pod-details", ".product-item", ".product-card", ".product-grid-item"},
			NameSelectors: []string{".pod-subTitle", ".pod-title", ".product-name", "b.title-rebrand", "h2", "h3"},
		},
		{
			Name:    "paris",
			BaseURL: "https://www.paris.cl",
			Categories: []extract.Category{
				{Name: "Tecnología", URL: "https://www.paris.cl/tecnologia", Enabled: true},
				{Name: "Hogar", URL: "https://www.paris.cl/hogar", Enabled: true},
				{Name: "Deportes", URL: "https://www.paris.cl/deportes", Enabled: true},
			},
			CardSelectors: genericCardSelectors,
		},
		{
			Name:    "ripley",
			BaseURL: "https://simple.ripley.cl",
			Categories: []extract.Category{
				{Name: "Computación", URL: "https://simple.ripley.cl/tecno/computacion", Enabled: true},
			},
			CardSelectors: []string{".catalog-product-item", ".product-item", ".product-card"},
		},
		{
			Name:    "hites",
			BaseURL: "https://www.hites.com",
			Categories: []extract.Category{
				{Name: "Liquidación", URL: "https://www.hites.com/liquidacion", Enabled: true},
				{Name: "Tecnología", URL: "https://www.hites.com/tecnologia", Enabled: true},
			},
			CardSelectors: genericCardSelectors,
		},
		{
			Name:    "sodimac",
			BaseURL: "https://www.sodimac.cl",
			Categories: []extract.Category{
				{Name: "Liquidación", URL: "https://www.sodimac.cl/sodimac-cl/collection/liquidacion", Enabled: true},
				{Name: "Herramientas", URL: "https://www.sodimac.cl/sodimac-cl/category/cat20002/Herramientas", Enabled: true},
			},
			CardSelectors: genericCardSelectors,
		},
		{
			Name:    "easy",
			BaseURL: "https://www.easy.cl",
			Categories: []extract.Category{
				{Name: "Liquidación", URL: "https://www.easy.cl/easy-cl/collection/liquidacion", Enabled: true},
				{Name: "Herramientas", URL: "https://www.easy.cl/easy-cl/category/cat20002/Herramientas", Enabled: true},
			},
			CardSelectors: genericCardSelectors,
		},
		{
			Name:    "lider",
			BaseURL: "https://www.lider.cl",
			Categories: []extract.Category{
				{Name: "Ofertas", URL: "https://www.lider.cl/supermercado/category/Ofertas", Enabled: true},
				{Name: "Tecnología", URL: "https://www.lider.cl/supermercado/category/Tecnologia", Enabled: true},
			},
			CardSelectors: genericCardSelectors,
		},
		{
			Name:    "jumbo",
			BaseURL: "https://www.jumbo.cl",
			Categories: []extract.Category{
				{Name: "Ofertas", URL: "https://www.jumbo.cl/ofertas", Enabled: true},
				{Name: "Tecnología", URL: "https://www.jumbo.cl/tecnologia", Enabled: false},
			},
			CardSelectors: genericCardSelectors,
		},
		{
			Name:    "tottus",
			BaseURL: "https://www.tottus.cl",
			Categories: []extract.Category{
				{Name: "Ofertas", URL: "https://www.tottus.cl/ofertas", Enabled: true},
			},
			CardSelectors: genericCardSelectors,
		},
	}

	for i := range stores {
		stores[i].MaxProductsPerPage = cfg.MaxProductsPerPage
	}
	return stores
}

// StoreByName looks a store up in the table; ok is false for unknown
// names so callers can surface the configuration error explicitly.
func StoreByName(cfg Config, name string) (extract.StoreConfig, bool) {
	for _, store := range Stores(cfg) {
		if store.Name == name {
			return store, true
		}
	}
	return extract.StoreConfig{}, false
}
