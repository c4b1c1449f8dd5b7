package process

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"descuentosgo/dealworker/internal/extract"
)

// DefaultMinDiscount is the minimum discount a product must carry to
// survive validation.
const DefaultMinDiscount = 70.0

var (
	nameCleaner    = regexp.MustCompile(`[^\p{L}\p{N}\s\-.,%$_]`)
	punctStripper  = regexp.MustCompile(`[^\p{L}\p{N}\s]`)
	spaceCollapser = regexp.MustCompile(`\s+`)
)

// Processor turns raw extraction candidates into validated, deduplicated
// and enriched product records. It is a pure function over its input
// batch: no hidden state, no I/O.
type Processor struct {
	MinDiscount float64
}

// NewProcessor creates a processor with the given minimum discount.
func NewProcessor(minDiscount float64) *Processor {
	if minDiscount <= 0 {
		minDiscount = DefaultMinDiscount
	}
	return &Processor{MinDiscount: minDiscount}
}

// Process runs the full pipeline over a batch: normalize, validate,
// score, deduplicate, enrich. Candidates that fail validation are
// silently dropped; partial extraction is the steady state, not a
// failure mode.
func (p *Processor) Process(candidates []extract.Product, store string) []extract.Product {
	validated := make([]extract.Product, 0, len(candidates))

	for _, candidate := range candidates {
		product := cleanProduct(candidate, store)
		if !p.validate(&product) {
			continue
		}
		product.Reliability = extract.ReliabilityScore(
			product.CurrentPrice, product.OriginalPrice, product.DiscountPercentage)
		validated = append(validated, product)
	}

	deduped := Dedupe(validated)
	for i := range deduped {
		enrich(&deduped[i])
	}
	return deduped
}

// validate confirms the structural minimum: a name, a positive finite
// current price, and a discount at or above the configured threshold.
func (p *Processor) validate(product *extract.Product) bool {
	if product.Name == "" {
		return false
	}
	if product.CurrentPrice <= 0 || math.IsInf(product.CurrentPrice, 0) || math.IsNaN(product.CurrentPrice) {
		return false
	}
	if product.DiscountPercentage == 0 {
		product.DiscountPercentage = extract.DiscountFromPrices(product.OriginalPrice, product.CurrentPrice)
	}
	return product.DiscountPercentage >= p.MinDiscount
}

// cleanProduct normalizes text fields and URLs in a single enrichment
// step; the candidate is never mutated afterwards.
func cleanProduct(candidate extract.Product, store string) extract.Product {
	product := candidate
	product.Store = store
	product.Name = cleanText(product.Name)
	product.Category = cleanText(product.Category)
	product.Link = cleanURL(product.Link)
	product.Image = cleanURL(product.Image)
	return product
}

func cleanText(text string) string {
	cleaned := nameCleaner.ReplaceAllString(text, "")
	return strings.TrimSpace(spaceCollapser.ReplaceAllString(cleaned, " "))
}

func cleanURL(url string) string {
	url = strings.TrimSpace(url)
	if url == "" {
		return ""
	}
	if strings.HasPrefix(url, "//") {
		return "https:" + url
	}
	if !strings.HasPrefix(url, "http") {
		return "https://" + url
	}
	return url
}

// Dedupe removes duplicate records. Link identity takes precedence over
// the (store, name, price) triple since two listings sharing a URL are
// certainly the same product; of the duplicates, the highest-reliability
// record wins, with page order breaking ties.
func Dedupe(products []extract.Product) []extract.Product {
	index := make(map[string]int, len(products))
	unique := make([]extract.Product, 0, len(products))

	for _, product := range products {
		key := identityKey(&product)
		if at, seen := index[key]; seen {
			if product.Reliability > unique[at].Reliability {
				unique[at] = product
			}
			continue
		}
		index[key] = len(unique)
		unique = append(unique, product)
	}
	return unique
}

func identityKey(product *extract.Product) string {
	if product.Link != "" {
		return product.Store + "|" + product.Link
	}
	return fmt.Sprintf("%s|%s|%.2f", product.Store, normalizeName(product.Name), product.CurrentPrice)
}

func normalizeName(name string) string {
	stripped := punctStripper.ReplaceAllString(strings.ToLower(name), "")
	return strings.Join(strings.Fields(stripped), " ")
}

// enrich attaches the peso savings and descriptive tags.
func enrich(product *extract.Product) {
	if product.OriginalPrice > 0 && product.CurrentPrice > 0 {
		product.Savings = product.OriginalPrice - product.CurrentPrice
	}

	tags := make([]string, 0, 2)
	switch {
	case product.DiscountPercentage >= 90:
		tags = append(tags, "Mega Oferta")
	case product.DiscountPercentage >= 80:
		tags = append(tags, "Gran Descuento")
	case product.DiscountPercentage >= 70:
		tags = append(tags, "Oferta")
	}

	switch {
	case product.CurrentPrice <= 5000:
		tags = append(tags, "Precio Bajo")
	case product.CurrentPrice <= 20000:
		tags = append(tags, "Precio Medio")
	default:
		tags = append(tags, "Precio Alto")
	}
	product.Tags = tags
}

// FilterByDiscount returns the products at or above the threshold.
func FilterByDiscount(products []extract.Product, minDiscount float64) []extract.Product {
	var out []extract.Product
	for _, product := range products {
		if product.DiscountPercentage >= minDiscount {
			out = append(out, product)
		}
	}
	return out
}

// FilterByStore returns the products of one retailer.
func FilterByStore(products []extract.Product, store string) []extract.Product {
	var out []extract.Product
	for _, product := range products {
		if product.Store == store {
			out = append(out, product)
		}
	}
	return out
}

// FilterByCategory returns the products of one category.
func FilterByCategory(products []extract.Product, category string) []extract.Product {
	var out []extract.Product
	for _, product := range products {
		if product.Category == category {
			out = append(out, product)
		}
	}
	return out
}

// SortBy orders a copy of the batch by discount, price or name. Unknown
// fields leave the order untouched.
func SortBy(products []extract.Product, field string, descending bool) []extract.Product {
	sorted := make([]extract.Product, len(products))
	copy(sorted, products)

	var less func(i, j int) bool
	switch field {
	case "discount_percentage":
		less = func(i, j int) bool { return sorted[i].DiscountPercentage < sorted[j].DiscountPercentage }
	case "current_price":
		less = func(i, j int) bool { return sorted[i].CurrentPrice < sorted[j].CurrentPrice }
	case "name":
		less = func(i, j int) bool { return sorted[i].Name < sorted[j].Name }
	default:
		return sorted
	}

	if descending {
		inner := less
		less = func(i, j int) bool { return inner(j, i) }
	}
	sort.SliceStable(sorted, less)
	return sorted
}
