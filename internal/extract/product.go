package extract

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	maxNameLength     = 200
	minNameLength     = 4
	maxFallbackName   = 100
	maxCategoryLength = 100
)

// Generic sub-selectors used when a store config leaves a list empty.
// Store-specific classes come first, generic headings next, any text
// carrier last.
var (
	defaultNameSelectors = []string{
		".product-name", ".product-title", ".pod-subTitle", ".name", ".title",
		"h1", "h2", "h3", "h4", "h5", "h6",
		"[class*='name']", "[class*='title']",
		"a", "span", "div",
	}
	defaultDiscountSelectors = []string{
		".discount", ".discount-badge", ".label-discount", "[class*='discount']", "[class*='dcto']",
	}
	defaultCategorySelectors = []string{
		".category", ".breadcrumb", "[class*='category']",
	}
	imageAttrs = []string{"src", "data-src", "data-lazy", "data-original"}
)

// Extractor assembles product candidates from individual card elements
// of a single store.
type Extractor struct {
	cfg StoreConfig
}

// NewExtractor creates an extractor for the given store configuration.
func NewExtractor(cfg StoreConfig) *Extractor {
	return &Extractor{cfg: cfg}
}

// Extract builds a candidate from one card selection. It returns nil
// when no name or no price is recoverable; loose selectors regularly
// capture ads and spacers, so a nil candidate is not an error.
func (e *Extractor) Extract(s *goquery.Selection) *Product {
	name := e.extractName(s)
	if name == "" {
		return nil
	}

	current, original, found := ExtractPrices(s.Text())
	if !found || current <= 0 {
		return nil
	}

	derived := DiscountFromPrices(original, current)
	label := e.extractDiscountLabel(s)
	discount := ReconcileDiscount(label, derived, original > 0)

	return &Product{
		Name:               name,
		CurrentPrice:       current,
		OriginalPrice:      original,
		DiscountPercentage: discount,
		Link:               e.extractLink(s),
		Image:              e.extractImage(s),
		Store:              e.cfg.Name,
		Category:           e.extractCategory(s),
		ExtractedAt:        time.Now(),
	}
}

func (e *Extractor) extractName(s *goquery.Selection) string {
	selectors := e.cfg.NameSelectors
	if len(selectors) == 0 {
		selectors = defaultNameSelectors
	}

	for _, selector := range selectors {
		text := strings.TrimSpace(s.Find(selector).First().Text())
		if len(text) >= minNameLength {
			return truncate(text, maxNameLength)
		}
	}

	// Last resort: the card's own text, heavily truncated.
	if own := strings.TrimSpace(s.Text()); len(own) >= minNameLength {
		return truncate(collapseWhitespace(own), maxFallbackName)
	}
	return ""
}

func (e *Extractor) extractDiscountLabel(s *goquery.Selection) float64 {
	selectors := e.cfg.DiscountSelectors
	if len(selectors) == 0 {
		selectors = defaultDiscountSelectors
	}

	for _, selector := range selectors {
		if label := DiscountFromLabel(s.Find(selector).First().Text()); label > 0 {
			return label
		}
	}
	// Badges are often plain text siblings of the prices.
	return DiscountFromLabel(s.Text())
}

func (e *Extractor) extractLink(s *goquery.Selection) string {
	href, exists := s.Find("a").First().Attr("href")
	if !exists || strings.TrimSpace(href) == "" {
		return ""
	}
	return ResolveURL(e.cfg.BaseURL, strings.TrimSpace(href))
}

func (e *Extractor) extractImage(s *goquery.Selection) string {
	img := s.Find("img").First()
	if img.Length() == 0 {
		return ""
	}
	for _, attr := range imageAttrs {
		if src, exists := img.Attr(attr); exists && strings.TrimSpace(src) != "" {
			return ResolveURL(e.cfg.BaseURL, strings.TrimSpace(src))
		}
	}
	return ""
}

func (e *Extractor) extractCategory(s *goquery.Selection) string {
	selectors := e.cfg.CategorySelectors
	if len(selectors) == 0 {
		selectors = defaultCategorySelectors
	}

	for _, selector := range selectors {
		if text := strings.TrimSpace(s.Find(selector).First().Text()); text != "" {
			return truncate(text, maxCategoryLength)
		}
	}
	return ""
}

// ResolveURL makes a page reference absolute against a store base URL.
func ResolveURL(base, ref string) string {
	switch {
	case strings.HasPrefix(ref, "//"):
		return "https:" + ref
	case strings.HasPrefix(ref, "http"):
		return ref
	case strings.HasPrefix(ref, "/"):
		return strings.TrimSuffix(base, "/") + ref
	default:
		return strings.TrimSuffix(base, "/") + "/" + ref
	}
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return strings.TrimSpace(string(runes[:max]))
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
