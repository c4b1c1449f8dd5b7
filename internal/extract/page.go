package extract

import (
	"regexp"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"descuentosgo/dealworker/pkg/errors"
)

// DefaultMaxProductsPerPage bounds per-page work on stores with very
// large grids.
const DefaultMaxProductsPerPage = 100

var currencyHint = regexp.MustCompile(`(?i)\$\s*[0-9]|[0-9]\s*CLP|[0-9]\s*pesos`)

// PageExtractor locates repeated product cards in a category page and
// extracts a candidate from each.
type PageExtractor struct {
	cfg       StoreConfig
	extractor *Extractor
}

// NewPageExtractor creates a page extractor for one store.
func NewPageExtractor(cfg StoreConfig) *PageExtractor {
	return &PageExtractor{cfg: cfg, extractor: NewExtractor(cfg)}
}

// ExtractPage parses a raw HTML document and returns every candidate
// found. A page that matches nothing yields an empty slice; only a
// misconfigured store (no card selectors at all) is an error.
func (p *PageExtractor) ExtractPage(html string) ([]Product, error) {
	if len(p.cfg.CardSelectors) == 0 {
		return nil, errors.NewConfiguration("store "+p.cfg.Name+" has no card selectors", nil)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, errors.NewParsing(p.cfg.Name, "parsing page", err)
	}

	cards := p.findCards(doc)
	if cards == nil {
		// Unknown page structure: fall back to currency-bearing leaves.
		cards = fallbackCards(doc)
	}
	if len(cards) == 0 {
		return []Product{}, nil
	}

	limit := p.cfg.MaxProductsPerPage
	if limit <= 0 {
		limit = DefaultMaxProductsPerPage
	}
	if len(cards) > limit {
		cards = cards[:limit]
	}

	return p.processCards(cards), nil
}

// findCards tries the configured selector groups in order and keeps the
// first group with at least one match. Groups are never merged so that
// nested matching classes cannot double-extract the same card.
func (p *PageExtractor) findCards(doc *goquery.Document) []*goquery.Selection {
	for _, selector := range p.cfg.CardSelectors {
		sel := doc.Find(selector)
		if sel.Length() == 0 {
			continue
		}
		cards := make([]*goquery.Selection, 0, sel.Length())
		sel.Each(func(_ int, s *goquery.Selection) {
			cards = append(cards, s)
		})
		return cards
	}
	return nil
}

// fallbackCards locates leaf elements whose text carries a currency
// pattern and treats their parents as cards. Degraded but functional
// for page structures no selector group knows about.
func fallbackCards(doc *goquery.Document) []*goquery.Selection {
	var cards []*goquery.Selection
	seen := make(map[*html.Node]bool)

	doc.Find("body *").Each(func(_ int, s *goquery.Selection) {
		if s.Children().Length() > 0 {
			return
		}
		if !currencyHint.MatchString(s.Text()) {
			return
		}
		parent := s.Parent()
		if parent.Length() == 0 || seen[parent.Nodes[0]] {
			return
		}
		seen[parent.Nodes[0]] = true
		cards = append(cards, parent)
	})

	return cards
}

// processCards extracts candidates in parallel, one goroutine per card,
// collecting results by index so page order is preserved.
func (p *PageExtractor) processCards(cards []*goquery.Selection) []Product {
	results := make([]*Product, len(cards))
	var wg sync.WaitGroup

	for i, card := range cards {
		wg.Add(1)
		go func(i int, card *goquery.Selection) {
			defer wg.Done()
			results[i] = p.extractor.Extract(card)
		}(i, card)
	}
	wg.Wait()

	products := make([]Product, 0, len(cards))
	for _, candidate := range results {
		if candidate != nil {
			products = append(products, *candidate)
		}
	}
	return products
}
