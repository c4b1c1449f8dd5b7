package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"descuentosgo/dealworker/config"
	"descuentosgo/dealworker/internal/extract"
	"descuentosgo/dealworker/internal/fetch"
	"descuentosgo/dealworker/internal/process"
	"descuentosgo/dealworker/services/cache"
	"descuentosgo/dealworker/services/publisher"
	"descuentosgo/dealworker/services/worker"
	"descuentosgo/dealworker/storage"
)

// A category page the way Chilean retailers render their offer grids.
const testHTML = `
<!DOCTYPE html>
<html>
<head>
    <title>Ofertas Tecnología</title>
</head>
<body>
    <div class="product-grid">
        <div class="product-card">
            <h3 class="product-name">Notebook Acer Aspire 5 15.6"</h3>
            <span class="price-now">$299.990</span>
            <span class="price-before">$999.990</span>
            <span class="discount-badge">-70%</span>
            <a href="/producto/notebook-acer"><img src="//cdn.tienda.cl/notebook.jpg"/></a>
        </div>
        <div class="product-card">
            <h3 class="product-name">Smartwatch deportivo GPS</h3>
            <span class="price-now">$19.990</span>
            <span class="price-before">$199.990</span>
            <a href="/producto/smartwatch"><img src="/img/smartwatch.jpg"/></a>
        </div>
        <div class="product-card">
            <h3 class="product-name">Set de sábanas 2 plazas</h3>
            <span class="price-now">$14.990</span>
            <span class="price-before">$19.990</span>
            <a href="/producto/sabanas"><img src="/img/sabanas.jpg"/></a>
        </div>
    </div>
</body>
</html>
`

type capturingPublisher struct {
	mu       sync.Mutex
	messages [][]byte
	alerts   [][]byte
}

var _ publisher.Publisher = (*capturingPublisher)(nil)

func (p *capturingPublisher) Publish(_ string, message []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, append([]byte(nil), message...))
	return nil
}

func (p *capturingPublisher) PublishAlert(_ string, message []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.alerts = append(p.alerts, append([]byte(nil), message...))
	return nil
}

func (p *capturingPublisher) TrimStreams() error { return nil }

func (p *capturingPublisher) Close() error { return nil }

type mapCache struct {
	mu    sync.Mutex
	items map[string][]byte
}

var _ cache.CacheService = (*mapCache)(nil)

func (c *mapCache) Get(key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if value, ok := c.items[key]; ok {
		return value, nil
	}
	return nil, errors.New("cache miss")
}

func (c *mapCache) Set(key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = value
	return nil
}

func (c *mapCache) Delete(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
	return nil
}

// TestScanPipeline drives the full path: HTTP fetch, card extraction,
// validation, enrichment, publication and persistence.
func TestScanPipeline(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(testHTML))
	}))
	defer server.Close()

	cfg := config.LoadConfig()
	cfg.RequestsPerSec = 100
	cfg.FetchDelay = 0
	cfg.FetchRandomDelay = 0

	cacheSvc := &mapCache{items: make(map[string][]byte)}
	pub := &capturingPublisher{}
	jsonDir := t.TempDir()
	jsonWriter, err := storage.NewJSONWriter(jsonDir)
	assert.NoError(t, err)

	stores := []extract.StoreConfig{{
		Name:    "tienda-test",
		BaseURL: server.URL,
		Categories: []extract.Category{
			{Name: "tecnologia", URL: server.URL + "/ofertas/tecnologia", Enabled: true},
		},
		CardSelectors: []string{".product-card"},
	}}

	w := worker.NewWorker(
		context.Background(),
		fetch.NewFetcher(cfg, cacheSvc),
		stores,
		process.NewProcessor(cfg.MinDiscountPercentage),
		pub,
		[]storage.ProductWriter{jsonWriter},
		cacheSvc,
		cfg.AlertDiscountThreshold,
		"",
		time.Minute,
	)

	total := w.RunScan()

	// The 25%-off bedsheet set never reaches the stream.
	assert.Equal(t, 2, total)
	assert.Len(t, pub.messages, 2)

	var notebook extract.Product
	assert.NoError(t, json.Unmarshal(pub.messages[0], &notebook))
	assert.Equal(t, "tienda-test", notebook.Store)
	assert.Equal(t, "tecnologia", notebook.Category)
	assert.Equal(t, 299990.0, notebook.CurrentPrice)
	assert.Equal(t, 999990.0, notebook.OriginalPrice)
	assert.Equal(t, 70.0, notebook.DiscountPercentage)
	assert.Equal(t, 700000.0, notebook.Savings)
	assert.Equal(t, server.URL+"/producto/notebook-acer", notebook.Link)
	assert.Equal(t, "https://cdn.tienda.cl/notebook.jpg", notebook.Image)
	assert.Contains(t, notebook.Tags, "Oferta")

	// The 90% smartwatch crosses the alert threshold exactly once.
	assert.Len(t, pub.alerts, 1)
	var alerted extract.Product
	assert.NoError(t, json.Unmarshal(pub.alerts[0], &alerted))
	assert.Equal(t, "Smartwatch deportivo GPS", alerted.Name)
	assert.InDelta(t, 0.9, alerted.Reliability, 1e-9)

	w.RunScan()
	assert.Len(t, pub.alerts, 1)
}
