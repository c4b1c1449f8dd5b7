package worker

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"descuentosgo/dealworker/internal/extract"
	"descuentosgo/dealworker/internal/process"
	"descuentosgo/dealworker/logger"
	"descuentosgo/dealworker/services/cache"
	"descuentosgo/dealworker/services/dashboard"
	"descuentosgo/dealworker/services/publisher"
	"descuentosgo/dealworker/storage"
)

// alertSuppression is how long a product stays muted after an alert.
const alertSuppression = 24 * time.Hour

// PageFetcher supplies raw category-page HTML to the scan loop. The
// extraction pipeline itself never performs I/O.
type PageFetcher interface {
	FetchPage(ctx context.Context, store, url string) (string, error)
}

// Worker drives the scan cycle: fetch every enabled category of every
// store, extract and process candidates, then publish, persist and
// report the results.
type Worker struct {
	ctx            context.Context
	fetcher        PageFetcher
	stores         []extract.StoreConfig
	processor      *process.Processor
	publisher      publisher.Publisher
	writers        []storage.ProductWriter
	cacheSvc       cache.CacheService
	alertThreshold float64
	reportPath     string
	scanInterval   time.Duration
	log            *logger.Logger
}

// NewWorker creates a new worker.
func NewWorker(
	ctx context.Context,
	fetcher PageFetcher,
	stores []extract.StoreConfig,
	processor *process.Processor,
	pub publisher.Publisher,
	writers []storage.ProductWriter,
	cacheSvc cache.CacheService,
	alertThreshold float64,
	reportPath string,
	scanInterval time.Duration,
) *Worker {
	return &Worker{
		ctx:            ctx,
		fetcher:        fetcher,
		stores:         stores,
		processor:      processor,
		publisher:      pub,
		writers:        writers,
		cacheSvc:       cacheSvc,
		alertThreshold: alertThreshold,
		reportPath:     reportPath,
		scanInterval:   scanInterval,
		log:            logger.ForWorker(),
	}
}

// Start runs scan cycles until the context is cancelled.
func (w *Worker) Start() error {
	for {
		start := time.Now()
		total := w.RunScan()
		w.log.Info().
			Int("products", total).
			Dur("elapsed", time.Since(start)).
			Msg("Scan cycle finished")

		select {
		case <-w.ctx.Done():
			return w.ctx.Err()
		case <-time.After(w.scanInterval):
		}
	}
}

// RunScan executes one full pass over all stores in parallel and
// returns the number of validated products found.
func (w *Worker) RunScan() int {
	var (
		mu  sync.Mutex
		all []extract.Product
		wg  sync.WaitGroup
	)

	for _, store := range w.stores {
		wg.Add(1)
		go func(store extract.StoreConfig) {
			defer wg.Done()
			products := w.scanStore(store)
			if len(products) == 0 {
				return
			}
			mu.Lock()
			all = append(all, products...)
			mu.Unlock()
		}(store)
	}
	wg.Wait()

	w.persist(all)

	if w.publisher != nil {
		if err := w.publisher.TrimStreams(); err != nil {
			logger.LogError("worker", err, "trimming streams")
		}
	}

	if w.reportPath != "" {
		stats := process.ComputeStatistics(all)
		if err := dashboard.WriteReport(stats, w.reportPath); err != nil {
			logger.LogError("worker", err, "writing dashboard report")
		}
	}

	return len(all)
}

// scanStore fetches every enabled category of one store, extracts the
// candidates and runs the processing pipeline over the store batch.
func (w *Worker) scanStore(store extract.StoreConfig) []extract.Product {
	log := logger.ForStore(store.Name)
	pageExtractor := extract.NewPageExtractor(store)

	var candidates []extract.Product
	for _, category := range store.EnabledCategories() {
		select {
		case <-w.ctx.Done():
			return nil
		default:
		}

		html, err := w.fetcher.FetchPage(w.ctx, store.Name, category.URL)
		if err != nil {
			log.Warn().Err(err).Str("category", category.Name).Msg("Fetch failed")
			continue
		}

		pageProducts, err := pageExtractor.ExtractPage(html)
		if err != nil {
			log.Error().Err(err).Str("category", category.Name).Msg("Extraction failed")
			continue
		}

		for i := range pageProducts {
			if pageProducts[i].Category == "" {
				pageProducts[i].Category = category.Name
			}
		}
		candidates = append(candidates, pageProducts...)

		log.Debug().
			Str("category", category.Name).
			Int("candidates", len(pageProducts)).
			Msg("Page extracted")
	}

	products := w.processor.Process(candidates, store.Name)
	log.Info().
		Int("candidates", len(candidates)).
		Int("validated", len(products)).
		Msg("Store scanned")

	w.publish(products)
	return products
}

// publish sends every product to the main stream and alert-threshold
// hits to the alert stream, muting products alerted recently.
func (w *Worker) publish(products []extract.Product) {
	if w.publisher == nil {
		return
	}

	for _, product := range products {
		data, err := json.Marshal(product)
		if err != nil {
			logger.LogError("worker", err, "marshaling product %s", product.Name)
			continue
		}

		if err := w.publisher.Publish(product.Store, data); err != nil {
			logger.LogError("worker", err, "publishing product %s", product.Name)
			continue
		}

		if product.DiscountPercentage < w.alertThreshold {
			continue
		}
		if w.alreadyAlerted(product) {
			continue
		}
		if err := w.publisher.PublishAlert(product.Store, data); err != nil {
			logger.LogError("worker", err, "publishing alert for %s", product.Name)
		}
	}
}

func (w *Worker) alreadyAlerted(product extract.Product) bool {
	if w.cacheSvc == nil {
		return false
	}
	key := cache.ProductKey(product.Store, product.Name)
	if _, err := w.cacheSvc.Get(key); err == nil {
		return true
	}
	w.cacheSvc.Set(key, []byte("1"), alertSuppression)
	return false
}

func (w *Worker) persist(products []extract.Product) {
	if len(products) == 0 {
		return
	}
	for _, writer := range w.writers {
		if err := writer.Write(products); err != nil {
			logger.LogError("worker", err, "persisting batch")
		}
	}
}
