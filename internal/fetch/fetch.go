package fetch

import (
	"context"
	"math/rand"
	"net/http"
	"time"

	"github.com/gocolly/colly/v2"
	"golang.org/x/time/rate"

	"descuentosgo/dealworker/config"
	"descuentosgo/dealworker/logger"
	"descuentosgo/dealworker/pkg/errors"
	"descuentosgo/dealworker/services/cache"
)

// Browser-like user agents rotated across requests.
var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Safari/605.1.15",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/119.0.0.0 Safari/537.36",
}

// Fetcher downloads category pages politely: a per-domain delay plus
// random jitter, a global requests-per-second cap across all stores,
// and a cache-backed block window after a store rate-limits us. The
// extraction core only ever sees the returned HTML string.
type Fetcher struct {
	limiter   *rate.Limiter
	cacheSvc  cache.CacheService
	limitRule *colly.LimitRule
	blockTime time.Duration
	timeout   time.Duration
	log       *logger.Logger
}

// NewFetcher creates a fetcher from the runtime configuration.
func NewFetcher(cfg config.Config, cacheSvc cache.CacheService) *Fetcher {
	return &Fetcher{
		limiter:  rate.NewLimiter(rate.Limit(cfg.RequestsPerSec), 1),
		cacheSvc: cacheSvc,
		limitRule: &colly.LimitRule{
			DomainGlob:  "*",
			Parallelism: 1,
			Delay:       cfg.FetchDelay,
			RandomDelay: cfg.FetchRandomDelay,
		},
		blockTime: cfg.BlockTime,
		timeout:   30 * time.Second,
		log:       logger.ForFetcher(),
	}
}

// FetchPage downloads one page for a store and returns its HTML.
func (f *Fetcher) FetchPage(ctx context.Context, store, url string) (string, error) {
	if f.cacheSvc != nil {
		if _, err := f.cacheSvc.Get(cache.BlockKey(store)); err == nil {
			f.log.Debug().Str("store", store).Msg("Store is in a block window, skipping fetch")
			return "", errors.NewRateLimit(store, f.blockTime)
		}
	}

	if err := f.limiter.Wait(ctx); err != nil {
		return "", errors.NewNetwork(store, "rate limiter interrupted", err)
	}

	collector := colly.NewCollector(
		colly.AllowURLRevisit(),
		colly.DetectCharset(),
	)
	collector.SetRequestTimeout(f.timeout)
	if err := collector.Limit(f.limitRule); err != nil {
		return "", errors.NewConfiguration("invalid fetch limit rule", err)
	}

	var (
		body     string
		fetchErr error
	)

	collector.OnRequest(func(r *colly.Request) {
		r.Headers.Set("User-Agent", userAgents[rand.Intn(len(userAgents))])
		r.Headers.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
		r.Headers.Set("Accept-Language", "es-CL,es;q=0.9,en;q=0.8")
	})

	collector.OnResponse(func(r *colly.Response) {
		body = string(r.Body)
	})

	collector.OnError(func(r *colly.Response, err error) {
		if r != nil && (r.StatusCode == http.StatusTooManyRequests || r.StatusCode == 430) {
			if f.cacheSvc != nil {
				f.cacheSvc.Set(cache.BlockKey(store), []byte("blocked"), f.blockTime)
			}
			fetchErr = errors.NewRateLimit(store, f.blockTime)
			return
		}
		fetchErr = errors.NewNetwork(store, "fetching "+url, err)
	})

	if err := collector.Visit(url); err != nil && fetchErr == nil {
		fetchErr = errors.NewNetwork(store, "visiting "+url, err)
	}
	collector.Wait()

	if fetchErr != nil {
		return "", fetchErr
	}
	if body == "" {
		return "", errors.NewNetwork(store, "empty response from "+url, nil)
	}

	f.log.Debug().Str("store", store).Str("url", url).Int("bytes", len(body)).Msg("Page fetched")
	return body, nil
}
