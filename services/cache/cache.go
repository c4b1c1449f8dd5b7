package cache

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
	"time"
)

// CacheService represents a generic cache service. The scanner uses it
// for fetch block windows after a store rate-limits us, and to suppress
// repeat alerts for products already published.
type CacheService interface {
	// Get retrieves a value from the cache
	Get(key string) ([]byte, error)

	// Set stores a value in the cache with an expiration time
	Set(key string, value []byte, expiration time.Duration) error

	// Delete removes a value from the cache
	Delete(key string) error
}

// ProductKey derives a stable cache key for one product from its store
// and normalized name, used to suppress duplicate alerts across scans.
func ProductKey(store, name string) string {
	text := strings.ToLower(strings.TrimSpace(name)) + "_" + strings.ToLower(store)
	sum := md5.Sum([]byte(text))
	return "notified:" + hex.EncodeToString(sum[:])
}

// BlockKey is the cache key marking a store as rate limited.
func BlockKey(store string) string {
	return store + "_rate_limited"
}
