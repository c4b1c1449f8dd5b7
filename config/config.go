package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config represents the runtime application configuration. Per-store
// extraction settings live in stores.go; everything here comes from the
// environment with sensible defaults.
type Config struct {
	// Redis configuration
	RedisAddr            string
	RedisDB              int
	RedisStream          string
	RedisAlertStream     string
	RedisStreamMaxLength int

	// Memcache configuration
	MemcacheAddr string

	// Scanner configuration
	ScanInterval           time.Duration
	MinDiscountPercentage  float64
	AlertDiscountThreshold float64
	MaxProductsPerPage     int

	// Fetcher politeness
	FetchDelay       time.Duration
	FetchRandomDelay time.Duration
	RequestsPerSec   float64
	BlockTime        time.Duration

	// Persistence
	OutputDir   string
	PostgresDSN string

	// Dashboard report output ("" disables the report)
	ReportPath string

	// Environment
	Environment string
}

// LoadConfig loads the configuration from environment variables with defaults
func LoadConfig() Config {
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	maxLen, _ := strconv.Atoi(getEnv("REDIS_STREAM_MAX_LENGTH", "500"))
	scanInterval, _ := strconv.Atoi(getEnv("SCAN_INTERVAL_SECONDS", "300"))
	minDiscount, _ := strconv.ParseFloat(getEnv("MIN_DISCOUNT_PERCENTAGE", "70"), 64)
	alertThreshold, _ := strconv.ParseFloat(getEnv("ALERT_DISCOUNT_THRESHOLD", "85"), 64)
	maxPerPage, _ := strconv.Atoi(getEnv("MAX_PRODUCTS_PER_PAGE", "100"))
	fetchDelay, _ := strconv.Atoi(getEnv("FETCH_DELAY_SECONDS", "1"))
	randomDelay, _ := strconv.Atoi(getEnv("FETCH_RANDOM_DELAY_SECONDS", "2"))
	rps, _ := strconv.ParseFloat(getEnv("REQUESTS_PER_SECOND", "1"), 64)
	blockTime, _ := strconv.Atoi(getEnv("BLOCK_TIME_SECONDS", "300"))

	return Config{
		RedisAddr:            getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:              redisDB,
		RedisStream:          getEnv("REDIS_STREAM", "ofertas"),
		RedisAlertStream:     getEnv("REDIS_ALERT_STREAM", "ofertas:alertas"),
		RedisStreamMaxLength: maxLen,
		MemcacheAddr:         getEnv("MEMCACHE_ADDR", "localhost:11211"),

		ScanInterval:           time.Duration(scanInterval) * time.Second,
		MinDiscountPercentage:  minDiscount,
		AlertDiscountThreshold: alertThreshold,
		MaxProductsPerPage:     maxPerPage,

		FetchDelay:       time.Duration(fetchDelay) * time.Second,
		FetchRandomDelay: time.Duration(randomDelay) * time.Second,
		RequestsPerSec:   rps,
		BlockTime:        time.Duration(blockTime) * time.Second,

		OutputDir:   getEnv("OUTPUT_DIR", "data"),
		PostgresDSN: getEnv("POSTGRES_DSN", ""),
		ReportPath:  getEnv("REPORT_PATH", ""),

		Environment: getEnv("SCANNER_ENVIRONMENT", "development"),
	}
}

// Validate checks the configuration for caller bugs before the scanner
// starts.
func (c *Config) Validate() error {
	if c.MinDiscountPercentage < 0 || c.MinDiscountPercentage > 100 {
		return fmt.Errorf("MIN_DISCOUNT_PERCENTAGE must be in [0,100], got %v", c.MinDiscountPercentage)
	}
	if c.AlertDiscountThreshold < c.MinDiscountPercentage || c.AlertDiscountThreshold > 100 {
		return fmt.Errorf("ALERT_DISCOUNT_THRESHOLD must be in [%v,100], got %v", c.MinDiscountPercentage, c.AlertDiscountThreshold)
	}
	if c.MaxProductsPerPage <= 0 {
		return fmt.Errorf("MAX_PRODUCTS_PER_PAGE must be positive, got %d", c.MaxProductsPerPage)
	}
	if c.ScanInterval <= 0 {
		return fmt.Errorf("SCAN_INTERVAL_SECONDS must be positive, got %v", c.ScanInterval)
	}
	if c.RequestsPerSec <= 0 {
		return fmt.Errorf("REQUESTS_PER_SECOND must be positive, got %v", c.RequestsPerSec)
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
