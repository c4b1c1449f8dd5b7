package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"descuentosgo/dealworker/internal/extract"
)

// CSVWriter appends validated products to a CSV file.
// It is safe for concurrent use.
type CSVWriter struct {
	mu     sync.Mutex
	file   *os.File
	writer *csv.Writer
}

// NewCSVWriter creates (or truncates) the CSV file at the given path and
// writes the header row. Intermediate directories are created automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	w := csv.NewWriter(f)

	if err := w.Write([]string{
		"store", "name", "current_price", "original_price", "discount_percentage",
		"reliability", "savings", "tags", "link", "image", "category", "extracted_at",
	}); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	w.Flush()

	return &CSVWriter{file: f, writer: w}, nil
}

// Write appends one row per product.
func (c *CSVWriter) Write(products []extract.Product) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, p := range products {
		row := []string{
			p.Store,
			p.Name,
			strconv.FormatFloat(p.CurrentPrice, 'f', 2, 64),
			strconv.FormatFloat(p.OriginalPrice, 'f', 2, 64),
			strconv.FormatFloat(p.DiscountPercentage, 'f', 2, 64),
			strconv.FormatFloat(p.Reliability, 'f', 2, 64),
			strconv.FormatFloat(p.Savings, 'f', 2, 64),
			strings.Join(p.Tags, ";"),
			p.Link,
			p.Image,
			p.Category,
			p.ExtractedAt.Format(time.RFC3339),
		}
		if err := c.writer.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.writer.Flush()
	return c.file.Close()
}
