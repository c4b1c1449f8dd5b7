package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"descuentosgo/dealworker/internal/extract"
)

// JSONWriter exports each batch to a timestamped JSON file.
type JSONWriter struct {
	outputDir string
}

// NewJSONWriter creates a writer targeting the given directory.
func NewJSONWriter(outputDir string) (*JSONWriter, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("json: create output dir %s: %w", outputDir, err)
	}
	return &JSONWriter{outputDir: outputDir}, nil
}

// Write saves the batch; an empty batch writes nothing.
func (w *JSONWriter) Write(products []extract.Product) error {
	if len(products) == 0 {
		return nil
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	path := filepath.Join(w.outputDir, fmt.Sprintf("ofertas_%s.json", timestamp))

	data, err := json.MarshalIndent(products, "", "  ")
	if err != nil {
		return fmt.Errorf("json: marshal batch: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("json: write %s: %w", path, err)
	}
	return nil
}

// Close is a no-op for the JSON writer.
func (w *JSONWriter) Close() error {
	return nil
}
