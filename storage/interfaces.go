package storage

import "descuentosgo/dealworker/internal/extract"

// ProductWriter is the interface any persistence backend must satisfy.
// The extraction core has no knowledge of storage formats; writers
// receive already-validated products.
type ProductWriter interface {
	Write(products []extract.Product) error
	Close() error
}
