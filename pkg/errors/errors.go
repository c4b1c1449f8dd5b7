package errors

import (
	"fmt"
	"time"
)

// ErrorType classifies scanner errors.
type ErrorType string

const (
	// ErrorTypeNetwork represents fetch-level network errors
	ErrorTypeNetwork ErrorType = "network"
	// ErrorTypeParsing represents HTML parsing errors
	ErrorTypeParsing ErrorType = "parsing"
	// ErrorTypeRateLimit represents rate limiting by a store
	ErrorTypeRateLimit ErrorType = "rate_limit"
	// ErrorTypeCache represents cache-related errors
	ErrorTypeCache ErrorType = "cache"
	// ErrorTypePublisher represents publisher-related errors
	ErrorTypePublisher ErrorType = "publisher"
	// ErrorTypeStorage represents persistence errors
	ErrorTypeStorage ErrorType = "storage"
	// ErrorTypeValidation represents product validation errors
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeConfiguration represents store or runtime configuration errors
	ErrorTypeConfiguration ErrorType = "configuration"
)

// ScanError represents a store-scoped scanner error.
type ScanError struct {
	Type    ErrorType
	Store   string
	Message string
	Err     error
	Time    time.Time
}

// Error implements the error interface.
func (e *ScanError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %s - %v", e.Type, e.Store, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Type, e.Store, e.Message)
}

// Unwrap returns the underlying error.
func (e *ScanError) Unwrap() error {
	return e.Err
}

// IsRetryable reports whether the next scan pass may succeed without a
// code or configuration change.
func (e *ScanError) IsRetryable() bool {
	switch e.Type {
	case ErrorTypeNetwork, ErrorTypeCache, ErrorTypePublisher, ErrorTypeStorage:
		return true
	default:
		return false
	}
}

// New creates a new ScanError.
func New(errType ErrorType, store, message string, err error) *ScanError {
	return &ScanError{
		Type:    errType,
		Store:   store,
		Message: message,
		Err:     err,
		Time:    time.Now(),
	}
}

// NewNetwork creates a new network error.
func NewNetwork(store, message string, err error) *ScanError {
	return New(ErrorTypeNetwork, store, message, err)
}

// NewParsing creates a new parsing error.
func NewParsing(store, message string, err error) *ScanError {
	return New(ErrorTypeParsing, store, message, err)
}

// NewRateLimit creates a new rate limit error.
func NewRateLimit(store string, duration time.Duration) *ScanError {
	message := fmt.Sprintf("rate limited for %v", duration)
	return New(ErrorTypeRateLimit, store, message, nil)
}

// NewCache creates a new cache error.
func NewCache(store, message string, err error) *ScanError {
	return New(ErrorTypeCache, store, message, err)
}

// NewPublisher creates a new publisher error.
func NewPublisher(store, message string, err error) *ScanError {
	return New(ErrorTypePublisher, store, message, err)
}

// NewStorage creates a new storage error.
func NewStorage(store, message string, err error) *ScanError {
	return New(ErrorTypeStorage, store, message, err)
}

// NewValidation creates a new validation error.
func NewValidation(store, message string) *ScanError {
	return New(ErrorTypeValidation, store, message, nil)
}

// NewConfiguration creates a new configuration error.
func NewConfiguration(message string, err error) *ScanError {
	return New(ErrorTypeConfiguration, "", message, err)
}
