package publisher

// Publisher represents the downstream sink for validated products.
// Consumers (notification bots, dashboards) read from the streams; the
// scanner itself never formats user-facing messages.
type Publisher interface {
	// Publish publishes a product record to the main stream under the
	// given store key
	Publish(store string, message []byte) error

	// PublishAlert publishes a high-discount record to the alert stream
	PublishAlert(store string, message []byte) error

	// TrimStreams trims the streams to the configured maximum length
	TrimStreams() error

	// Close closes the publisher connection
	Close() error
}
