package publisher

import (
	"context"

	"github.com/redis/go-redis/v9"

	"descuentosgo/dealworker/logger"
)

// RedisPublisher implements Publisher using Redis streams: one stream
// for every qualifying product, a second one for alert-threshold hits.
type RedisPublisher struct {
	client      *redis.Client
	ctx         context.Context
	stream      string
	alertStream string
	maxLength   int
	log         *logger.Logger
}

// NewRedisPublisher creates a new Redis publisher
func NewRedisPublisher(ctx context.Context, addr string, db int, stream, alertStream string, maxLength int) *RedisPublisher {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})

	return &RedisPublisher{
		client:      client,
		ctx:         ctx,
		stream:      stream,
		alertStream: alertStream,
		maxLength:   maxLength,
		log:         logger.ForPublisher(),
	}
}

// Publish adds a product record to the main stream, keyed by store.
func (p *RedisPublisher) Publish(store string, message []byte) error {
	return p.publish(p.stream, store, message)
}

// PublishAlert adds a high-discount record to the alert stream.
func (p *RedisPublisher) PublishAlert(store string, message []byte) error {
	return p.publish(p.alertStream, store, message)
}

func (p *RedisPublisher) publish(stream, store string, message []byte) error {
	return p.client.XAdd(p.ctx, &redis.XAddArgs{
		Stream: stream,
		Values: map[string]interface{}{
			store: string(message),
		},
	}).Err()
}

// TrimStreams trims both streams to the configured maximum length
func (p *RedisPublisher) TrimStreams() error {
	for _, stream := range []string{p.stream, p.alertStream} {
		if err := p.client.XTrimMaxLen(p.ctx, stream, int64(p.maxLength)).Err(); err != nil {
			return err
		}
	}
	p.log.Debug().Int("max_length", p.maxLength).Msg("Streams trimmed")
	return nil
}

// Close closes the Redis connection
func (p *RedisPublisher) Close() error {
	return p.client.Close()
}
