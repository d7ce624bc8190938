package kafka

import (
	"context"
	"fmt"

	"github.com/IBM/sarama"
)

// IProducer publishes messages synchronously. Implementations are safe for
// concurrent use.
type IProducer interface {
	// Publish sends msg, defaulting its topic to the configured one.
	Publish(ctx context.Context, msg Message) error
	Close() error
	HealthCheck() error
}

// NewProducer connects a synchronous producer to cfg.Brokers.
func NewProducer(cfg Config) (IProducer, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	p, err := sarama.NewSyncProducer(cfg.Brokers, cfg.saramaConfig())
	if err != nil {
		return nil, fmt.Errorf("kafka: create producer: %w", err)
	}
	return newProducer(p, cfg.Topic), nil
}
