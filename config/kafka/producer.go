package kafka

import (
	"fmt"

	"report-runtime/config"
	"report-runtime/config/conn"
	"report-runtime/pkg/kafka"
)

var producer conn.Singleton[kafka.IProducer]

// ConnectProducer builds the lifecycle event producer once per process.
func ConnectProducer(cfg config.KafkaConfig) (kafka.IProducer, error) {
	return producer.Connect(func() (kafka.IProducer, error) {
		p, err := kafka.NewProducer(kafka.Config{
			Brokers:  cfg.Brokers,
			Topic:    cfg.Topic,
			ClientID: cfg.ClientID,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Kafka producer: %w", err)
		}
		return p, nil
	})
}

func DisconnectProducer() error {
	return producer.Close(func(p kafka.IProducer) error { return p.Close() })
}
