package kafka

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/IBM/sarama"
)

var errNotInitialized = errors.New("kafka: producer is not initialized")

func (c Config) validate() error {
	if len(c.Brokers) == 0 {
		return fmt.Errorf("kafka: at least one broker is required")
	}
	if c.Topic == "" {
		return fmt.Errorf("kafka: topic is required")
	}
	return nil
}

func (c Config) saramaConfig() *sarama.Config {
	sc := sarama.NewConfig()
	sc.Producer.RequiredAcks = sarama.WaitForLocal
	sc.Producer.Compression = sarama.CompressionSnappy
	sc.Producer.Return.Successes = true
	sc.Producer.Retry.Max = producerRetryMax
	sc.Producer.Timeout = producerTimeout
	sc.Version = kafkaVersion
	if c.ClientID != "" {
		sc.ClientID = c.ClientID
	}
	return sc
}

func newProducer(p sarama.SyncProducer, topic string) *producerImpl {
	return &producerImpl{producer: p, topic: topic}
}

func (p *producerImpl) Publish(ctx context.Context, msg Message) error {
	if p.producer == nil {
		return errNotInitialized
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	topic := msg.Topic
	if topic == "" {
		topic = p.topic
	}
	pm := &sarama.ProducerMessage{
		Topic:   topic,
		Value:   sarama.ByteEncoder(msg.Value),
		Headers: recordHeaders(msg.Headers),
	}
	if len(msg.Key) > 0 {
		pm.Key = sarama.ByteEncoder(msg.Key)
	}

	if _, _, err := p.producer.SendMessage(pm); err != nil {
		return fmt.Errorf("kafka: publish to %s: %w", topic, err)
	}
	return nil
}

func (p *producerImpl) Close() error {
	if p.producer == nil {
		return nil
	}
	return p.producer.Close()
}

func (p *producerImpl) HealthCheck() error {
	if p.producer == nil {
		return errNotInitialized
	}
	return nil
}

// recordHeaders emits headers in key order so records are reproducible.
func recordHeaders(h map[string]string) []sarama.RecordHeader {
	if len(h) == 0 {
		return nil
	}
	keys := make([]string, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]sarama.RecordHeader, 0, len(keys))
	for _, k := range keys {
		out = append(out, sarama.RecordHeader{Key: []byte(k), Value: []byte(h[k])})
	}
	return out
}
