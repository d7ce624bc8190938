package kafka

import "github.com/IBM/sarama"

// Config holds the producer settings.
type Config struct {
	Brokers  []string
	Topic    string
	ClientID string
}

// Message is one record. Topic may be empty to use Config.Topic.
type Message struct {
	Topic   string
	Key     []byte
	Value   []byte
	Headers map[string]string
}

type producerImpl struct {
	producer sarama.SyncProducer
	topic    string
}
