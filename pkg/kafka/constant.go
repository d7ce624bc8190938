package kafka

import (
	"time"

	"github.com/IBM/sarama"
)

const (
	producerTimeout  = 10 * time.Second
	producerRetryMax = 3
)

var kafkaVersion = sarama.V2_6_0_0
