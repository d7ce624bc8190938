package producer

import (
	"report-runtime/internal/report"
	pkgKafka "report-runtime/pkg/kafka"
	"report-runtime/pkg/log"
)

// Producer publishes report lifecycle events to Kafka.
type Producer interface {
	report.Publisher
}

type implProducer struct {
	l        log.Logger
	producer pkgKafka.IProducer
}

func New(l log.Logger, producer pkgKafka.IProducer) Producer {
	return &implProducer{
		l:        l,
		producer: producer,
	}
}
