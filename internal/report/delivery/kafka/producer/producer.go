package producer

import (
	"context"
	"encoding/json"
	"fmt"

	"report-runtime/internal/report"
	kafkaDelivery "report-runtime/internal/report/delivery/kafka"
	pkgKafka "report-runtime/pkg/kafka"
)

func (p *implProducer) PublishWidgetFinished(ctx context.Context, e report.WidgetFinishedEvent) error {
	msg := kafkaDelivery.WidgetFinishedMessage{
		ReportURL:  e.ReportURL,
		WidgetID:   e.WidgetID,
		Slug:       e.Slug,
		State:      e.State,
		JobID:      e.JobID,
		Message:    e.Message,
		FinishedAt: e.At,
	}
	if err := p.publish(ctx, kafkaDelivery.EventTypeWidgetFinished, e.ReportURL, msg); err != nil {
		return err
	}

	p.l.Debugf(ctx, "report.delivery.kafka.producer.PublishWidgetFinished: widget %s %s", e.WidgetID, e.State)
	return nil
}

func (p *implProducer) PublishReportReady(ctx context.Context, e report.ReportReadyEvent) error {
	msg := kafkaDelivery.ReportReadyMessage{
		ReportURL:     e.ReportURL,
		Mode:          e.Mode,
		Datetime:      e.Datetime,
		Timezone:      e.Timezone,
		Token:         e.Token,
		WidgetCount:   e.Widgets,
		FailedWidgets: e.Failed,
		ReadyAt:       e.At,
	}
	if err := p.publish(ctx, kafkaDelivery.EventTypeReportReady, e.ReportURL, msg); err != nil {
		return err
	}

	p.l.Infof(ctx, "report.delivery.kafka.producer.PublishReportReady: %s ready, %d/%d widgets failed", e.ReportURL, e.Failed, e.Widgets)
	return nil
}

// publish keys records by report URL so one report's events stay ordered.
func (p *implProducer) publish(ctx context.Context, eventType, key string, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", eventType, err)
	}

	headers := map[string]string{
		kafkaDelivery.HeaderEventType: eventType,
		kafkaDelivery.HeaderSource:    kafkaDelivery.SourceReportRuntime,
	}
	err = p.producer.Publish(ctx, pkgKafka.Message{Key: []byte(key), Value: body, Headers: headers})
	if err != nil {
		p.l.Errorf(ctx, "report.delivery.kafka.producer.publish: %s: %v", eventType, err)
		return fmt.Errorf("failed to publish %s: %w", eventType, err)
	}
	return nil
}
