package producer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"report-runtime/internal/report"
	kafkaDelivery "report-runtime/internal/report/delivery/kafka"
	pkgKafka "report-runtime/pkg/kafka"
	"report-runtime/pkg/log"
)

type fakeProducer struct {
	pkgKafka.IProducer
	msgs []pkgKafka.Message
	err  error
}

func (f *fakeProducer) Publish(_ context.Context, msg pkgKafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msg)
	return nil
}

func TestPublishWidgetFinished(t *testing.T) {
	fp := &fakeProducer{}
	p := New(log.NewNop(), fp)
	at := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

	err := p.PublishWidgetFinished(context.Background(), report.WidgetFinishedEvent{
		ReportURL: "https://reports.example.com/r/7/",
		WidgetID:  "12",
		Slug:      "sales",
		State:     "complete",
		JobID:     "job-1",
		At:        at,
	})
	if err != nil {
		t.Fatalf("PublishWidgetFinished: %v", err)
	}
	if len(fp.msgs) != 1 {
		t.Fatalf("published %d messages, want 1", len(fp.msgs))
	}

	msg := fp.msgs[0]
	if got := msg.Headers[kafkaDelivery.HeaderEventType]; got != kafkaDelivery.EventTypeWidgetFinished {
		t.Errorf("event type = %q", got)
	}
	if string(msg.Key) != "https://reports.example.com/r/7/" {
		t.Errorf("key = %q", msg.Key)
	}
	var body kafkaDelivery.WidgetFinishedMessage
	if err := json.Unmarshal(msg.Value, &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.WidgetID != "12" || body.JobID != "job-1" || !body.FinishedAt.Equal(at) {
		t.Errorf("body = %+v", body)
	}
}

func TestPublishReportReady(t *testing.T) {
	fp := &fakeProducer{}
	p := New(log.NewNop(), fp)

	err := p.PublishReportReady(context.Background(), report.ReportReadyEvent{
		ReportURL: "https://reports.example.com/r/7/",
		Mode:      "interactive",
		Token:     "tok",
		Widgets:   3,
		Failed:    1,
	})
	if err != nil {
		t.Fatalf("PublishReportReady: %v", err)
	}

	var body kafkaDelivery.ReportReadyMessage
	if err := json.Unmarshal(fp.msgs[0].Value, &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.WidgetCount != 3 || body.FailedWidgets != 1 || body.Token != "tok" {
		t.Errorf("body = %+v", body)
	}
	if got := fp.msgs[0].Headers[kafkaDelivery.HeaderEventType]; got != kafkaDelivery.EventTypeReportReady {
		t.Errorf("event type = %q", got)
	}
}

func TestPublishError(t *testing.T) {
	sentinel := errors.New("broker down")
	p := New(log.NewNop(), &fakeProducer{err: sentinel})

	err := p.PublishReportReady(context.Background(), report.ReportReadyEvent{ReportURL: "u"})
	if !errors.Is(err, sentinel) {
		t.Errorf("err = %v, want wrapped sentinel", err)
	}
}
