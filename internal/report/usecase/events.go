package usecase

import (
	"context"

	"report-runtime/internal/report"
	"report-runtime/internal/widget"
)

func (uc *implUseCase) publishWidgetFinished(ctx context.Context, c widget.Controller) {
	if uc.publisher == nil {
		return
	}
	e := report.WidgetFinishedEvent{
		ReportURL: uc.cfg.ReportURL,
		WidgetID:  c.ID().String(),
		Slug:      c.Slug(),
		State:     c.State().String(),
		JobID:     c.JobID(),
		At:        uc.clock.Now().UTC(),
	}
	if p, ok := c.ErrorPanel(); ok {
		e.Message = p.Message
	}
	if err := uc.publisher.PublishWidgetFinished(ctx, e); err != nil {
		uc.l.Warnf(ctx, "report.usecase.publishWidgetFinished: %v", err)
	}
}

func (uc *implUseCase) publishReady(ctx context.Context, r readyCycle, token string) {
	if uc.publisher == nil {
		return
	}
	e := report.ReportReadyEvent{
		ReportURL: uc.cfg.ReportURL,
		Mode:      string(r.mode),
		Datetime:  r.meta.Datetime,
		Timezone:  r.meta.Timezone,
		Token:     token,
		Widgets:   len(r.ctrls),
		At:        uc.clock.Now().UTC(),
	}
	for _, c := range r.ctrls {
		if c.State() == widget.StateError {
			e.Failed++
		}
	}
	if err := uc.publisher.PublishReportReady(ctx, e); err != nil {
		uc.l.Warnf(ctx, "report.usecase.publishReady: %v", err)
	}
}
