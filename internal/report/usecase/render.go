package usecase

import (
	"context"

	"report-runtime/internal/model"
	"report-runtime/internal/report"
	"report-runtime/internal/widget"
)

func (uc *implUseCase) RenderWidgets(ctx context.Context, def model.ReportDefinition) error {
	return uc.render(ctx, def, false)
}

// render replaces the widget set and starts every controller. A restored
// render is marked so the ready handler does not save it again.
func (uc *implUseCase) render(ctx context.Context, def model.ReportDefinition, restored bool) error {
	specs := def.Widgets
	if uc.cfg.Embedded && !restored {
		spec, ok := embedTarget(specs, uc.cfg.EmbedSlug)
		if !ok {
			uc.l.Errorf(ctx, "report.usecase.render: no widget with slug %q", uc.cfg.EmbedSlug)
			uc.presenter.Alert(ctx, alertTitleReport, report.ErrEmbedNotFound.Error())
			return report.ErrEmbedNotFound
		}
		spec.Criteria = spec.Criteria.Merge(uc.cfg.EmbedCriteria)
		specs = []model.WidgetSpec{spec}
	}

	ctrls := make([]widget.Controller, 0, len(specs))
	for _, spec := range specs {
		ctrls = append(ctrls, uc.newController(spec))
	}

	uc.mu.Lock()
	old := uc.controllers
	uc.controllers = ctrls
	uc.meta = def.Meta
	uc.beginCycleLocked()
	uc.restored = restored
	plan := uc.needsPlan && !restored
	uc.needsPlan = uc.needsPlan && restored
	uc.mu.Unlock()

	for _, c := range old {
		c.Cancel()
	}

	uc.presenter.SetDateTime(ctx, def.Meta.Datetime, def.Meta.Timezone)
	uc.presenter.DisableActions(ctx)
	if plan {
		uc.scheduleReloads(ctx, def.Meta.Datetime)
	}

	for _, c := range ctrls {
		c.Start(ctx, nil)
	}
	// Cached widgets never report finishing, so a fully cached report
	// becomes ready here.
	uc.checkReady(ctx, nil)
	return nil
}

func (uc *implUseCase) newController(spec model.WidgetSpec) widget.Controller {
	return widget.New(widget.Options{
		Spec:       spec,
		Embedded:   uc.cfg.Embedded,
		ReportURL:  uc.cfg.ReportURL,
		Client:     uc.jobs,
		View:       uc.presenter.WidgetView(spec),
		Alerter:    uc.presenter,
		Exports:    uc.exports,
		Cadence:    uc.cadence,
		Logger:     uc.l,
		OnFinished: uc.onWidgetFinished,
	})
}

func embedTarget(specs []model.WidgetSpec, slug string) (model.WidgetSpec, bool) {
	for _, s := range specs {
		if s.Slug == slug {
			return s, true
		}
	}
	return model.WidgetSpec{}, false
}

func (uc *implUseCase) onWidgetFinished(c widget.Controller) {
	ctx := context.Background()
	uc.publishWidgetFinished(ctx, c)
	uc.checkReady(ctx, c)
}

// checkReady runs the ready handler once per loading cycle, when no
// current widget is still pending. finished is the widget whose
// completion triggered the check, if any.
func (uc *implUseCase) checkReady(ctx context.Context, finished widget.Controller) {
	uc.mu.Lock()
	if uc.fired || uc.phase != report.PhaseLoading {
		uc.mu.Unlock()
		return
	}
	if finished != nil && !uc.owns(finished) {
		uc.mu.Unlock()
		return
	}
	for _, c := range uc.controllers {
		if !c.State().Done() {
			uc.mu.Unlock()
			return
		}
	}

	uc.fired = true
	if finished != nil {
		if lu, ok := finished.LastUpdate(); ok {
			uc.meta.Datetime, uc.meta.Timezone = lu.Datetime, lu.Timezone
		}
	}
	ready := readyCycle{
		cycle:    uc.cycle,
		meta:     uc.meta,
		ctrls:    append([]widget.Controller(nil), uc.controllers...),
		restored: uc.restored,
		mode:     uc.mode,
	}
	uc.mu.Unlock()

	uc.handleReady(ctx, ready)
}

type readyCycle struct {
	cycle    uint64
	meta     model.Meta
	ctrls    []widget.Controller
	restored bool
	mode     report.Mode
}

func (uc *implUseCase) handleReady(ctx context.Context, r readyCycle) {
	uc.l.Infof(ctx, "report.usecase.handleReady: %d widgets finished", len(r.ctrls))

	if r.meta.Debug {
		uc.offerDebugArchive(ctx)
	}
	uc.presenter.SetDateTime(ctx, r.meta.Datetime, r.meta.Timezone)
	uc.presenter.EnableActions(ctx)

	token := ""
	if !r.restored {
		token = uc.persist(ctx, r)
	}
	uc.publishReady(ctx, r, token)
	uc.markReady(r.cycle)
}

// markReady moves the report to ready unless a newer cycle has started.
func (uc *implUseCase) markReady(cycle uint64) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if cycle != uc.cycle {
		return
	}
	uc.phase = report.PhaseReady
	uc.readies++
}

// persist saves the finished report and records a history entry for it.
func (uc *implUseCase) persist(ctx context.Context, r readyCycle) string {
	snap := model.SavedReportState{
		Meta:    model.Meta{Datetime: r.meta.Datetime, Timezone: r.meta.Timezone},
		Widgets: make([]model.WidgetSnapshot, 0, len(r.ctrls)),
	}
	for _, c := range r.ctrls {
		snap.Widgets = append(snap.Widgets, c.Snapshot())
	}

	token := uc.states.NewToken()
	if !uc.states.Save(ctx, token, snap) {
		uc.l.Warnf(ctx, "report.usecase.persist: report state not saved, no history entry")
		return ""
	}

	u := uc.history.Push(token)
	uc.mu.Lock()
	uc.token = token
	uc.mu.Unlock()
	uc.presenter.PushHistory(ctx, u)
	return token
}

// owns reports whether c belongs to the current widget set. uc.mu must be held.
func (uc *implUseCase) owns(c widget.Controller) bool {
	for _, o := range uc.controllers {
		if o == c {
			return true
		}
	}
	return false
}
