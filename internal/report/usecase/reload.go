package usecase

import (
	"context"
	"errors"

	"report-runtime/internal/model"
	"report-runtime/internal/report"
	"report-runtime/internal/widget"
)

// ReloadAll reloads every widget, or refetches the whole definition for
// static reports.
func (uc *implUseCase) ReloadAll(ctx context.Context) error {
	uc.presenter.DisableActions(ctx)
	if uc.cfg.Static {
		return uc.runFixed(ctx)
	}

	uc.mu.Lock()
	// Reload happens under uc.mu so no widget can report finishing before
	// every reload has moved its widget back to running.
	reloaded := 0
	for _, c := range uc.controllers {
		if err := c.Reload(ctx); err != nil {
			if !errors.Is(err, widget.ErrNotReloadable) {
				uc.l.Warnf(ctx, "report.usecase.ReloadAll: widget %s: %v", c.ID(), err)
			}
			continue
		}
		reloaded++
	}
	if reloaded > 0 {
		uc.beginCycleLocked()
	}
	uc.mu.Unlock()

	if reloaded == 0 {
		uc.presenter.EnableActions(ctx)
	}
	return nil
}

func (uc *implUseCase) ReloadWidget(ctx context.Context, id model.WidgetID) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	c, ok := uc.findLocked(id)
	if !ok {
		return report.ErrWidgetNotFound
	}
	if err := c.Reload(ctx); err != nil {
		if errors.Is(err, widget.ErrNotReloadable) {
			return report.ErrWidgetNotReloadable
		}
		return err
	}
	uc.beginCycleLocked()
	return nil
}

// beginCycleLocked opens a new loading cycle. uc.mu must be held.
func (uc *implUseCase) beginCycleLocked() {
	uc.cycle++
	uc.phase = report.PhaseLoading
	uc.fired = false
	uc.restored = false
}

func (uc *implUseCase) findLocked(id model.WidgetID) (widget.Controller, bool) {
	for _, c := range uc.controllers {
		if c.ID() == id {
			return c, true
		}
	}
	return nil, false
}
