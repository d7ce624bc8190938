package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"report-runtime/internal/export"
	"report-runtime/internal/job"
	"report-runtime/internal/report"
)

func (uc *implUseCase) ExportWidget(ctx context.Context, input report.ExportInput) (string, error) {
	uc.mu.Lock()
	c, ok := uc.findLocked(input.WidgetID)
	uc.mu.Unlock()
	if !ok {
		return "", report.ErrWidgetNotFound
	}

	var (
		loc string
		err error
	)
	switch job.Format(strings.ToLower(input.Format)) {
	case job.FormatCSV:
		loc, err = c.ExportCSV(ctx, input.Filename)
	case job.FormatJSON:
		loc, err = c.ExportJSON(ctx, input.Filename)
	default:
		return "", report.ErrInvalidFormat
	}
	if err != nil {
		return "", errors.Join(report.ErrExportFailed, err)
	}
	return loc, nil
}

// offerDebugArchive prompts for the server log archive of a debug run and
// hands the user its location.
func (uc *implUseCase) offerDebugArchive(ctx context.Context) {
	if !uc.presenter.Confirm(ctx, alertTitleDebug, debugPrompt) {
		return
	}
	if uc.exports == nil {
		uc.presenter.Navigate(ctx, uc.cfg.DebugURL)
		return
	}

	data, err := uc.repo.DebugArchive(ctx)
	if err != nil {
		uc.l.Errorf(ctx, "report.usecase.offerDebugArchive: repo.DebugArchive: %v", err)
		uc.presenter.Alert(ctx, alertTitleDebug, fmt.Sprintf("Unable to download server logs: %v", err))
		return
	}
	loc, err := uc.exports.Store(ctx, export.Export{
		ReportURL:   uc.cfg.ReportURL,
		Format:      "zip",
		Filename:    debugArchiveName,
		ContentType: export.ContentTypeFor("zip"),
		Data:        data,
		CreatedAt:   uc.clock.Now().UTC().Truncate(time.Second),
	})
	if err != nil {
		uc.l.Errorf(ctx, "report.usecase.offerDebugArchive: exports.Store: %v", err)
		uc.presenter.Alert(ctx, alertTitleDebug, err.Error())
		return
	}
	uc.presenter.Navigate(ctx, loc)
}
