package usecase

import (
	"context"
	"errors"

	"report-runtime/internal/model"
	"report-runtime/internal/report"
	"report-runtime/internal/report/repository"
)

// Start runs the report in the first mode that applies: embedded,
// scheduled, static, print, then interactive.
func (uc *implUseCase) Start(ctx context.Context) error {
	mode := uc.startMode()
	uc.mu.Lock()
	uc.mode = mode
	uc.needsPlan = mode == report.ModeScheduled
	uc.mu.Unlock()

	uc.l.Infof(ctx, "report.usecase.Start: starting %s in %s mode", uc.cfg.ReportURL, mode)

	switch mode {
	case report.ModeEmbedded, report.ModeScheduled, report.ModeStatic:
		return uc.runFixed(ctx)
	case report.ModePrint:
		return uc.submit(ctx, report.RunInput{Criteria: uc.cfg.PrintCriteria})
	}

	if uc.cfg.RestoreToken != "" {
		ok, err := uc.Restore(ctx, uc.cfg.RestoreToken)
		if err != nil {
			uc.l.Warnf(ctx, "report.usecase.Start: restore %s: %v", uc.cfg.RestoreToken, err)
		}
		if ok {
			return nil
		}
	}
	if uc.cfg.AutoRun {
		return uc.Run(ctx, report.RunInput{})
	}
	return nil
}

func (uc *implUseCase) startMode() report.Mode {
	switch {
	case uc.cfg.Embedded:
		return report.ModeEmbedded
	case uc.cfg.ReloadInterval > 0 && !uc.cfg.Live:
		return report.ModeScheduled
	case uc.cfg.Static && !uc.cfg.Live:
		return report.ModeStatic
	case uc.cfg.Print || uc.cfg.PrintCriteria != nil:
		return report.ModePrint
	default:
		return report.ModeInteractive
	}
}

func (uc *implUseCase) Run(ctx context.Context, input report.RunInput) error {
	return uc.submit(ctx, input)
}

func (uc *implUseCase) submit(ctx context.Context, input report.RunInput) error {
	def, err := uc.repo.SubmitForm(ctx, repository.SubmitFormOptions{
		Criteria: input.Criteria,
		Debug:    input.Debug,
	})
	if err != nil {
		var fe *repository.FormError
		if errors.As(err, &fe) {
			uc.presenter.ShowFormErrors(ctx, fe.Body)
			return &report.CriteriaError{Body: fe.Body}
		}
		uc.l.Errorf(ctx, "report.usecase.submit: repo.SubmitForm: %v", err)
		uc.alertReportError(ctx, err)
		return errors.Join(report.ErrDefinitionFailed, err)
	}
	return uc.render(ctx, def, false)
}

// runFixed fetches the definition for the report's fixed criteria.
func (uc *implUseCase) runFixed(ctx context.Context) error {
	def, err := uc.repo.FetchDefinition(ctx)
	if err != nil {
		uc.l.Errorf(ctx, "report.usecase.runFixed: repo.FetchDefinition: %v", err)
		uc.alertReportError(ctx, err)
		return errors.Join(report.ErrDefinitionFailed, err)
	}
	return uc.render(ctx, def, false)
}

func (uc *implUseCase) ChangeCriteria(ctx context.Context, criteria model.Criteria) ([]model.FieldUpdate, error) {
	fields, err := uc.repo.CriteriaFields(ctx, criteria)
	if err != nil {
		var fe *repository.FormError
		if errors.As(err, &fe) {
			uc.presenter.ShowFormErrors(ctx, fe.Body)
			return nil, &report.CriteriaError{Body: fe.Body}
		}
		uc.l.Errorf(ctx, "report.usecase.ChangeCriteria: repo.CriteriaFields: %v", err)
		uc.alertReportError(ctx, err)
		return nil, errors.Join(report.ErrDefinitionFailed, err)
	}
	return fields, nil
}

func (uc *implUseCase) alertReportError(ctx context.Context, err error) {
	uc.presenter.Alert(ctx, alertTitleReport, "An error occurred: "+err.Error())
}
