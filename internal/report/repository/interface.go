package repository

import (
	"context"

	"report-runtime/internal/model"
)

// ReportRepository talks to the report server about the report as a whole.
//
//go:generate mockery --name ReportRepository
type ReportRepository interface {
	// FetchDefinition reads the report definition for fixed criteria.
	FetchDefinition(ctx context.Context) (model.ReportDefinition, error)
	// SubmitForm posts criteria to the report form and returns the definition to render.
	SubmitForm(ctx context.Context, opts SubmitFormOptions) (model.ReportDefinition, error)
	// CriteriaFields posts a partial form and returns re-rendered fields.
	CriteriaFields(ctx context.Context, criteria model.Criteria) ([]model.FieldUpdate, error)
	// DebugArchive downloads the server log archive of a debug run.
	DebugArchive(ctx context.Context) ([]byte, error)
}

type SubmitFormOptions struct {
	Criteria model.Criteria
	Debug    bool
}
