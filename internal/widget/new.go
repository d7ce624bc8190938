package widget

import (
	"context"

	"report-runtime/internal/job"
	"report-runtime/internal/widget/render"
	"report-runtime/pkg/clock"
	"report-runtime/pkg/log"
)

// New creates a controller in the idle state.
func New(opts Options) Controller {
	if opts.Logger == nil {
		opts.Logger = log.NewNop()
	}
	if opts.Clock == nil {
		opts.Clock = clock.New()
	}
	if opts.Cadence == (job.Cadence{}) {
		opts.Cadence = job.DefaultCadence()
	}
	if opts.View == nil {
		opts.View = nopView{}
	}
	if opts.Renderer == nil {
		opts.Renderer = render.New(opts.Spec.Type, opts.View)
	}
	if opts.Alerter == nil {
		opts.Alerter = nopAlerter{}
	}
	if opts.OnFinished == nil {
		opts.OnFinished = func(Controller) {}
	}
	return &implController{
		l:         opts.Logger,
		client:    opts.Client,
		view:      opts.View,
		renderer:  opts.Renderer,
		alerter:   opts.Alerter,
		exports:   opts.Exports,
		cadence:   opts.Cadence,
		clock:     opts.Clock,
		finished:  opts.OnFinished,
		spec:      opts.Spec,
		embedded:  opts.Embedded,
		reportURL: opts.ReportURL,
		criteria:  opts.Spec.Criteria.Clone(),
	}
}

type nopView struct{}

func (nopView) Draw(render.Rendering) {}
func (nopView) ShowLoading()          {}
func (nopView) SetProgress(int)       {}
func (nopView) HideLoading()          {}
func (nopView) ShowError(ErrorPanel)  {}

type nopAlerter struct{}

func (nopAlerter) Alert(_ context.Context, _, _ string) {}
