package usecase

import (
	"sync"

	"report-runtime/internal/export"
	"report-runtime/internal/job"
	"report-runtime/internal/model"
	"report-runtime/internal/navigation"
	"report-runtime/internal/report"
	"report-runtime/internal/report/repository"
	"report-runtime/internal/state"
	"report-runtime/internal/widget"
	"report-runtime/pkg/clock"
	"report-runtime/pkg/log"
)

// Config wires the orchestrator.
type Config struct {
	Report report.Config
	// Cadence is handed to every widget controller.
	Cadence job.Cadence
	// Clock drives scheduled reloads.
	Clock   clock.Clock
	History *navigation.History
}

type implUseCase struct {
	l         log.Logger
	repo      repository.ReportRepository
	jobs      job.Client
	states    state.UseCase
	presenter report.Presenter
	publisher report.Publisher
	exports   export.Repository
	cfg       report.Config
	cadence   job.Cadence
	clock     clock.Clock
	history   *navigation.History

	mu          sync.Mutex
	phase       report.Phase
	mode        report.Mode
	meta        model.Meta
	controllers []widget.Controller
	// cycle counts loading cycles; fired is set once the current one has
	// been handed to the ready handler.
	cycle     uint64
	fired     bool
	restored  bool
	needsPlan bool
	timer     clock.Timer
	stopped   bool
	token     string
	readies   int
}

func New(
	repo repository.ReportRepository,
	jobs job.Client,
	states state.UseCase,
	presenter report.Presenter,
	publisher report.Publisher,
	exports export.Repository,
	l log.Logger,
	cfg Config,
) report.UseCase {
	if cfg.Clock == nil {
		cfg.Clock = clock.New()
	}
	if cfg.Cadence == (job.Cadence{}) {
		cfg.Cadence = job.DefaultCadence()
	}
	if cfg.History == nil {
		cfg.History = navigation.New(cfg.Report.ReportURL)
	}
	return &implUseCase{
		l:         l,
		repo:      repo,
		jobs:      jobs,
		states:    states,
		presenter: presenter,
		publisher: publisher,
		exports:   exports,
		cfg:       cfg.Report,
		cadence:   cfg.Cadence,
		clock:     cfg.Clock,
		history:   cfg.History,
		phase:     report.PhaseNotStarted,
		mode:      report.ModeInteractive,
	}
}
