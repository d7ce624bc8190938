package presenter

import (
	"report-runtime/internal/report"
	"report-runtime/pkg/discord"
	"report-runtime/pkg/log"
)

// Presenter is the headless page: it logs what a browser would show and
// keeps the latest state for the control API.
type Presenter interface {
	report.Presenter
	// Page returns a copy of the current page state.
	Page() Page
}

type Config struct {
	// AutoConfirm is the answer given to Confirm prompts.
	AutoConfirm bool
	// MaxEntries bounds the alert and navigation logs.
	MaxEntries int
}

const defaultMaxEntries = 50

// New builds a Presenter. d may be nil; when set, alerts and prompts are
// mirrored to Discord.
func New(l log.Logger, d discord.IDiscord, cfg Config) Presenter {
	if cfg.MaxEntries <= 0 {
		cfg.MaxEntries = defaultMaxEntries
	}
	return &implPresenter{
		l:       l,
		discord: d,
		cfg:     cfg,
		views:   map[string]*widgetView{},
	}
}
