package usecase

import "report-runtime/internal/report"

func (uc *implUseCase) Status() report.Status {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	s := report.Status{
		Phase:           uc.phase,
		Mode:            uc.mode,
		Datetime:        uc.meta.Datetime,
		Timezone:        uc.meta.Timezone,
		Debug:           uc.meta.Debug,
		Token:           uc.token,
		URL:             uc.history.Current(),
		ReloadScheduled: uc.timer != nil,
		ReadyCount:      uc.readies,
		Widgets:         make([]report.WidgetStatus, 0, len(uc.controllers)),
	}
	for _, c := range uc.controllers {
		ws := report.WidgetStatus{
			ID:    c.ID(),
			Slug:  c.Slug(),
			State: c.State().String(),
			JobID: c.JobID(),
		}
		if p, ok := c.ErrorPanel(); ok {
			ws.Error = &p
		}
		if lu, ok := c.LastUpdate(); ok {
			ws.LastUpdate = &lu
		}
		s.Widgets = append(s.Widgets, ws)
	}
	return s
}

func (uc *implUseCase) Stop() {
	uc.mu.Lock()
	uc.stopped = true
	if uc.timer != nil {
		uc.timer.Stop()
		uc.timer = nil
	}
	ctrls := uc.controllers
	uc.mu.Unlock()

	for _, c := range ctrls {
		c.Cancel()
	}
}

