package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"report-runtime/pkg/clock"
)

// scheduleReloads arms the reload timer. When 0 < offset <= interval the
// first reload is aligned to the report time plus interval plus offset,
// then reloads repeat every interval. Otherwise reloads simply repeat.
func (uc *implUseCase) scheduleReloads(ctx context.Context, datetime string) {
	ctx = context.WithoutCancel(ctx)
	interval, offset := uc.cfg.ReloadInterval, uc.cfg.Offset
	if interval <= 0 {
		return
	}
	if offset <= 0 || offset > interval {
		uc.armInterval(ctx, interval)
		return
	}

	now := uc.clock.Now()
	base, err := parseReportTime(datetime, now)
	if err != nil {
		uc.l.Warnf(ctx, "report.usecase.scheduleReloads: %v, using plain interval", err)
		uc.armInterval(ctx, interval)
		return
	}
	next := base.Add(interval + offset)
	wait := next.Sub(now)
	if wait < 0 {
		wait = 0
	}
	uc.l.Infof(ctx, "report.usecase.scheduleReloads: first reload at %s", next.Format(time.RFC3339))

	uc.setTimer(uc.clock.AfterFunc(wait, func() {
		uc.scheduledReload(ctx)
		uc.armInterval(ctx, interval)
	}))
}

func (uc *implUseCase) armInterval(ctx context.Context, interval time.Duration) {
	var tick func()
	tick = func() {
		uc.scheduledReload(ctx)
		uc.setTimer(uc.clock.AfterFunc(interval, tick))
	}
	uc.setTimer(uc.clock.AfterFunc(interval, tick))
}

func (uc *implUseCase) scheduledReload(ctx context.Context) {
	if err := uc.ReloadAll(ctx); err != nil {
		uc.l.Errorf(ctx, "report.usecase.scheduledReload: ReloadAll: %v", err)
	}
}

func (uc *implUseCase) setTimer(t clock.Timer) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.stopped {
		t.Stop()
		return
	}
	if uc.timer != nil {
		uc.timer.Stop()
	}
	uc.timer = t
}

// parseReportTime reads the report timestamp. RFC 3339 is used as is. The
// legacy form ends with a wall clock "HH:MM:SS" taken as today in now's
// location, to the minute.
func parseReportTime(datetime string, now time.Time) (time.Time, error) {
	datetime = strings.TrimSpace(datetime)
	if t, err := time.Parse(time.RFC3339, datetime); err == nil {
		return t, nil
	}
	fields := strings.Fields(datetime)
	for i := len(fields) - 1; i >= 0; i-- {
		if !strings.Contains(fields[i], ":") {
			continue
		}
		clk, err := time.Parse(legacyTimeLayout, fields[i])
		if err != nil {
			clk, err = time.Parse("15:04", fields[i])
		}
		if err != nil {
			break
		}
		y, m, d := now.Date()
		return time.Date(y, m, d, clk.Hour(), clk.Minute(), 0, 0, now.Location()), nil
	}
	return time.Time{}, fmt.Errorf("unrecognised report time %q", datetime)
}
