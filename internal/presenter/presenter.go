package presenter

import (
	"context"
	"time"

	"report-runtime/internal/model"
	"report-runtime/internal/widget"
)

func (p *implPresenter) Alert(ctx context.Context, title, body string) {
	p.l.Warnf(ctx, "presenter.Alert: %s: %s", title, body)

	p.mu.Lock()
	p.alerts = appendBounded(p.alerts, Alert{Title: title, Body: body, At: time.Now()}, p.cfg.MaxEntries)
	p.mu.Unlock()

	if p.discord != nil {
		if err := p.discord.SendWarning(ctx, title, body); err != nil {
			p.l.Errorf(ctx, "presenter.Alert: discord.SendWarning: %v", err)
		}
	}
}

func (p *implPresenter) Confirm(ctx context.Context, title, body string) bool {
	p.l.Infof(ctx, "presenter.Confirm: %s: %s (answer %t)", title, body, p.cfg.AutoConfirm)
	if p.discord != nil {
		if err := p.discord.SendInfo(ctx, title, body); err != nil {
			p.l.Errorf(ctx, "presenter.Confirm: discord.SendInfo: %v", err)
		}
	}
	return p.cfg.AutoConfirm
}

func (p *implPresenter) ShowFormErrors(ctx context.Context, body string) {
	p.l.Warnf(ctx, "presenter.ShowFormErrors: %s", body)
	p.mu.Lock()
	p.formErrors = body
	p.mu.Unlock()
}

func (p *implPresenter) SetDateTime(ctx context.Context, datetime, timezone string) {
	p.mu.Lock()
	p.datetime = datetime
	p.timezone = timezone
	p.mu.Unlock()
}

func (p *implPresenter) EnableActions(ctx context.Context) {
	p.setActions(true)
}

func (p *implPresenter) DisableActions(ctx context.Context) {
	p.setActions(false)
}

func (p *implPresenter) setActions(enabled bool) {
	p.mu.Lock()
	p.actionsEnabled = enabled
	if enabled {
		p.formErrors = ""
	}
	p.mu.Unlock()
}

func (p *implPresenter) Navigate(ctx context.Context, url string) {
	p.l.Infof(ctx, "presenter.Navigate: %s", url)
	p.mu.Lock()
	p.navigations = appendBounded(p.navigations, url, p.cfg.MaxEntries)
	p.mu.Unlock()
}

func (p *implPresenter) PushHistory(ctx context.Context, url string) {
	p.l.Debugf(ctx, "presenter.PushHistory: %s", url)
	p.mu.Lock()
	p.history = appendBounded(p.history, url, p.cfg.MaxEntries)
	p.mu.Unlock()
}

// WidgetView returns the surface for spec. A widget rebuilt under the same
// id keeps its surface, as a page keeps its DOM node.
func (p *implPresenter) WidgetView(spec model.WidgetSpec) widget.View {
	id := spec.ID.String()

	p.mu.Lock()
	defer p.mu.Unlock()
	if v, ok := p.views[id]; ok {
		v.reset(spec.Slug)
		return v
	}
	v := &widgetView{l: p.l, id: id, slug: spec.Slug}
	p.views[id] = v
	p.order = append(p.order, id)
	return v
}

func (p *implPresenter) Page() Page {
	p.mu.Lock()
	defer p.mu.Unlock()

	page := Page{
		Datetime:       p.datetime,
		Timezone:       p.timezone,
		ActionsEnabled: p.actionsEnabled,
		FormErrors:     p.formErrors,
		Alerts:         append([]Alert(nil), p.alerts...),
		Navigations:    append([]string(nil), p.navigations...),
		History:        append([]string(nil), p.history...),
		Widgets:        make([]WidgetPage, 0, len(p.order)),
	}
	if n := len(p.history); n > 0 {
		page.Location = p.history[n-1]
	}
	for _, id := range p.order {
		page.Widgets = append(page.Widgets, p.views[id].page())
	}
	return page
}

func appendBounded[T any](s []T, v T, limit int) []T {
	s = append(s, v)
	if len(s) > limit {
		s = s[len(s)-limit:]
	}
	return s
}
