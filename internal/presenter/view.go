package presenter

import (
	"context"

	"report-runtime/internal/widget"
	"report-runtime/internal/widget/render"
)

func (v *widgetView) ShowLoading() {
	v.mu.Lock()
	v.loading = true
	v.mu.Unlock()
}

func (v *widgetView) SetProgress(percent int) {
	v.mu.Lock()
	v.progress = percent
	v.mu.Unlock()
}

func (v *widgetView) HideLoading() {
	v.mu.Lock()
	v.loading = false
	v.mu.Unlock()
}

func (v *widgetView) ShowError(panel widget.ErrorPanel) {
	v.l.Warnf(context.Background(), "presenter.widgetView.ShowError: widget %s: %s", v.id, panel.Message)
	v.mu.Lock()
	v.loading = false
	v.panel = &panel
	v.mu.Unlock()
}

func (v *widgetView) Draw(r render.Rendering) {
	v.mu.Lock()
	v.panel = nil
	v.rendering = &r
	v.draws++
	v.mu.Unlock()
}

func (v *widgetView) reset(slug string) {
	v.mu.Lock()
	v.slug = slug
	v.loading = false
	v.progress = 0
	v.panel = nil
	v.mu.Unlock()
}

func (v *widgetView) page() WidgetPage {
	v.mu.Lock()
	defer v.mu.Unlock()

	wp := WidgetPage{
		ID:       v.id,
		Slug:     v.slug,
		Loading:  v.loading,
		Progress: v.progress,
		Draws:    v.draws,
	}
	if v.panel != nil {
		p := *v.panel
		wp.Error = &p
	}
	if v.rendering != nil {
		r := *v.rendering
		wp.Rendering = &r
	}
	return wp
}
