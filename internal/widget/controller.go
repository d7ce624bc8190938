package widget

import (
	"context"
	"encoding/json"
	"errors"

	"report-runtime/internal/job"
	"report-runtime/internal/model"
)

func (c *implController) ID() model.WidgetID {
	return c.spec.ID
}

func (c *implController) Slug() string {
	return c.spec.Slug
}

func (c *implController) Spec() model.WidgetSpec {
	return c.spec
}

func (c *implController) Start(ctx context.Context, criteria model.Criteria) {
	c.mu.Lock()
	if criteria != nil {
		c.criteria = criteria.Clone()
	}

	cache := c.spec.Cache
	if cache == nil {
		cache = model.ParseCache(c.spec.Data)
	}
	if cache != nil {
		c.stopLocked()
		c.gen++
		gen := c.gen
		if cache.Status == model.CacheError {
			panel := ErrorPanel{Message: cache.Message, ServerException: cache.Exception != "", Details: cache.Exception}
			c.state = StateError
			c.panel = &panel
			c.payload = cache.Payload
			c.mu.Unlock()
			c.showError(gen, panel)
			return
		}
		c.state = StateComplete
		c.panel = nil
		c.payload = cache.Payload
		c.mu.Unlock()
		c.draw(ctx, gen, cache.Payload)
		return
	}

	pctx, gen := c.beginLocked(ctx)
	crit := c.criteria.Clone()
	c.mu.Unlock()

	if c.spec.PostURL == "" {
		c.fail(pctx, gen, ErrorPanel{Message: ErrNotReloadable.Error()})
		return
	}

	c.withView(gen, func(v View) {
		v.ShowLoading()
		v.SetProgress(0)
	})
	go c.run(pctx, gen, crit, false)
}

func (c *implController) Reload(ctx context.Context) error {
	if c.spec.PostURL == "" {
		return ErrNotReloadable
	}
	c.mu.Lock()
	pctx, gen := c.beginLocked(ctx)
	c.mu.Unlock()

	go c.reload(pctx, gen)
	return nil
}

func (c *implController) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
	c.gen++
	if c.state == StateRunning {
		c.state = StateIdle
	}
}

func (c *implController) Resize() {
	c.renderMu.Lock()
	defer c.renderMu.Unlock()
	c.renderer.OnResize()
}

func (c *implController) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *implController) LastUpdate() (LastUpdate, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.lastUpdate == nil {
		return LastUpdate{}, false
	}
	return *c.lastUpdate, true
}

func (c *implController) Payload() json.RawMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append(json.RawMessage(nil), c.payload...)
}

func (c *implController) JobID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.jobID
}

func (c *implController) Criteria() model.Criteria {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.criteria.Clone()
}

func (c *implController) EmbeddableCriteria() model.Criteria {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.criteria.Embeddable()
}

func (c *implController) ErrorPanel() (ErrorPanel, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.panel == nil {
		return ErrorPanel{}, false
	}
	return *c.panel, true
}

func (c *implController) Snapshot() model.WidgetSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return model.WidgetSnapshot{
		PostURL:   c.spec.PostURL,
		UpdateURL: c.spec.UpdateURL,
		Type:      c.spec.Type,
		ID:        c.spec.ID,
		Slug:      c.spec.Slug,
		Row:       c.spec.Row,
		Width:     c.spec.Width,
		Height:    c.spec.Height,
		Options:   c.spec.Options,
		Criteria:  c.criteria.Clone(),
		Status:    snapshotStatus(c.state),
		Data:      append(json.RawMessage(nil), c.payload...),
	}
}

func snapshotStatus(s State) model.CacheStatus {
	switch s {
	case StateComplete:
		return model.CacheComplete
	case StateError:
		return model.CacheError
	default:
		return 0
	}
}

// beginLocked cancels any outstanding poll and opens a new generation.
// The poll context keeps ctx values but not its cancellation.
func (c *implController) beginLocked(ctx context.Context) (context.Context, uint64) {
	c.stopLocked()
	c.gen++
	pctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	c.cancel = cancel
	c.state = StateRunning
	c.panel = nil
	return pctx, c.gen
}

func (c *implController) stopLocked() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

func (c *implController) current(gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen == gen
}

func (c *implController) complete(ctx context.Context, gen uint64, res job.Result) {
	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		return
	}
	c.state = StateComplete
	c.payload = res.Payload
	c.jobID = res.JobID
	c.mu.Unlock()

	c.draw(ctx, gen, res.Payload)
	c.finished(c)
}

func (c *implController) fail(ctx context.Context, gen uint64, panel ErrorPanel) {
	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		return
	}
	c.state = StateError
	c.panel = &panel
	c.payload = model.ErrorCache(panel.Message, panel.Details)
	c.jobID = ""
	c.mu.Unlock()

	c.l.Warnf(ctx, "widget.Controller.fail: widget %s: %s", c.spec.ID, panel.Message)
	c.showError(gen, panel)
	c.finished(c)
}

func (c *implController) draw(ctx context.Context, gen uint64, payload json.RawMessage) {
	c.renderMu.Lock()
	defer c.renderMu.Unlock()
	if !c.current(gen) {
		return
	}
	c.view.HideLoading()
	if err := c.renderer.Render(ctx, payload); err != nil {
		c.l.Errorf(ctx, "widget.Controller.draw: render widget %s: %v", c.spec.ID, err)
		c.view.ShowError(ErrorPanel{Message: "Unable to render widget: " + err.Error()})
	}
}

func (c *implController) showError(gen uint64, panel ErrorPanel) {
	c.withView(gen, func(v View) {
		v.HideLoading()
		v.ShowError(panel)
	})
}

func (c *implController) withView(gen uint64, f func(v View)) {
	c.renderMu.Lock()
	defer c.renderMu.Unlock()
	if c.current(gen) {
		f(c.view)
	}
}

// panelFor turns any job failure into the panel shown to the user.
func panelFor(err error) ErrorPanel {
	var je *job.JobError
	if errors.As(err, &je) {
		return ErrorPanel{Message: je.Message, ServerException: je.IsServerException(), Details: je.Exception}
	}
	var se *job.SubmissionError
	if errors.As(err, &se) && se.Message != "" {
		return ErrorPanel{Message: se.Message, ServerException: se.Exception != "", Details: se.Exception}
	}
	return ErrorPanel{Message: err.Error()}
}
