package widget

import (
	"context"
	"errors"
	"time"

	"report-runtime/internal/job"
	"report-runtime/internal/model"
)

// run submits criteria and follows the job to a terminal state. In quiet
// mode progress is not shown and completion is held back by the quiet delay.
func (c *implController) run(ctx context.Context, gen uint64, criteria model.Criteria, quiet bool) {
	h, err := c.client.Submit(ctx, c.spec.PostURL, criteria)
	if ctx.Err() != nil {
		return
	}
	if err != nil {
		c.fail(ctx, gen, panelFor(err))
		return
	}

	for {
		if !c.sleep(ctx, c.cadence.PollInterval) {
			return
		}
		res, err := c.client.Poll(ctx, h)
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			var me *job.MalformedResponseError
			if errors.As(err, &me) {
				c.l.Errorf(ctx, "widget.Controller.run: widget %s: %v", c.spec.ID, err)
			}
			c.fail(ctx, gen, panelFor(err))
			return
		}

		switch res.State {
		case job.StateComplete:
			if quiet {
				c.withView(gen, func(v View) { v.ShowLoading() })
				if !c.sleep(ctx, c.cadence.QuietDelay) {
					return
				}
			}
			c.complete(ctx, gen, res)
			return
		case job.StateError:
			c.fail(ctx, gen, panelFor(res.Err()))
			return
		default:
			if !quiet {
				c.withView(gen, func(v View) { v.SetProgress(res.Progress) })
			}
		}
	}
}

func (c *implController) reload(ctx context.Context, gen uint64) {
	crit := c.Criteria()
	if c.spec.UpdateURL != "" {
		meta, fresh, err := c.client.RefreshCriteria(ctx, c.spec.UpdateURL)
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			c.fail(ctx, gen, panelFor(err))
			return
		}

		c.mu.Lock()
		if gen != c.gen {
			c.mu.Unlock()
			return
		}
		c.criteria = fresh.Clone()
		c.lastUpdate = &LastUpdate{Datetime: meta.Datetime, Timezone: meta.Timezone}
		c.mu.Unlock()
		crit = fresh
	}
	c.run(ctx, gen, crit, true)
}

func (c *implController) sleep(ctx context.Context, d time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-c.clock.After(d):
		return true
	}
}
