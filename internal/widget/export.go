package widget

import (
	"context"
	"fmt"
	"strings"

	"report-runtime/internal/export"
	"report-runtime/internal/job"
	"report-runtime/internal/model"
)

func (c *implController) ExportCSV(ctx context.Context, filename string) (string, error) {
	return c.export(ctx, job.FormatCSV, filename)
}

func (c *implController) ExportJSON(ctx context.Context, filename string) (string, error) {
	return c.export(ctx, job.FormatJSON, filename)
}

// export downloads the data of the widget's finished job, or of a fresh
// export job when there is none, into the export repository. Failures are
// alerted and never touch widget state.
func (c *implController) export(ctx context.Context, format job.Format, filename string) (string, error) {
	title := strings.ToUpper(string(format)) + " Export Error"

	c.mu.Lock()
	jobID := c.jobID
	crit := c.criteria.Clone()
	c.mu.Unlock()

	if jobID == "" {
		if c.spec.PostURL == "" {
			c.alerter.Alert(ctx, title, ErrNotExportable.Error())
			return "", ErrNotExportable
		}
		id, err := c.runExportJob(ctx, crit)
		if err != nil {
			c.alerter.Alert(ctx, title, "The server returned the following error: "+err.Error())
			return "", fmt.Errorf("%w: %v", ErrExportFailed, err)
		}
		jobID = id
	}

	name := c.exportName(filename)
	u := c.client.ExportURL(jobID, format, name)
	if c.exports == nil {
		return u, nil
	}

	data, err := c.client.Download(ctx, u)
	if err != nil {
		c.alerter.Alert(ctx, title, "The server returned the following HTTP error: "+err.Error())
		return "", fmt.Errorf("%w: %v", ErrExportFailed, err)
	}
	loc, err := c.exports.Store(ctx, export.Export{
		ReportURL:   c.reportURL,
		WidgetID:    c.spec.ID.String(),
		Slug:        c.spec.Slug,
		Format:      string(format),
		Filename:    name,
		ContentType: export.ContentTypeFor(string(format)),
		Data:        data,
		CreatedAt:   c.clock.Now(),
	})
	if err != nil {
		c.l.Errorf(ctx, "widget.Controller.export: store widget %s export: %v", c.spec.ID, err)
		c.alerter.Alert(ctx, title, err.Error())
		return "", fmt.Errorf("%w: %v", ErrExportFailed, err)
	}
	return loc, nil
}

func (c *implController) runExportJob(ctx context.Context, crit model.Criteria) (string, error) {
	h, err := c.client.Submit(ctx, c.spec.PostURL, crit)
	if err != nil {
		return "", err
	}
	for {
		res, err := c.client.PollExport(ctx, h)
		if err != nil {
			return "", err
		}
		switch res.State {
		case job.StateComplete:
			if res.JobID == "" {
				return "", ErrNotExportable
			}
			return res.JobID, nil
		case job.StateError:
			return "", res.Err()
		}
		if !c.sleep(ctx, c.cadence.ExportPollInterval) {
			return "", ctx.Err()
		}
	}
}

func (c *implController) exportName(filename string) string {
	for _, candidate := range []string{filename, c.spec.Slug} {
		if name := export.SanitizeFilename(candidate); name != "" {
			return name
		}
	}
	return "widget" + export.SanitizeFilename(c.spec.ID.String())
}
