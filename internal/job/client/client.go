package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"report-runtime/internal/job"
	"report-runtime/internal/model"
)

// Submit posts the criteria as a form field and returns the job URL.
func (c *implClient) Submit(ctx context.Context, postURL string, criteria model.Criteria) (job.Handle, error) {
	postURL = c.abs(postURL)
	encoded, err := criteria.Encode()
	if err != nil {
		return job.Handle{}, &job.SubmissionError{URL: postURL, Err: err}
	}

	body, status, err := c.http.PostForm(ctx, postURL, url.Values{formFieldCriteria: {encoded}}, nil)
	if err != nil {
		c.l.Warnf(ctx, "job.client.Submit: post %s: %v", postURL, err)
		return job.Handle{}, &job.SubmissionError{URL: postURL, Err: err}
	}
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		e := &job.SubmissionError{URL: postURL, StatusCode: status, Body: truncate(body)}
		var eb errorBody
		if json.Unmarshal(body, &eb) == nil {
			e.Message, e.Exception = eb.Message, eb.Exception
		}
		c.l.Warnf(ctx, "job.client.Submit: %v", e)
		return job.Handle{}, e
	}

	var resp submitResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return job.Handle{}, &job.SubmissionError{URL: postURL, StatusCode: status, Body: truncate(body), Err: err}
	}
	if resp.JobURL == "" {
		return job.Handle{}, &job.SubmissionError{URL: postURL, StatusCode: status, Body: truncate(body), Err: job.ErrMissingJobURL}
	}

	return job.Handle{URL: resolve(postURL, resp.JobURL)}, nil
}

func (c *implClient) Poll(ctx context.Context, h job.Handle) (job.Result, error) {
	return c.poll(ctx, h.URL)
}

func (c *implClient) PollExport(ctx context.Context, h job.Handle) (job.Result, error) {
	u := h.URL
	if !strings.HasSuffix(u, "/") {
		u += "/"
	}
	return c.poll(ctx, u+exportStatusPath)
}

func (c *implClient) poll(ctx context.Context, jobURL string) (job.Result, error) {
	body, status, err := c.http.Get(ctx, jobURL, nil)
	if err != nil {
		return job.Result{}, &job.PollTransportError{URL: jobURL, Err: err}
	}
	if status != http.StatusOK {
		return job.Result{}, &job.PollTransportError{URL: jobURL, StatusCode: status}
	}

	var resp pollResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.l.Errorf(ctx, "job.client.poll: undecodable status from %s: %v", jobURL, err)
		return job.Result{}, &job.MalformedResponseError{URL: jobURL, Body: truncate(body), Err: err}
	}
	code, err := parseStatus(resp.Status)
	if err != nil {
		c.l.Errorf(ctx, "job.client.poll: bad status field from %s: %v", jobURL, err)
		return job.Result{}, &job.MalformedResponseError{URL: jobURL, Body: truncate(body), Err: err}
	}

	res := job.Result{
		JobID:     parseID(resp.ID),
		Message:   resp.Message,
		Exception: resp.Exception,
	}
	switch code {
	case job.WireStatusComplete:
		res.State = job.StateComplete
		res.Payload = resp.Data
		res.Progress = 100
	case job.WireStatusError:
		res.State = job.StateError
	default:
		res.State = job.StatePending
		res.Progress = parseProgress(resp.Progress)
	}
	return res, nil
}

// RefreshCriteria reads the current criteria and time window for one widget.
func (c *implClient) RefreshCriteria(ctx context.Context, updateURL string) (model.Meta, model.Criteria, error) {
	updateURL = c.abs(updateURL)
	body, status, err := c.http.Get(ctx, updateURL, nil)
	if err != nil {
		return model.Meta{}, nil, &job.RefreshError{URL: updateURL, Err: err}
	}
	if status != http.StatusOK {
		e := &job.RefreshError{URL: updateURL, StatusCode: status, Body: truncate(body)}
		var eb errorBody
		if json.Unmarshal(body, &eb) == nil {
			e.Message = eb.Message
		}
		return model.Meta{}, nil, e
	}

	var resp refreshResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.l.Errorf(ctx, "job.client.RefreshCriteria: undecodable body from %s: %v", updateURL, err)
		return model.Meta{}, nil, &job.MalformedResponseError{URL: updateURL, Body: truncate(body), Err: err}
	}
	if len(resp.Widgets) == 0 {
		return model.Meta{}, nil, &job.MalformedResponseError{URL: updateURL, Body: truncate(body), Err: job.ErrMissingCriteria}
	}
	criteria := resp.Widgets[0].Criteria
	if criteria == nil {
		criteria = model.Criteria{}
	}
	return resp.Meta, criteria, nil
}

// ExportURL builds <origin>/jobs/<id>/data/<format>/?filename=<name>.
func (c *implClient) ExportURL(jobID string, format job.Format, filename string) string {
	return fmt.Sprintf("%s/jobs/%s/data/%s/?filename=%s",
		strings.TrimRight(c.origin, "/"), url.PathEscape(jobID), format, url.QueryEscape(filename))
}

func (c *implClient) Download(ctx context.Context, u string) ([]byte, error) {
	body, status, err := c.http.Get(ctx, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", job.ErrDownloadFailed, err)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", job.ErrDownloadFailed, status)
	}
	return body, nil
}

func parseStatus(raw json.RawMessage) (int, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, job.ErrMissingStatus
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, err
		}
		return strconv.Atoi(s)
	}
	var n int
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, err
	}
	return n, nil
}

func parseProgress(raw json.RawMessage) int {
	var f float64
	if len(raw) == 0 || json.Unmarshal(raw, &f) != nil {
		return 0
	}
	return int(math.Max(0, math.Min(100, math.Round(f))))
}

func parseID(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	return string(raw)
}

// abs resolves a server-relative widget URL against the origin.
func (c *implClient) abs(u string) string {
	if c.origin == "" {
		return u
	}
	return resolve(strings.TrimRight(c.origin, "/")+"/", u)
}

func resolve(base, ref string) string {
	b, err := url.Parse(base)
	if err != nil {
		return ref
	}
	r, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return b.ResolveReference(r).String()
}

func truncate(b []byte) string {
	if len(b) > maxBodyInError {
		return string(b[:maxBodyInError])
	}
	return string(b)
}
