package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"report-runtime/internal/model"
	"report-runtime/internal/report/repository"
)

func (r *implRepository) FetchDefinition(ctx context.Context) (model.ReportDefinition, error) {
	u := r.abs(r.cfg.WidgetsURL)
	body, status, err := r.http.Get(ctx, u, nil)
	if err != nil {
		r.l.Errorf(ctx, "report.repository.http.FetchDefinition: GET %s: %v", u, err)
		return model.ReportDefinition{}, fmt.Errorf("%w: %v", repository.ErrRequestFailed, err)
	}
	if status != http.StatusOK {
		return model.ReportDefinition{}, &repository.StatusError{URL: u, StatusCode: status}
	}
	return r.parse(ctx, body)
}

func (r *implRepository) SubmitForm(ctx context.Context, opts repository.SubmitFormOptions) (model.ReportDefinition, error) {
	u := r.abs(r.cfg.FormURL)
	form := formValues(opts.Criteria)
	if opts.Debug {
		form.Set(formFieldDebug, "on")
	} else {
		form.Set(formFieldDebug, "")
	}

	body, status, err := r.http.PostForm(ctx, u, form, nil)
	if err != nil {
		r.l.Errorf(ctx, "report.repository.http.SubmitForm: POST %s: %v", u, err)
		return model.ReportDefinition{}, fmt.Errorf("%w: %v", repository.ErrRequestFailed, err)
	}
	switch {
	case status == http.StatusBadRequest:
		return model.ReportDefinition{}, &repository.FormError{Body: string(body)}
	case status != http.StatusOK:
		return model.ReportDefinition{}, &repository.StatusError{URL: u, StatusCode: status}
	}
	return r.parse(ctx, body)
}

func (r *implRepository) CriteriaFields(ctx context.Context, criteria model.Criteria) ([]model.FieldUpdate, error) {
	u := r.abs(strings.TrimRight(r.cfg.FormURL, "/") + "/" + criteriaPath)
	body, status, err := r.http.PostForm(ctx, u, formValues(criteria), nil)
	if err != nil {
		r.l.Errorf(ctx, "report.repository.http.CriteriaFields: POST %s: %v", u, err)
		return nil, fmt.Errorf("%w: %v", repository.ErrRequestFailed, err)
	}
	switch {
	case status == http.StatusBadRequest:
		return nil, &repository.FormError{Body: string(body)}
	case status != http.StatusOK:
		return nil, &repository.StatusError{URL: u, StatusCode: status}
	}

	var fields []model.FieldUpdate
	if err := json.Unmarshal(body, &fields); err != nil {
		r.l.Errorf(ctx, "report.repository.http.CriteriaFields: decode: %v", err)
		return nil, fmt.Errorf("%w: %v", repository.ErrMalformedResponse, err)
	}
	return fields, nil
}

func (r *implRepository) DebugArchive(ctx context.Context) ([]byte, error) {
	u := r.abs(r.cfg.DebugURL)
	body, status, err := r.http.Get(ctx, u, nil)
	if err != nil {
		r.l.Errorf(ctx, "report.repository.http.DebugArchive: GET %s: %v", u, err)
		return nil, fmt.Errorf("%w: %v", repository.ErrRequestFailed, err)
	}
	if status != http.StatusOK {
		return nil, &repository.StatusError{URL: u, StatusCode: status}
	}
	return body, nil
}

func (r *implRepository) parse(ctx context.Context, body []byte) (model.ReportDefinition, error) {
	def, err := model.ParseReportDefinition(body)
	if err != nil {
		r.l.Errorf(ctx, "report.repository.http.parse: %v", err)
		return model.ReportDefinition{}, fmt.Errorf("%w: %v", repository.ErrMalformedResponse, err)
	}
	return def, nil
}

func (r *implRepository) abs(u string) string {
	if r.cfg.Origin == "" {
		return u
	}
	base, err := url.Parse(strings.TrimRight(r.cfg.Origin, "/") + "/")
	if err != nil {
		return u
	}
	ref, err := url.Parse(u)
	if err != nil {
		return u
	}
	return base.ResolveReference(ref).String()
}

// formValues flattens criteria into form fields. Strings are sent bare,
// everything else as JSON text.
func formValues(c model.Criteria) url.Values {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	form := url.Values{}
	for _, k := range keys {
		if s, ok := c.String(k); ok {
			form.Set(k, s)
			continue
		}
		form.Set(k, string(c[k]))
	}
	return form
}
