package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"report-runtime/internal/job"
	"report-runtime/internal/model"
	"report-runtime/internal/report"
	"report-runtime/internal/report/repository"
	"report-runtime/internal/widget"
	"report-runtime/internal/widget/render"
)

// fakeJobs answers polls from per-job gates when one is registered for the
// post URL; other jobs complete on the first poll with an empty table.
type fakeJobs struct {
	mu        sync.Mutex
	gates     map[string]chan job.Result
	submits   map[string]int
	criteria  map[string]model.Criteria
	refreshes int
}

func newFakeJobs() *fakeJobs {
	return &fakeJobs{
		gates:    map[string]chan job.Result{},
		submits:  map[string]int{},
		criteria: map[string]model.Criteria{},
	}
}

func (f *fakeJobs) gate(postURL string) chan job.Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch := make(chan job.Result, 4)
	f.gates[postURL] = ch
	return ch
}

func (f *fakeJobs) Submit(_ context.Context, postURL string, criteria model.Criteria) (job.Handle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submits[postURL]++
	f.criteria[postURL] = criteria.Clone()
	return job.Handle{URL: postURL}, nil
}

func (f *fakeJobs) Poll(ctx context.Context, h job.Handle) (job.Result, error) {
	f.mu.Lock()
	ch, gated := f.gates[h.URL]
	f.mu.Unlock()
	if !gated {
		return job.Result{State: job.StateComplete, Payload: json.RawMessage(`{"rows":[]}`), JobID: "1"}, nil
	}
	select {
	case res := <-ch:
		return res, nil
	case <-ctx.Done():
		return job.Result{}, ctx.Err()
	}
}

func (f *fakeJobs) PollExport(context.Context, job.Handle) (job.Result, error) {
	return job.Result{State: job.StateComplete, JobID: "1"}, nil
}

func (f *fakeJobs) RefreshCriteria(context.Context, string) (model.Meta, model.Criteria, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refreshes++
	return model.Meta{Datetime: "2024-01-01T00:20:00Z", Timezone: "UTC"}, model.Criteria{}, nil
}

func (f *fakeJobs) ExportURL(jobID string, format job.Format, filename string) string {
	return fmt.Sprintf("/jobs/%s/data/%s/?filename=%s", jobID, format, filename)
}

func (f *fakeJobs) Download(context.Context, string) ([]byte, error) {
	return []byte("a,b\n"), nil
}

func (f *fakeJobs) submitCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.submits {
		n += c
	}
	return n
}

func (f *fakeJobs) refreshCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.refreshes
}

type fakeRepo struct {
	mu        sync.Mutex
	def       model.ReportDefinition
	fetchErr  error
	submitErr error
	fetches   int
	forms     []repository.SubmitFormOptions
	archive   []byte
}

func (r *fakeRepo) FetchDefinition(context.Context) (model.ReportDefinition, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fetches++
	return r.def, r.fetchErr
}

func (r *fakeRepo) SubmitForm(_ context.Context, opts repository.SubmitFormOptions) (model.ReportDefinition, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.forms = append(r.forms, opts)
	return r.def, r.submitErr
}

func (r *fakeRepo) CriteriaFields(context.Context, model.Criteria) ([]model.FieldUpdate, error) {
	return []model.FieldUpdate{{ID: "id_host", HTML: "<select></select>"}}, nil
}

func (r *fakeRepo) DebugArchive(context.Context) ([]byte, error) {
	return r.archive, nil
}

func (r *fakeRepo) fetchCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.fetches
}

type fakePresenter struct {
	mu         sync.Mutex
	alerts     []string
	formErrors []string
	datetimes  []string
	enabled    int
	disabled   int
	navigated  []string
	history    []string
	confirm    bool
}

func (p *fakePresenter) Alert(_ context.Context, title, _ string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.alerts = append(p.alerts, title)
}

func (p *fakePresenter) Confirm(context.Context, string, string) bool {
	return p.confirm
}

func (p *fakePresenter) ShowFormErrors(_ context.Context, body string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.formErrors = append(p.formErrors, body)
}

func (p *fakePresenter) SetDateTime(_ context.Context, datetime, _ string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.datetimes = append(p.datetimes, datetime)
}

func (p *fakePresenter) EnableActions(context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.enabled++
}

func (p *fakePresenter) DisableActions(context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.disabled++
}

func (p *fakePresenter) Navigate(_ context.Context, url string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.navigated = append(p.navigated, url)
}

func (p *fakePresenter) PushHistory(_ context.Context, url string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.history = append(p.history, url)
}

func (p *fakePresenter) WidgetView(model.WidgetSpec) widget.View {
	return nopView{}
}

func (p *fakePresenter) enabledCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.enabled
}

type nopView struct{}

func (nopView) Draw(render.Rendering)       {}
func (nopView) ShowLoading()                {}
func (nopView) SetProgress(int)             {}
func (nopView) HideLoading()                {}
func (nopView) ShowError(widget.ErrorPanel) {}

type fakePublisher struct {
	mu       sync.Mutex
	finished []report.WidgetFinishedEvent
	ready    []report.ReportReadyEvent
}

func (p *fakePublisher) PublishWidgetFinished(_ context.Context, e report.WidgetFinishedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.finished = append(p.finished, e)
	return nil
}

func (p *fakePublisher) PublishReportReady(_ context.Context, e report.ReportReadyEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ready = append(p.ready, e)
	return nil
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(time.Millisecond)
	}
}
