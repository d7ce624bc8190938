package widget

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"report-runtime/internal/export"
	"report-runtime/internal/export/repository/memory"
	"report-runtime/internal/job"
	"report-runtime/internal/model"
	"report-runtime/internal/widget/render"
)

type pollStep struct {
	res job.Result
	err error
}

// fakeClient scripts the job backend. Submission n gets the poll steps
// returned by script(n); the last step repeats once exhausted.
type fakeClient struct {
	mu        sync.Mutex
	script    func(n int) []pollStep
	submitErr error
	submits   []model.Criteria
	polls     map[string]int

	refreshMeta model.Meta
	refreshCrit model.Criteria
	refreshErr  error

	exportSteps []pollStep
	exportPolls int
	downloads   []string
	downloadErr error
}

func newFakeClient(script func(n int) []pollStep) *fakeClient {
	return &fakeClient{script: script, polls: map[string]int{}}
}

func (f *fakeClient) Submit(_ context.Context, _ string, criteria model.Criteria) (job.Handle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.submitErr != nil {
		return job.Handle{}, f.submitErr
	}
	f.submits = append(f.submits, criteria.Clone())
	return job.Handle{URL: fmt.Sprintf("job-%d", len(f.submits)-1)}, nil
}

func (f *fakeClient) Poll(_ context.Context, h job.Handle) (job.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int
	fmt.Sscanf(h.URL, "job-%d", &n)
	steps := f.script(n)
	i := f.polls[h.URL]
	f.polls[h.URL]++
	if i >= len(steps) {
		i = len(steps) - 1
	}
	return steps[i].res, steps[i].err
}

func (f *fakeClient) PollExport(_ context.Context, _ job.Handle) (job.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.exportPolls
	f.exportPolls++
	if i >= len(f.exportSteps) {
		i = len(f.exportSteps) - 1
	}
	return f.exportSteps[i].res, f.exportSteps[i].err
}

func (f *fakeClient) RefreshCriteria(_ context.Context, _ string) (model.Meta, model.Criteria, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.refreshMeta, f.refreshCrit, f.refreshErr
}

func (f *fakeClient) ExportURL(jobID string, format job.Format, filename string) string {
	return fmt.Sprintf("http://origin/jobs/%s/data/%s/?filename=%s", jobID, format, filename)
}

func (f *fakeClient) Download(_ context.Context, url string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.downloads = append(f.downloads, url)
	if f.downloadErr != nil {
		return nil, f.downloadErr
	}
	return []byte("a,b\n1,2\n"), nil
}

func (f *fakeClient) submitCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.submits)
}

func (f *fakeClient) pollCount(url string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.polls[url]
}

type recordingView struct {
	mu       sync.Mutex
	progress []int
	errors   []ErrorPanel
	loading  int
}

func (v *recordingView) Draw(render.Rendering) {}
func (v *recordingView) ShowLoading() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.loading++
}
func (v *recordingView) SetProgress(p int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.progress = append(v.progress, p)
}
func (v *recordingView) HideLoading() {}
func (v *recordingView) ShowError(p ErrorPanel) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.errors = append(v.errors, p)
}

func (v *recordingView) snapshot() ([]int, []ErrorPanel) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]int(nil), v.progress...), append([]ErrorPanel(nil), v.errors...)
}

type countingRenderer struct {
	mu       sync.Mutex
	payloads []string
	err      error
}

func (r *countingRenderer) Render(_ context.Context, data json.RawMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.payloads = append(r.payloads, string(data))
	return r.err
}

func (r *countingRenderer) OnResize() {}

func (r *countingRenderer) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.payloads)
}

type recordingAlerter struct {
	mu     sync.Mutex
	titles []string
}

func (a *recordingAlerter) Alert(_ context.Context, title, _ string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.titles = append(a.titles, title)
}

type harness struct {
	ctrl     Controller
	client   *fakeClient
	view     *recordingView
	renderer *countingRenderer
	alerter  *recordingAlerter
	finished chan Controller
}

func newHarness(spec model.WidgetSpec, client *fakeClient, exports export.Repository) *harness {
	h := &harness{
		client:   client,
		view:     &recordingView{},
		renderer: &countingRenderer{},
		alerter:  &recordingAlerter{},
		finished: make(chan Controller, 16),
	}
	h.ctrl = New(Options{
		Spec:     spec,
		Client:   client,
		View:     h.view,
		Renderer: h.renderer,
		Alerter:  h.alerter,
		Exports:  exports,
		Cadence: job.Cadence{
			PollInterval:       time.Millisecond,
			QuietDelay:         time.Millisecond,
			ExportPollInterval: time.Millisecond,
		},
		OnFinished: func(c Controller) { h.finished <- c },
	})
	return h
}

func (h *harness) waitFinished(t *testing.T) {
	t.Helper()
	select {
	case <-h.finished:
	case <-time.After(2 * time.Second):
		t.Fatalf("widget did not finish, state %s", h.ctrl.State())
	}
}

func (h *harness) expectNoFinish(t *testing.T) {
	t.Helper()
	select {
	case <-h.finished:
		t.Fatalf("unexpected finished notification")
	case <-time.After(30 * time.Millisecond):
	}
}

func testSpec() model.WidgetSpec {
	return model.WidgetSpec{
		PostURL:   "/report/1/widget/7/job/",
		UpdateURL: "/report/1/widget/7/",
		ID:        "7",
		Slug:      "traffic-by-port",
		Type:      model.TypeTag{Module: "tables", Class: "TableWidget"},
		Criteria:  model.Criteria{"duration": json.RawMessage(`"1h"`)},
	}
}

func pending(p int) pollStep {
	return pollStep{res: job.Result{State: job.StatePending, Progress: p}}
}

func completed(payload, id string) pollStep {
	return pollStep{res: job.Result{State: job.StateComplete, Payload: json.RawMessage(payload), JobID: id}}
}

func TestStartCached(t *testing.T) {
	tests := []struct {
		name      string
		data      string
		cache     *model.CachedData
		wantState State
	}{
		{name: "complete payload", data: `{"status":3,"data":{"rows":[]}}`, wantState: StateComplete},
		{name: "legacy error status", data: `{"status":"error","message":"boom"}`, wantState: StateError},
		{name: "numeric error status", data: `{"status":4,"message":"boom","exception":"Traceback"}`, wantState: StateError},
		{name: "decoded cache with null payload", data: `null`, cache: &model.CachedData{Status: model.CacheComplete}, wantState: StateComplete},
		{name: "decoded cache wins over data", data: `{"status":4,"message":"x"}`, cache: &model.CachedData{Status: model.CacheError, Message: "boom"}, wantState: StateError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := testSpec()
			spec.Data = json.RawMessage(tt.data)
			spec.Cache = tt.cache
			client := newFakeClient(func(int) []pollStep { return []pollStep{pending(0)} })
			h := newHarness(spec, client, nil)

			h.ctrl.Start(context.Background(), nil)

			if got := h.ctrl.State(); got != tt.wantState {
				t.Fatalf("State() = %s, want %s", got, tt.wantState)
			}
			if got := client.submitCount(); got != 0 {
				t.Errorf("submits = %d, want 0", got)
			}
			h.expectNoFinish(t)
			if tt.wantState == StateComplete {
				if got := h.renderer.count(); got != 1 {
					t.Errorf("renders = %d, want 1", got)
				}
				return
			}
			panel, ok := h.ctrl.ErrorPanel()
			if !ok || panel.Message != "boom" {
				t.Errorf("ErrorPanel() = %+v, %v, want message boom", panel, ok)
			}
		})
	}
}

func TestStartCompletes(t *testing.T) {
	client := newFakeClient(func(int) []pollStep {
		return []pollStep{pending(10), pending(40), completed(`{"rows":[[1]]}`, "42")}
	})
	h := newHarness(testSpec(), client, nil)

	h.ctrl.Start(context.Background(), model.Criteria{"duration": json.RawMessage(`"15m"`)})
	h.waitFinished(t)

	if got := h.ctrl.State(); got != StateComplete {
		t.Fatalf("State() = %s, want complete", got)
	}
	if got := h.ctrl.JobID(); got != "42" {
		t.Errorf("JobID() = %q, want 42", got)
	}
	if got := string(h.ctrl.Payload()); got != `{"rows":[[1]]}` {
		t.Errorf("Payload() = %s", got)
	}
	if got := h.renderer.count(); got != 1 {
		t.Errorf("renders = %d, want 1", got)
	}
	progress, _ := h.view.snapshot()
	want := []int{0, 10, 40}
	if fmt.Sprint(progress) != fmt.Sprint(want) {
		t.Errorf("progress = %v, want %v", progress, want)
	}
	if got, _ := client.submits[0].String("duration"); got != "15m" {
		t.Errorf("submitted duration = %q, want 15m", got)
	}
	h.expectNoFinish(t)
}

func TestStartFails(t *testing.T) {
	tests := []struct {
		name          string
		submitErr     error
		step          pollStep
		wantMessage   string
		wantException bool
	}{
		{
			name:          "server exception",
			step:          pollStep{res: job.Result{State: job.StateError, Message: "Query failed", Exception: "Traceback (most recent call last)"}},
			wantMessage:   "Query failed",
			wantException: true,
		},
		{
			name:        "plain job error",
			step:        pollStep{res: job.Result{State: job.StateError, Message: "No data"}},
			wantMessage: "No data",
		},
		{
			name:        "submission rejected",
			submitErr:   &job.SubmissionError{URL: "/job/", StatusCode: 500, Message: "Internal error"},
			wantMessage: "Internal error",
		},
		{
			name:        "poll transport failure",
			step:        pollStep{err: &job.PollTransportError{URL: "job-0", Err: errors.New("connection refused")}},
			wantMessage: (&job.PollTransportError{URL: "job-0", Err: errors.New("connection refused")}).Error(),
		},
		{
			name:        "malformed poll response",
			step:        pollStep{err: &job.MalformedResponseError{URL: "job-0", Body: "<html>", Err: errors.New("bad json")}},
			wantMessage: (&job.MalformedResponseError{URL: "job-0", Body: "<html>", Err: errors.New("bad json")}).Error(),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newFakeClient(func(int) []pollStep { return []pollStep{tt.step} })
			client.submitErr = tt.submitErr
			h := newHarness(testSpec(), client, nil)

			h.ctrl.Start(context.Background(), nil)
			h.waitFinished(t)

			if got := h.ctrl.State(); got != StateError {
				t.Fatalf("State() = %s, want error", got)
			}
			panel, ok := h.ctrl.ErrorPanel()
			if !ok {
				t.Fatal("ErrorPanel() not set")
			}
			if panel.Message != tt.wantMessage {
				t.Errorf("Message = %q, want %q", panel.Message, tt.wantMessage)
			}
			if panel.ServerException != tt.wantException {
				t.Errorf("ServerException = %v, want %v", panel.ServerException, tt.wantException)
			}
			_, shown := h.view.snapshot()
			if len(shown) != 1 {
				t.Errorf("ShowError calls = %d, want 1", len(shown))
			}
			if cache := model.ParseCache(h.ctrl.Snapshot().Data); cache == nil || cache.Status != model.CacheError {
				t.Errorf("snapshot data = %s, want error cache", h.ctrl.Snapshot().Data)
			}
		})
	}
}

func TestRenderFailureKeepsComplete(t *testing.T) {
	client := newFakeClient(func(int) []pollStep { return []pollStep{completed(`{}`, "1")} })
	h := newHarness(testSpec(), client, nil)
	h.renderer.err = render.ErrInvalidPayload

	h.ctrl.Start(context.Background(), nil)
	h.waitFinished(t)

	if got := h.ctrl.State(); got != StateComplete {
		t.Errorf("State() = %s, want complete", got)
	}
	if _, shown := h.view.snapshot(); len(shown) != 1 {
		t.Errorf("ShowError calls = %d, want 1", len(shown))
	}
}

func TestReloadWhileRunning(t *testing.T) {
	client := newFakeClient(func(n int) []pollStep {
		if n == 0 {
			return []pollStep{pending(5)}
		}
		return []pollStep{pending(50), completed(`{"rows":[[2]]}`, "99")}
	})
	client.refreshMeta = model.Meta{Datetime: "2026-10-19T10:00:00Z", Timezone: "UTC"}
	client.refreshCrit = model.Criteria{"duration": json.RawMessage(`"1d"`)}
	h := newHarness(testSpec(), client, nil)

	h.ctrl.Start(context.Background(), nil)
	deadline := time.Now().Add(2 * time.Second)
	for client.pollCount("job-0") < 2 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}

	if err := h.ctrl.Reload(context.Background()); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	h.waitFinished(t)

	before := client.pollCount("job-0")
	time.Sleep(20 * time.Millisecond)
	if after := client.pollCount("job-0"); after != before {
		t.Errorf("first job still polled: %d polls, then %d", before, after)
	}
	if got := h.ctrl.State(); got != StateComplete {
		t.Errorf("State() = %s, want complete", got)
	}
	if got := h.ctrl.JobID(); got != "99" {
		t.Errorf("JobID() = %q, want 99", got)
	}
	lu, ok := h.ctrl.LastUpdate()
	if !ok || lu.Timezone != "UTC" {
		t.Errorf("LastUpdate() = %+v, %v", lu, ok)
	}
	if got, _ := h.ctrl.Criteria().String("duration"); got != "1d" {
		t.Errorf("criteria duration = %q, want 1d", got)
	}
	progress, _ := h.view.snapshot()
	for _, p := range progress {
		if p == 50 {
			t.Errorf("quiet reload reported progress %v", progress)
		}
	}
	h.expectNoFinish(t)
}

func TestReloadRefreshFailure(t *testing.T) {
	client := newFakeClient(func(int) []pollStep { return []pollStep{completed(`{}`, "1")} })
	client.refreshErr = &job.RefreshError{URL: "/report/1/widget/7/", StatusCode: 502}
	h := newHarness(testSpec(), client, nil)

	if err := h.ctrl.Reload(context.Background()); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	h.waitFinished(t)

	if got := h.ctrl.State(); got != StateError {
		t.Errorf("State() = %s, want error", got)
	}
	if got := client.submitCount(); got != 0 {
		t.Errorf("submits = %d, want 0", got)
	}
}

func TestReloadWithoutPostURL(t *testing.T) {
	spec := testSpec()
	spec.PostURL = ""
	h := newHarness(spec, newFakeClient(nil), nil)
	if err := h.ctrl.Reload(context.Background()); !errors.Is(err, ErrNotReloadable) {
		t.Errorf("Reload() error = %v, want %v", err, ErrNotReloadable)
	}
}

func TestCancel(t *testing.T) {
	client := newFakeClient(func(int) []pollStep { return []pollStep{pending(1)} })
	h := newHarness(testSpec(), client, nil)

	h.ctrl.Start(context.Background(), nil)
	h.ctrl.Cancel()
	h.ctrl.Cancel()

	if got := h.ctrl.State(); got != StateIdle {
		t.Errorf("State() = %s, want idle", got)
	}
	before := client.pollCount("job-0")
	time.Sleep(20 * time.Millisecond)
	if after := client.pollCount("job-0"); after > before+1 {
		t.Errorf("polling continued after cancel: %d then %d", before, after)
	}
	h.expectNoFinish(t)
}

func TestSnapshot(t *testing.T) {
	client := newFakeClient(func(int) []pollStep { return []pollStep{completed(`{"rows":[[3]]}`, "5")} })
	h := newHarness(testSpec(), client, nil)
	h.ctrl.Start(context.Background(), model.Criteria{
		"duration":  json.RawMessage(`"1h"`),
		"starttime": json.RawMessage(`"1000"`),
	})
	h.waitFinished(t)

	snap := h.ctrl.Snapshot()
	if string(snap.Data) != `{"rows":[[3]]}` {
		t.Errorf("Data = %s", snap.Data)
	}
	if snap.Status != model.CacheComplete {
		t.Errorf("Status = %d, want %d", snap.Status, model.CacheComplete)
	}
	if snap.ID != "7" || snap.Slug != "traffic-by-port" {
		t.Errorf("snapshot identity = %s/%s", snap.ID, snap.Slug)
	}
	if _, ok := h.ctrl.EmbeddableCriteria()["starttime"]; ok {
		t.Error("EmbeddableCriteria() kept starttime")
	}
	if _, ok := snap.Criteria["starttime"]; !ok {
		t.Error("Snapshot() dropped starttime")
	}
}

func TestExport(t *testing.T) {
	t.Run("uses finished job", func(t *testing.T) {
		client := newFakeClient(func(int) []pollStep { return []pollStep{completed(`{}`, "42")} })
		repo := memory.New()
		h := newHarness(testSpec(), client, repo)
		h.ctrl.Start(context.Background(), nil)
		h.waitFinished(t)

		loc, err := h.ctrl.ExportCSV(context.Background(), "Traffic by Port!")
		if err != nil {
			t.Fatalf("ExportCSV() error = %v", err)
		}
		if loc == "" {
			t.Error("ExportCSV() returned empty location")
		}
		want := "http://origin/jobs/42/data/csv/?filename=TrafficbyPort"
		if len(client.downloads) != 1 || client.downloads[0] != want {
			t.Errorf("downloads = %v, want [%s]", client.downloads, want)
		}
		stored := repo.List()
		if len(stored) != 1 || stored[0].Format != "csv" {
			t.Errorf("stored = %+v", stored)
		}
		if got := client.submitCount(); got != 1 {
			t.Errorf("submits = %d, want 1", got)
		}
	})

	t.Run("runs export job", func(t *testing.T) {
		client := newFakeClient(nil)
		client.exportSteps = []pollStep{pending(0), pending(0), {res: job.Result{State: job.StateComplete, JobID: "77"}}}
		h := newHarness(testSpec(), client, memory.New())

		if _, err := h.ctrl.ExportJSON(context.Background(), ""); err != nil {
			t.Fatalf("ExportJSON() error = %v", err)
		}
		want := "http://origin/jobs/77/data/json/?filename=trafficbyport"
		if len(client.downloads) != 1 || client.downloads[0] != want {
			t.Errorf("downloads = %v, want [%s]", client.downloads, want)
		}
		if client.exportPolls != 3 {
			t.Errorf("export polls = %d, want 3", client.exportPolls)
		}
		if got := h.ctrl.State(); got != StateIdle {
			t.Errorf("State() = %s, want idle", got)
		}
	})

	t.Run("failure alerts", func(t *testing.T) {
		client := newFakeClient(nil)
		client.exportSteps = []pollStep{{res: job.Result{State: job.StateError, Message: "denied"}}}
		h := newHarness(testSpec(), client, memory.New())

		_, err := h.ctrl.ExportCSV(context.Background(), "x")
		if !errors.Is(err, ErrExportFailed) {
			t.Fatalf("ExportCSV() error = %v, want %v", err, ErrExportFailed)
		}
		if len(h.alerter.titles) != 1 || h.alerter.titles[0] != "CSV Export Error" {
			t.Errorf("alerts = %v", h.alerter.titles)
		}
		if got := h.ctrl.State(); got != StateIdle {
			t.Errorf("State() = %s, want idle", got)
		}
	})
}
