package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"report-runtime/internal/model"
	"report-runtime/internal/report/repository"
	pkghttp "report-runtime/pkg/http"
	"report-runtime/pkg/log"
)

const definitionBody = `{
	"meta": {"datetime": "2024-01-01T00:00:00Z", "timezone": "UTC", "debug": false},
	"widgets": [
		{"posturl": "/report/net/overview/widgets/1/jobs/", "updateurl": "/report/net/overview/widgets/1/", "widgetid": 1, "widgetslug": "w1", "row": 0, "width": 6, "height": 300, "widgettype": ["tables", "TableWidget"], "criteria": {"duration": "1h"}},
		{"posturl": "/report/net/overview/widgets/2/jobs/", "widgetid": "2", "widgetslug": "w2", "row": 0, "widgettype": ["c3", "TimeSeriesWidget"], "criteria": {}}
	]
}`

func newTestRepo(t *testing.T, h http.HandlerFunc) repository.ReportRepository {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	client := pkghttp.NewClient(pkghttp.ClientConfig{Timeout: time.Second, RetryWait: time.Millisecond})
	return New(log.NewNop(), client, Config{
		Origin:     srv.URL,
		WidgetsURL: "/report/net/overview/widgets/",
		FormURL:    "/report/net/overview/",
		DebugURL:   "/report/net/overview/debug/",
	})
}

func TestFetchDefinition(t *testing.T) {
	repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/report/net/overview/widgets/" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		io.WriteString(w, definitionBody)
	})

	def, err := repo.FetchDefinition(context.Background())
	if err != nil {
		t.Fatalf("FetchDefinition() error = %v", err)
	}
	if len(def.Widgets) != 2 {
		t.Fatalf("widgets = %d, want 2", len(def.Widgets))
	}
	if def.Widgets[0].ID != "1" || def.Widgets[1].ID != "2" {
		t.Errorf("ids = %s, %s", def.Widgets[0].ID, def.Widgets[1].ID)
	}
	if def.Widgets[1].Type.Module != "c3" {
		t.Errorf("type = %+v", def.Widgets[1].Type)
	}
	if def.Meta.Timezone != "UTC" {
		t.Errorf("timezone = %q", def.Meta.Timezone)
	}
}

func TestFetchDefinitionErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "server error", status: http.StatusInternalServerError, wantErr: repository.ErrRequestFailed},
		{name: "not found", status: http.StatusNotFound, wantErr: repository.ErrRequestFailed},
		{name: "malformed body", status: http.StatusOK, body: `{"widgets": 5}`, wantErr: repository.ErrMalformedResponse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			})
			_, err := repo.FetchDefinition(context.Background())
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("FetchDefinition() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSubmitForm(t *testing.T) {
	var got url.Values
	repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/report/net/overview/" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		r.ParseForm()
		got = r.PostForm
		if got.Get("duration") == "bogus" {
			w.WriteHeader(http.StatusBadRequest)
			io.WriteString(w, "<ul><li>bad duration</li></ul>")
			return
		}
		io.WriteString(w, definitionBody)
	})

	t.Run("accepted", func(t *testing.T) {
		_, err := repo.SubmitForm(context.Background(), repository.SubmitFormOptions{
			Criteria: model.Criteria{
				"duration":   json.RawMessage(`"1h"`),
				"resolution": json.RawMessage(`60`),
			},
			Debug: true,
		})
		if err != nil {
			t.Fatalf("SubmitForm() error = %v", err)
		}
		if got.Get("duration") != "1h" || got.Get("resolution") != "60" || got.Get("debug") != "on" {
			t.Errorf("form = %v", got)
		}
	})

	t.Run("rejected", func(t *testing.T) {
		_, err := repo.SubmitForm(context.Background(), repository.SubmitFormOptions{
			Criteria: model.Criteria{"duration": json.RawMessage(`"bogus"`)},
		})
		var fe *repository.FormError
		if !errors.As(err, &fe) {
			t.Fatalf("SubmitForm() error = %v, want FormError", err)
		}
		if fe.Body != "<ul><li>bad duration</li></ul>" {
			t.Errorf("Body = %q", fe.Body)
		}
	})
}

func TestCriteriaFields(t *testing.T) {
	repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/report/net/overview/criteria/" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		io.WriteString(w, `[{"id": "id_host", "html": "<select></select>"}]`)
	})

	fields, err := repo.CriteriaFields(context.Background(), model.Criteria{"device": json.RawMessage(`"a"`)})
	if err != nil {
		t.Fatalf("CriteriaFields() error = %v", err)
	}
	if len(fields) != 1 || fields[0].ID != "id_host" {
		t.Errorf("fields = %+v", fields)
	}
}

func TestDebugArchive(t *testing.T) {
	repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/report/net/overview/debug/" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte("PK\x03\x04"))
	})

	data, err := repo.DebugArchive(context.Background())
	if err != nil {
		t.Fatalf("DebugArchive() error = %v", err)
	}
	if string(data) != "PK\x03\x04" {
		t.Errorf("data = %q", data)
	}
}
