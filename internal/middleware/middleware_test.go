package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"report-runtime/pkg/log"

	"github.com/gin-gonic/gin"
)

func newRouter(m Middleware) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), m.Recovery())
	r.POST("/reload", m.ControlAuth(), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.GET("/panic", func(c *gin.Context) { panic("boom") })
	return r
}

func TestControlAuth(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		headers map[string]string
		want    int
	}{
		{name: "open when unset", key: "", want: http.StatusNoContent},
		{name: "missing header", key: "secret", want: http.StatusUnauthorized},
		{name: "wrong key", key: "secret", headers: map[string]string{"X-Control-Key": "nope"}, want: http.StatusUnauthorized},
		{name: "header key", key: "secret", headers: map[string]string{"X-Control-Key": "secret"}, want: http.StatusNoContent},
		{name: "bearer key", key: "secret", headers: map[string]string{"Authorization": "Bearer secret"}, want: http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRouter(New(log.NewNop(), nil, tt.key))
			req := httptest.NewRequest(http.MethodPost, "/reload", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}

func TestRecovery(t *testing.T) {
	r := newRouter(New(log.NewNop(), nil, ""))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
}

func TestRequestID(t *testing.T) {
	r := newRouter(New(log.NewNop(), nil, ""))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("expected generated request id")
	}

	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	req.Header.Set("X-Request-ID", "abc")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get("X-Request-ID"); got != "abc" {
		t.Errorf("request id = %q, want abc", got)
	}
}
