package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/njnj4101989-sudo/flipkart-payments/internal/config"
	"github.com/njnj4101989-sudo/flipkart-payments/internal/logger"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	logger.InitLoggerWithWriter("error", &bytes.Buffer{})
	cfg := config.DefaultConfig()
	return NewServer(cfg)
}

func TestServer_CORSPreflight(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/sessions", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("status=%d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("allow origin=%q", got)
	}
}

func TestServer_SessionLifecycle(t *testing.T) {
	s := newTestServer(t)

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/sessions", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if s.Sessions().Count() != 1 {
		t.Fatalf("sessions=%d", s.Sessions().Count())
	}

	var resp struct {
		Code int `json:"code"`
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil || resp.Data.ID == "" {
		t.Fatalf("decode: %v body=%s", err, w.Body.String())
	}

	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/sessions/"+resp.Data.ID, nil))
	if w.Code != http.StatusOK || s.Sessions().Count() != 0 {
		t.Fatalf("delete status=%d sessions=%d", w.Code, s.Sessions().Count())
	}
}

func TestServer_NoRoute(t *testing.T) {
	s := newTestServer(t)

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d", w.Code)
	}
}
