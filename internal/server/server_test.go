package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ziadkadry99/trendtell/internal/db"
	"github.com/ziadkadry99/trendtell/internal/describe"
	"github.com/ziadkadry99/trendtell/internal/history"
	"github.com/ziadkadry99/trendtell/internal/llm"
	"github.com/ziadkadry99/trendtell/internal/prompt"
	"github.com/ziadkadry99/trendtell/internal/series"
)

func newTestServer(t *testing.T, mock *llm.MockProvider) (*Server, *history.Store) {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	store := history.NewStore(database)
	d := describe.New(prompt.Builder{}, mock, describe.Options{}).WithRecorder(store)
	return New(Config{Port: 0, AllowAll: true}, d, store), store
}

func TestHealthCheck(t *testing.T) {
	srv, _ := newTestServer(t, llm.NewMockProvider("test"))

	req := httptest.NewRequest("GET", "/healthz", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status 'ok', got %q", body["status"])
	}
}

func TestCORSHeaders(t *testing.T) {
	srv, _ := newTestServer(t, llm.NewMockProvider("test"))

	req := httptest.NewRequest("OPTIONS", "/healthz", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("expected CORS Allow-Origin header")
	}
}

func TestDescribeEndpoint(t *testing.T) {
	mock := llm.NewMockProvider("test")
	mock.Response = &llm.CompletionResponse{
		Model: "mock-model",
		Choices: []llm.Choice{
			{Index: 0, Text: "\nThe numbers rise steadily.", FinishReason: "stop"},
		},
	}
	srv, store := newTestServer(t, mock)

	body := `{"values": [132, 329, 583, 743, 966, 1123, 1298]}`
	req := httptest.NewRequest("POST", "/api/describe", strings.NewReader(body))
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp describeResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Description != "The numbers rise steadily." {
		t.Errorf("description = %q", resp.Description)
	}
	if resp.Stats.Direction != series.DirectionRising {
		t.Errorf("stats direction = %q, want rising", resp.Stats.Direction)
	}

	// The run is recorded.
	n, err := store.Count(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("expected 1 recorded run, got %d", n)
	}
}

func TestDescribeEndpointSeriesText(t *testing.T) {
	mock := llm.NewMockProvider("test")
	srv, _ := newTestServer(t, mock)

	body := `{"series": "55, 54, 57, 5643, 56, 55, 54"}`
	req := httptest.NewRequest("POST", "/api/describe", strings.NewReader(body))
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if mock.CallCount() != 1 {
		t.Errorf("expected 1 provider call, got %d", mock.CallCount())
	}
}

func TestDescribeEndpointBadRequests(t *testing.T) {
	srv, _ := newTestServer(t, llm.NewMockProvider("test"))

	tests := []struct {
		name string
		body string
	}{
		{"invalid json", `{`},
		{"no series", `{}`},
		{"bad series text", `{"series": "one, two"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/describe", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			srv.Router().ServeHTTP(w, req)
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", w.Code)
			}
		})
	}
}

func TestDescribeEndpointProviderFailureStatuses(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"rate limited", fmt.Errorf("x: %w", llm.ErrRateLimited), http.StatusTooManyRequests},
		{"auth", fmt.Errorf("x: %w", llm.ErrAuth), http.StatusBadGateway},
		{"transport", fmt.Errorf("x: %w", llm.ErrTransport), http.StatusGatewayTimeout},
		{"malformed", fmt.Errorf("x: %w", llm.ErrMalformedResponse), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := llm.NewMockProvider("test")
			mock.Errs = []error{tt.err}
			srv, _ := newTestServer(t, mock)

			req := httptest.NewRequest("POST", "/api/describe", strings.NewReader(`{"values": [1, 2, 3]}`))
			w := httptest.NewRecorder()
			srv.Router().ServeHTTP(w, req)
			if w.Code != tt.want {
				t.Errorf("expected %d, got %d", tt.want, w.Code)
			}
		})
	}
}

func TestHistoryEndpoints(t *testing.T) {
	mock := llm.NewMockProvider("test")
	srv, _ := newTestServer(t, mock)

	// Seed two runs through the describe endpoint.
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest("POST", "/api/describe", strings.NewReader(`{"values": [1, 2, 3]}`))
		w := httptest.NewRecorder()
		srv.Router().ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("seed describe %d failed: %d", i, w.Code)
		}
	}

	req := httptest.NewRequest("GET", "/api/history", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var runs []history.Run
	if err := json.Unmarshal(w.Body.Bytes(), &runs); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}

	// Fetch one by id.
	req = httptest.NewRequest("GET", "/api/history/"+runs[0].ID, nil)
	w = httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	// Unknown id.
	req = httptest.NewRequest("GET", "/api/history/unknown-id", nil)
	w = httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestHistoryEmptyList(t *testing.T) {
	srv, _ := newTestServer(t, llm.NewMockProvider("test"))

	req := httptest.NewRequest("GET", "/api/history", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := strings.TrimSpace(w.Body.String()); got != "[]" {
		t.Errorf("expected empty array, got %q", got)
	}
}
