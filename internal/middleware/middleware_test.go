package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/akolanti/quizcrafter/internal/config"
	"golang.org/x/time/rate"
)

func TestWrap_InjectsTrace(t *testing.T) {
	var seen string
	h := NewChain(false).Wrap(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = r.Context().Value(config.TRACE_ID_KEY).(string)
		w.WriteHeader(http.StatusTeapot)
	})

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if seen == "" {
		t.Fatal("trace id missing from the request context")
	}
	if rec.Header().Get("X-Trace-Id") != seen {
		t.Errorf("response trace %q does not match context trace %q", rec.Header().Get("X-Trace-Id"), seen)
	}
	if rec.Code != http.StatusTeapot {
		t.Errorf("status got %d", rec.Code)
	}
}

func TestWrap_RateLimit(t *testing.T) {
	chain := &Chain{limiter: NewIPRateLimiter(rate.Limit(0.001), 2)}
	calls := 0
	h := chain.Wrap(func(w http.ResponseWriter, r *http.Request) { calls++ })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/upload/", nil)
		req.RemoteAddr = "10.0.0.1:5000"
		h(rec, req)
		codes = append(codes, rec.Code)
	}

	if calls != 2 {
		t.Errorf("expected the burst of 2 to pass, handler ran %d times", calls)
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Errorf("third request got %d, want 429", codes[2])
	}

	// another client has its own bucket
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/upload/", nil)
	req.RemoteAddr = "10.0.0.2:5000"
	h(rec, req)
	if calls != 3 {
		t.Error("second client should not be limited")
	}
}

func TestCORS_Preflight(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("preflight should not reach the handler")
	})
	req := httptest.NewRequest(http.MethodOptions, "/upload/", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", "content-type")

	rec := httptest.NewRecorder()
	CORS(next).ServeHTTP(rec, req)

	if rec.Code < 200 || rec.Code >= 300 {
		t.Errorf("status got %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "http://example.com" {
		t.Errorf("origin not echoed: %v", rec.Header())
	}
	if !strings.EqualFold(rec.Header().Get("Access-Control-Allow-Headers"), "content-type") {
		t.Errorf("headers not echoed: %v", rec.Header())
	}
	if !strings.Contains(rec.Header().Get("Access-Control-Allow-Methods"), "POST") {
		t.Errorf("method not allowed: %v", rec.Header())
	}
}

func TestCORS_SimpleRequest(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})
	req := httptest.NewRequest(http.MethodPost, "/generate-questions/", nil)
	req.Header.Set("Origin", "http://localhost:5173")

	rec := httptest.NewRecorder()
	CORS(next).ServeHTTP(rec, req)

	if !called {
		t.Fatal("request should reach the handler")
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "http://localhost:5173" {
		t.Errorf("origin not echoed: %v", rec.Header())
	}
	if rec.Header().Get("Access-Control-Allow-Credentials") != "true" {
		t.Errorf("credentials not allowed: %v", rec.Header())
	}
}
