package middleware

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func limitedRequest(t *testing.T, handler http.Handler, remoteAddr string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/services", nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestRateLimiter_UnderLimit(t *testing.T) {
	rl := NewRateLimiter(NewMemoryCounters(), time.Minute, 3, "Too many requests.", discardLogger())
	handler := rl.Handler(okHandler())

	for i := 0; i < 3; i++ {
		rec := limitedRequest(t, handler, "10.0.0.1:5000")
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i+1, rec.Code)
		}
	}
}

func TestRateLimiter_OverLimit(t *testing.T) {
	rl := NewRateLimiter(NewMemoryCounters(), time.Minute, 3, "Too many requests.", discardLogger())
	handler := rl.Handler(okHandler())

	for i := 0; i < 3; i++ {
		limitedRequest(t, handler, "10.0.0.1:5000")
	}

	// Request 4 crosses the threshold.
	rec := limitedRequest(t, handler, "10.0.0.1:5000")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Too many requests.") {
		t.Errorf("body = %q, want the configured message", rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
}

func TestRateLimiter_KeysAreIndependent(t *testing.T) {
	rl := NewRateLimiter(NewMemoryCounters(), time.Minute, 1, "blocked", discardLogger())
	handler := rl.Handler(okHandler())

	// Exhaust the budget for one address.
	limitedRequest(t, handler, "10.0.0.1:5000")
	if rec := limitedRequest(t, handler, "10.0.0.1:5001"); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("same ip, new port: status = %d, want 429 (keyed by host, not host:port)", rec.Code)
	}

	// A different address still has its full allowance.
	if rec := limitedRequest(t, handler, "10.0.0.2:5000"); rec.Code != http.StatusOK {
		t.Errorf("other ip: status = %d, want 200", rec.Code)
	}
}

func TestRateLimiter_WindowReset(t *testing.T) {
	counters := NewMemoryCounters()
	current := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	counters.now = func() time.Time { return current }

	rl := NewRateLimiter(counters, time.Hour, 2, "blocked", discardLogger())
	handler := rl.Handler(okHandler())

	limitedRequest(t, handler, "10.0.0.1:5000")
	limitedRequest(t, handler, "10.0.0.1:5000")
	if rec := limitedRequest(t, handler, "10.0.0.1:5000"); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429 at the threshold", rec.Code)
	}

	// Jump past the window boundary: the allowance comes back in full.
	current = current.Add(time.Hour + time.Second)
	if rec := limitedRequest(t, handler, "10.0.0.1:5000"); rec.Code != http.StatusOK {
		t.Errorf("status after window reset = %d, want 200", rec.Code)
	}
}

// failingCounters always errors, standing in for an unreachable shared store.
type failingCounters struct{}

func (failingCounters) Increment(string, time.Duration) (int, error) {
	return 0, errors.New("store unavailable")
}

func TestRateLimiter_FailsOpenOnStoreError(t *testing.T) {
	rl := NewRateLimiter(failingCounters{}, time.Minute, 1, "blocked", discardLogger())
	handler := rl.Handler(okHandler())

	for i := 0; i < 5; i++ {
		rec := limitedRequest(t, handler, "10.0.0.1:5000")
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200 when the store is down", i+1, rec.Code)
		}
	}
}

func TestMemoryCounters_Increment(t *testing.T) {
	counters := NewMemoryCounters()

	for want := 1; want <= 3; want++ {
		got, err := counters.Increment("k", time.Minute)
		if err != nil {
			t.Fatalf("Increment() error = %v", err)
		}
		if got != want {
			t.Errorf("Increment() = %d, want %d", got, want)
		}
	}
}
