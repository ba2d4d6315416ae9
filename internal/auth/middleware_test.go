package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// protectedProbe is a handler that records whether it ran and what principal
// it saw in the request context.
type protectedProbe struct {
	called bool
	claims *Claims
}

func (p *protectedProbe) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p.called = true
	p.claims, _ = PrincipalFromContext(r.Context())
	w.WriteHeader(http.StatusOK)
}

func authMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v (body %q)", err, rec.Body.String())
	}
	return body.Message
}

func TestRequireAuth_NoToken(t *testing.T) {
	svc := newTestTokenService(t)
	probe := &protectedProbe{}
	handler := RequireAuth(svc)(probe)

	req := httptest.NewRequest(http.MethodGet, "/services", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	if got := authMessage(t, rec); got != "Access token is required" {
		t.Errorf("message = %q, want %q", got, "Access token is required")
	}
	if probe.called {
		t.Error("protected handler ran without a token")
	}
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	svc := newTestTokenService(t)
	probe := &protectedProbe{}
	handler := RequireAuth(svc)(probe)

	req := httptest.NewRequest(http.MethodGet, "/services", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
	if got := authMessage(t, rec); got != "Invalid or expired token" {
		t.Errorf("message = %q, want %q", got, "Invalid or expired token")
	}
	if probe.called {
		t.Error("protected handler ran with an invalid token")
	}
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	svc := newTestTokenService(t)
	probe := &protectedProbe{}
	handler := RequireAuth(svc)(probe)

	token, err := svc.GenerateWithDuration(testUser(), -time.Minute)
	if err != nil {
		t.Fatalf("GenerateWithDuration() error = %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/services", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403 for an expired token", rec.Code)
	}
	if probe.called {
		t.Error("protected handler ran with an expired token")
	}
}

func TestRequireAuth_ValidToken(t *testing.T) {
	svc := newTestTokenService(t)
	probe := &protectedProbe{}
	handler := RequireAuth(svc)(probe)

	token, err := svc.Generate(testUser())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/services", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !probe.called {
		t.Fatal("protected handler did not run")
	}
	if probe.claims == nil {
		t.Fatal("no principal in request context")
	}
	if probe.claims.Username != "admin" || probe.claims.UserID != 7 {
		t.Errorf("principal = %+v, want the token's user", probe.claims)
	}
}

func TestPrincipalFromContext_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, ok := PrincipalFromContext(req.Context()); ok {
		t.Error("PrincipalFromContext() = ok on a bare context")
	}
}
