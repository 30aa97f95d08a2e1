package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/acme/todoflag/internal/auth"
)

func TestRequireUserRejectsMissingHeader(t *testing.T) {
	handler := RequireUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/todos", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestRequireUserPopulatesContext(t *testing.T) {
	var got auth.Context
	handler := RequireUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = auth.FromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/todos", nil)
	req.Header.Set("X-User-ID", "u1")
	req.Header.Set("X-User-Rights", "ViewIdentity, ViewFlaggedUsers")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got.UserID != "u1" {
		t.Errorf("user id = %q, want u1", got.UserID)
	}
	if len(got.Rights) != 2 || got.Rights[0] != "ViewIdentity" || got.Rights[1] != "ViewFlaggedUsers" {
		t.Errorf("rights = %v", got.Rights)
	}
}

func TestRequireRight(t *testing.T) {
	protected := RequireRight(auth.RightViewFlaggedUsers)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	handler := RequireUser(protected)

	req := httptest.NewRequest(http.MethodGet, "/api/flagged-users", nil)
	req.Header.Set("X-User-ID", "u1")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("status without right = %d, want 403", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/flagged-users", nil)
	req.Header.Set("X-User-ID", "u1")
	req.Header.Set("X-User-Rights", "ViewFlaggedUsers")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("status with right = %d, want 200", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/flagged-users", nil)
	req.Header.Set("X-User-ID", "admin")
	req.Header.Set("X-User-Rights", "SystemAdmin")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("status with SystemAdmin = %d, want 200", rec.Code)
	}
}
