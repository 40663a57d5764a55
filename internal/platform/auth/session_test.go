package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func postSession(t *testing.T, h *SessionHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	h.RegisterRoutes(e.Group("/api/v1"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/session", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestCreateSession_IssuesUsableToken(t *testing.T) {
	iss := newTestIssuer(t)
	h := NewSessionHandler(NewPasswordGuard("pw"), iss)

	rec := postSession(t, h, `{"password":"pw"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp sessionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Token == "" || resp.ExpiresAt.IsZero() {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if !NewTokenGuard(iss).Authorize(context.Background(), resp.Token) {
		t.Error("issued token should authorize")
	}
}

func TestCreateSession_Errors(t *testing.T) {
	iss := newTestIssuer(t)
	tests := []struct {
		name string
		h    *SessionHandler
		body string
		code int
	}{
		{"wrong password", NewSessionHandler(NewPasswordGuard("pw"), iss), `{"password":"x"}`, http.StatusUnauthorized},
		{"empty password", NewSessionHandler(NewPasswordGuard("pw"), iss), `{}`, http.StatusUnauthorized},
		{"bad body", NewSessionHandler(NewPasswordGuard("pw"), iss), `{"password":`, http.StatusBadRequest},
		{"disabled", NewSessionHandler(NewPasswordGuard("pw"), nil), `{"password":"pw"}`, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postSession(t, tt.h, tt.body)
			if rec.Code != tt.code {
				t.Errorf("expected %d, got %d", tt.code, rec.Code)
			}
		})
	}
}

func deleteSession(t *testing.T, h *SessionHandler, authz string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	h.RegisterRoutes(e.Group("/api/v1"))
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/admin/session", nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestDeleteSession_RevokesToken(t *testing.T) {
	iss := newTestIssuer(t)
	revoked := NewRevocationList(0)
	defer revoked.Close()
	h := NewSessionHandler(NewPasswordGuard("pw"), iss).WithRevocations(revoked)
	guard := NewTokenGuard(iss).WithRevocations(revoked)

	tok, _, err := iss.Issue(RoleAdmin)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if !guard.Authorize(context.Background(), tok) {
		t.Fatal("fresh token should authorize")
	}

	rec := deleteSession(t, h, "Bearer "+tok)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", rec.Code, rec.Body.String())
	}
	if guard.Authorize(context.Background(), tok) {
		t.Error("revoked token must not authorize")
	}

	rec = deleteSession(t, h, "Bearer "+tok)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("second logout: expected 401, got %d", rec.Code)
	}
}

func TestDeleteSession_Errors(t *testing.T) {
	iss := newTestIssuer(t)
	revoked := NewRevocationList(0)
	defer revoked.Close()
	h := NewSessionHandler(NewPasswordGuard("pw"), iss).WithRevocations(revoked)

	tests := []struct {
		name  string
		h     *SessionHandler
		authz string
		code  int
	}{
		{"no credential", h, "", http.StatusUnauthorized},
		{"garbage token", h, "Bearer not-a-token", http.StatusUnauthorized},
		{"basic scheme", h, "Basic cHc6cHc=", http.StatusUnauthorized},
		{"no revocation list", NewSessionHandler(NewPasswordGuard("pw"), iss), "Bearer x", http.StatusNotFound},
		{"disabled", NewSessionHandler(NewPasswordGuard("pw"), nil), "Bearer x", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := deleteSession(t, tt.h, tt.authz)
			if rec.Code != tt.code {
				t.Errorf("expected %d, got %d", tt.code, rec.Code)
			}
		})
	}
}
