package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rodnnnney/consensus25/internal/api/middleware"
	"github.com/rodnnnney/consensus25/internal/core/domain"
	"github.com/rodnnnney/consensus25/internal/core/ports"
)

type stubKeylessFlow struct {
	loginURLFn func(ctx context.Context, principalID string) (string, error)
	exchangeFn func(ctx context.Context, principalID, rawIDToken string) (*domain.KeylessAccount, error)
	restoreFn  func(ctx context.Context, principalID string) (*domain.KeylessAccount, error)
}

func (s *stubKeylessFlow) LoginURL(ctx context.Context, principalID string) (string, error) {
	return s.loginURLFn(ctx, principalID)
}

func (s *stubKeylessFlow) Exchange(ctx context.Context, principalID, rawIDToken string) (*domain.KeylessAccount, error) {
	return s.exchangeFn(ctx, principalID, rawIDToken)
}

func (s *stubKeylessFlow) Restore(ctx context.Context, principalID string) (*domain.KeylessAccount, error) {
	return s.restoreFn(ctx, principalID)
}

func keylessContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.SessionKey, &ports.Session{
		Principal: domain.Principal{ID: "emp-1"},
		Role:      &domain.RoleRecord{ID: "emp-1", Role: domain.RoleEmployer},
	})
	return c, rec
}

func TestKeylessHandler_LoginURL(t *testing.T) {
	svc := &stubKeylessFlow{
		loginURLFn: func(ctx context.Context, principalID string) (string, error) {
			if principalID != "emp-1" {
				t.Fatalf("principal = %s", principalID)
			}
			return "https://accounts.google.com/o/oauth2/v2/auth?nonce=abc", nil
		},
	}
	handler := NewKeylessHandler(svc)

	c, rec := keylessContext(t, http.MethodGet, "/v1/keyless/login-url", "")
	if err := handler.LoginURL(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !strings.Contains(resp["url"], "nonce=") {
		t.Fatalf("unexpected url: %s", resp["url"])
	}
}

func TestKeylessHandler_CallbackFormatsExpiry(t *testing.T) {
	expires := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	svc := &stubKeylessFlow{
		exchangeFn: func(ctx context.Context, principalID, rawIDToken string) (*domain.KeylessAccount, error) {
			return &domain.KeylessAccount{Address: "0xacct", ExpiresAt: expires}, nil
		},
	}
	handler := NewKeylessHandler(svc)

	c, rec := keylessContext(t, http.MethodPost, "/v1/keyless/callback", `{"id_token":"tok"}`)
	if err := handler.Callback(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["address"] != "0xacct" {
		t.Fatalf("address = %s", resp["address"])
	}
	got, err := time.Parse(time.RFC3339, resp["expires_at"])
	if err != nil {
		t.Fatalf("expires_at is not RFC 3339: %q (%v)", resp["expires_at"], err)
	}
	if !got.Equal(expires) {
		t.Fatalf("expires_at = %s, want %s", got, expires)
	}
}

func TestKeylessHandler_CallbackMissingToken(t *testing.T) {
	handler := NewKeylessHandler(&stubKeylessFlow{})

	c, rec := keylessContext(t, http.MethodPost, "/v1/keyless/callback", `{}`)
	if err := handler.Callback(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
