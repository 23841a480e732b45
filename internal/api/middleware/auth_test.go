package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/rodnnnney/consensus25/internal/core/domain"
	"github.com/rodnnnney/consensus25/internal/core/ports"
)

type stubSessionService struct {
	resolveFn func(ctx context.Context, bearerToken string) (*ports.Session, error)
}

func (s *stubSessionService) Resolve(ctx context.Context, bearerToken string) (*ports.Session, error) {
	return s.resolveFn(ctx, bearerToken)
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	e := echo.New()
	stub := &stubSessionService{
		resolveFn: func(ctx context.Context, bearerToken string) (*ports.Session, error) {
			if bearerToken != "token123" {
				t.Fatalf("unexpected token: %s", bearerToken)
			}
			return &ports.Session{
				Principal: domain.Principal{ID: "user-1", Email: "alice@example.com"},
				Role:      &domain.RoleRecord{ID: "user-1", Role: domain.RoleEmployer},
			}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer token123")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	mw := Auth(stub)
	handler := mw(func(c echo.Context) error {
		called = true
		session, _ := c.Get(SessionKey).(*ports.Session)
		if session == nil {
			t.Fatalf("session not set")
		}
		if session.Principal.ID != "user-1" {
			t.Fatalf("unexpected principal: %s", session.Principal.ID)
		}
		if session.NeedsOnboarding() {
			t.Fatalf("role row should be present")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Auth(&stubSessionService{
		resolveFn: func(ctx context.Context, bearerToken string) (*ports.Session, error) {
			t.Fatalf("should not resolve")
			return nil, nil
		},
	})
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_InvalidHeaderFormat(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Auth(&stubSessionService{
		resolveFn: func(ctx context.Context, bearerToken string) (*ports.Session, error) {
			t.Fatalf("should not resolve")
			return nil, nil
		},
	})
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_ResolveError(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Auth(&stubSessionService{
		resolveFn: func(ctx context.Context, bearerToken string) (*ports.Session, error) {
			return nil, domain.ErrNoSession
		},
	})
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	err := handler(c)
	if err == nil {
		t.Fatalf("expected error")
	}
	if err != domain.ErrNoSession {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}
