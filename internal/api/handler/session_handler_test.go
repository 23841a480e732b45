package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/rodnnnney/consensus25/internal/api/middleware"
	"github.com/rodnnnney/consensus25/internal/core/domain"
	"github.com/rodnnnney/consensus25/internal/core/ports"
)

type stubOnboarding struct {
	completeFn func(ctx context.Context, principal domain.Principal, input ports.OnboardingInput) (domain.RoleProfile, error)
}

func (s *stubOnboarding) Complete(ctx context.Context, principal domain.Principal, input ports.OnboardingInput) (domain.RoleProfile, error) {
	return s.completeFn(ctx, principal, input)
}

type stubSnapshotStore struct {
	applyFn   func(snap *domain.Snapshot) *domain.Snapshot
	currentFn func(principalID string) (*domain.Snapshot, bool)
	cleared   []string
}

func (s *stubSnapshotStore) Apply(snap *domain.Snapshot) *domain.Snapshot {
	if s.applyFn == nil {
		return snap
	}
	return s.applyFn(snap)
}

func (s *stubSnapshotStore) Current(principalID string) (*domain.Snapshot, bool) {
	if s.currentFn == nil {
		return nil, false
	}
	return s.currentFn(principalID)
}

func (s *stubSnapshotStore) Clear(principalID string) {
	s.cleared = append(s.cleared, principalID)
}

func sessionContext(t *testing.T, session *ports.Session) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/auth/signout", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if session != nil {
		c.Set(middleware.SessionKey, session)
	}
	return c, rec
}

func TestSessionHandler_SignOut_ClearsSnapshot(t *testing.T) {
	store := &stubSnapshotStore{}
	handler := NewSessionHandler(&stubOnboarding{}, store)

	c, rec := sessionContext(t, &ports.Session{
		Principal: domain.Principal{ID: "emp-1"},
		Role:      &domain.RoleRecord{ID: "emp-1", Role: domain.RoleEmployer},
	})
	if err := handler.SignOut(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if len(store.cleared) != 1 || store.cleared[0] != "emp-1" {
		t.Fatalf("snapshot not cleared for principal: %v", store.cleared)
	}
}

func TestSessionHandler_SignOut_RequiresSession(t *testing.T) {
	store := &stubSnapshotStore{}
	handler := NewSessionHandler(&stubOnboarding{}, store)

	c, _ := sessionContext(t, nil)
	err := handler.SignOut(c)
	if err == nil {
		t.Fatalf("expected error without a resolved session")
	}
	if len(store.cleared) != 0 {
		t.Fatalf("nothing should be cleared without a session: %v", store.cleared)
	}
}
