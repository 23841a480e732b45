package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rodnnnney/consensus25/internal/core/domain"
	"github.com/rodnnnney/consensus25/internal/core/ports"
)

// SnapshotHandler serves the role-scoped data snapshot. GET returns the held
// snapshot, building one on first access; refresh always rebuilds.
type SnapshotHandler struct {
	snapshots ports.SnapshotService
	store     ports.SnapshotStore
}

func NewSnapshotHandler(snapshots ports.SnapshotService, store ports.SnapshotStore) *SnapshotHandler {
	return &SnapshotHandler{snapshots: snapshots, store: store}
}

type snapshotResponse struct {
	*domain.Snapshot
	Role            string                    `json:"role,omitempty"`
	Employer        *domain.EmployerProfile   `json:"employer,omitempty"`
	Freelancer      *domain.FreelancerProfile `json:"freelancer,omitempty"`
	NeedsOnboarding bool                      `json:"needs_onboarding"`
}

// Get handles GET /v1/snapshot.
func (h *SnapshotHandler) Get(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	snap, ok := h.store.Current(session.Principal.ID)
	if !ok {
		snap, err = h.build(c, session)
		if err != nil {
			return err
		}
	}
	return c.JSON(http.StatusOK, toSnapshotResponse(snap))
}

// Refresh handles POST /v1/snapshot/refresh. The rebuilt snapshot replaces
// the held one wholesale; only collections whose sub-fetch failed keep their
// previously held values.
func (h *SnapshotHandler) Refresh(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	snap, err := h.build(c, session)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSnapshotResponse(snap))
}

func (h *SnapshotHandler) build(c echo.Context, session *ports.Session) (*domain.Snapshot, error) {
	role := ""
	if session.Role != nil {
		role = session.Role.Role
	}
	snap, err := h.snapshots.Build(c.Request().Context(), session.Principal, role)
	if err != nil {
		return nil, err
	}
	return h.store.Apply(snap), nil
}

func toSnapshotResponse(snap *domain.Snapshot) snapshotResponse {
	resp := snapshotResponse{
		Snapshot:        snap,
		Role:            snap.Profile.Role(),
		NeedsOnboarding: snap.Empty(),
	}
	if employer, ok := snap.Profile.Employer(); ok {
		resp.Employer = employer
	}
	if freelancer, ok := snap.Profile.Freelancer(); ok {
		resp.Freelancer = freelancer
	}
	return resp
}
