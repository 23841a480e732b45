package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rodnnnney/consensus25/internal/core/domain"
	"github.com/rodnnnney/consensus25/internal/core/ports"
)

// SessionHandler exposes the resolved identity, the onboarding write path,
// and sign-out.
type SessionHandler struct {
	onboarding ports.OnboardingService
	snapshots  ports.SnapshotStore
}

func NewSessionHandler(onboarding ports.OnboardingService, snapshots ports.SnapshotStore) *SessionHandler {
	return &SessionHandler{onboarding: onboarding, snapshots: snapshots}
}

type sessionResponse struct {
	PrincipalID     string `json:"principal_id"`
	Email           string `json:"email,omitempty"`
	Role            string `json:"role,omitempty"`
	NeedsOnboarding bool   `json:"needs_onboarding"`
}

type onboardingRequest struct {
	Role string `json:"role" validate:"required,oneof=employer freelancer"`

	CompanyName string `json:"company_name,omitempty"`
	Headcount   string `json:"headcount,omitempty"`

	FirstName     string `json:"first_name,omitempty"`
	LastName      string `json:"last_name,omitempty"`
	TaxID         string `json:"tax_id,omitempty"`
	WalletAddress string `json:"wallet_address,omitempty"`

	Country string `json:"country,omitempty"`
}

type onboardingResponse struct {
	Role       string                    `json:"role"`
	Employer   *domain.EmployerProfile   `json:"employer,omitempty"`
	Freelancer *domain.FreelancerProfile `json:"freelancer,omitempty"`
}

// Resolve reports who the bearer token belongs to and whether onboarding is
// still pending. GET /auth/session.
func (h *SessionHandler) Resolve(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	resp := sessionResponse{
		PrincipalID:     session.Principal.ID,
		Email:           session.Principal.Email,
		NeedsOnboarding: session.NeedsOnboarding(),
	}
	if session.Role != nil {
		resp.Role = session.Role.Role
	}
	return c.JSON(http.StatusOK, resp)
}

// Onboard writes the role row and the role-specific profile.
// POST /auth/onboarding.
func (h *SessionHandler) Onboard(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req onboardingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	profile, err := h.onboarding.Complete(c.Request().Context(), session.Principal, ports.OnboardingInput{
		Role:          req.Role,
		CompanyName:   req.CompanyName,
		Headcount:     req.Headcount,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		TaxID:         req.TaxID,
		WalletAddress: req.WalletAddress,
		Country:       req.Country,
	})
	if err != nil {
		return err
	}

	resp := onboardingResponse{Role: profile.Role()}
	if employer, ok := profile.Employer(); ok {
		resp.Employer = employer
	}
	if freelancer, ok := profile.Freelancer(); ok {
		resp.Freelancer = freelancer
	}
	return c.JSON(http.StatusCreated, resp)
}

// SignOut drops the principal's held snapshot so no aggregated data survives
// the session. POST /auth/signout.
func (h *SessionHandler) SignOut(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	h.snapshots.Clear(session.Principal.ID)
	return c.NoContent(http.StatusNoContent)
}
