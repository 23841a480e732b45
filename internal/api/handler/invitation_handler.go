package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rodnnnney/consensus25/internal/core/domain"
	"github.com/rodnnnney/consensus25/internal/core/ports"
)

// InvitationHandler creates and lists employer invitations.
type InvitationHandler struct {
	service ports.InvitationService
}

func NewInvitationHandler(service ports.InvitationService) *InvitationHandler {
	return &InvitationHandler{service: service}
}

type inviteRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type invitationListResponse struct {
	Invitations []domain.Invitation `json:"invitations"`
}

// Invite handles POST /v1/invitations (employer only).
func (h *InvitationHandler) Invite(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req inviteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	inv, err := h.service.Invite(c.Request().Context(), session.Principal.ID, req.Email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, inv)
}

// List handles GET /v1/invitations (employer only).
func (h *InvitationHandler) List(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	invitations, err := h.service.ListForEmployer(c.Request().Context(), session.Principal.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, invitationListResponse{Invitations: invitations})
}
