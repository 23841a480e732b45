package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rodnnnney/consensus25/internal/core/domain"
	"github.com/rodnnnney/consensus25/internal/core/ports"
)

// NotificationHandler reports payments that arrived since the caller last
// checked.
type NotificationHandler struct {
	service ports.NotificationService
}

func NewNotificationHandler(service ports.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

type notificationsResponse struct {
	NewPayments []domain.Transaction `json:"new_payments"`
	CheckedAt   string               `json:"checked_at"`
}

// List handles GET /v1/notifications.
func (h *NotificationHandler) List(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	role := ""
	if session.Role != nil {
		role = session.Role.Role
	}
	result, err := h.service.NewPayments(c.Request().Context(), session.Principal.ID, role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, notificationsResponse{
		NewPayments: result.NewPayments,
		CheckedAt:   result.CheckedAt,
	})
}

// MarkChecked handles POST /v1/notifications/checked.
func (h *NotificationHandler) MarkChecked(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	if err := h.service.MarkChecked(c.Request().Context(), session.Principal.ID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
