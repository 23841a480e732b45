package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rodnnnney/consensus25/internal/core/ports"
)

// KeylessHandler drives the OAuth keyless signing flow.
type KeylessHandler struct {
	service ports.KeylessService
}

func NewKeylessHandler(service ports.KeylessService) *KeylessHandler {
	return &KeylessHandler{service: service}
}

type keylessCallbackRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

type keylessAccountResponse struct {
	Address   string `json:"address"`
	ExpiresAt string `json:"expires_at"`
}

// LoginURL handles GET /v1/keyless/login-url: hand out the provider redirect
// carrying the ephemeral key pair's nonce commitment.
func (h *KeylessHandler) LoginURL(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	url, err := h.service.LoginURL(c.Request().Context(), session.Principal.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"url": url})
}

// Callback handles POST /v1/keyless/callback: exchange the id token for a
// signing account.
func (h *KeylessHandler) Callback(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req keylessCallbackRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	account, err := h.service.Exchange(c.Request().Context(), session.Principal.ID, req.IDToken)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, keylessAccountResponse{
		Address:   account.Address,
		ExpiresAt: account.ExpiresAt.UTC().Format(time.RFC3339),
	})
}
