package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/rodnnnney/consensus25/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error       string `json:"error"`
	RateLimited bool   `json:"rate_limited,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Marks 429 responses so clients can show "try again shortly" instead of
//     a generic failure.
//   - Logs unexpected errors internally without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{
			Error:       msg,
			RateLimited: code == http.StatusTooManyRequests,
		})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrNoSession):
		return http.StatusUnauthorized, "no active session"
	case errors.Is(err, domain.ErrTokenExpired):
		return http.StatusUnauthorized, "sign in again"
	case errors.Is(err, domain.ErrNoEphemeralKey):
		return http.StatusUnauthorized, "keyless login required"
	case errors.Is(err, domain.ErrNonceMismatch):
		return http.StatusUnauthorized, "token does not match login attempt"
	case errors.Is(err, domain.ErrJobNotFound):
		return http.StatusNotFound, "job not found"
	case errors.Is(err, domain.ErrAlreadyOnboarded):
		return http.StatusConflict, "role already chosen"
	case errors.Is(err, domain.ErrProfileMissing):
		return http.StatusUnprocessableEntity, "profile missing for resolved role"
	case errors.Is(err, domain.ErrWalletMissing):
		return http.StatusUnprocessableEntity, "freelancer has no wallet address"
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests, "rate limited, try again shortly"
	case errors.Is(err, domain.ErrTransferFailed):
		return http.StatusBadGateway, err.Error()
	case errors.Is(err, domain.ErrRoleLookup):
		return http.StatusBadGateway, "role lookup failed"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
