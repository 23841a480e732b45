package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rodnnnney/consensus25/internal/api/middleware"
	"github.com/rodnnnney/consensus25/internal/core/ports"
)

// ctxSession extracts the session injected by the Auth middleware. Its
// presence proves the middleware ran; routes that also need a role gate go
// through middleware.RequireRole.
func ctxSession(c echo.Context) (*ports.Session, error) {
	session, _ := c.Get(middleware.SessionKey).(*ports.Session)
	if session == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return session, nil
}
