package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fleetdesk/logistics-api/internal/api/middleware"
	"github.com/fleetdesk/logistics-api/internal/core/ports"
)

// ctxIdentity extracts the claims injected by the Auth middleware and
// performs a fast-fail check before any service call: a non-empty user id
// proves the middleware ran on this route.
func ctxIdentity(c echo.Context) (ports.Claims, error) {
	userID, _ := c.Get(middleware.CtxUserID).(string)
	if userID == "" {
		return ports.Claims{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	email, _ := c.Get(middleware.CtxEmail).(string)
	role, _ := c.Get(middleware.CtxRole).(string)
	return ports.Claims{UserID: userID, Email: email, Role: role}, nil
}
