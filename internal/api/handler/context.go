package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/statuspulse/monitoring-system/internal/core/domain"
)

// ctxIdentity extracts the session identity injected by the Auth middleware
// and performs a fast-fail check before any service call: a missing user id
// means the middleware did not run, so the request is rejected outright.
func ctxIdentity(c echo.Context) (domain.Identity, error) {
	userID, _ := c.Get("user_id").(string)
	if userID == "" {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	role, _ := c.Get("role").(string)
	return domain.Identity{UserID: userID, Role: domain.Role(role)}, nil
}
