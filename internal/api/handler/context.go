package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/swa1245/course-market/internal/api/middleware"
)

// ctxPrincipalID extracts the principal id injected by the Auth middleware.
// A missing id means the middleware did not run on this route; treat the
// request as unauthenticated rather than panicking downstream.
func ctxPrincipalID(c echo.Context) (string, error) {
	id, _ := c.Get(middleware.PrincipalIDKey).(string)
	if id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "No token provided")
	}
	return id, nil
}
