package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/swa1245/course-market/internal/api/metrics"
	"github.com/swa1245/course-market/internal/core/token"
)

// PrincipalIDKey is the context key under which Auth stores the verified
// principal id.
const PrincipalIDKey = "principal_id"

// TokenVerifier validates a raw token within a scope and returns the
// principal id it carries.
type TokenVerifier interface {
	Verify(raw string, scope token.Scope) (string, error)
}

// Auth gates protected routes. One instantiation per scope; a token issued
// for one scope never passes the other's gate. The Bearer prefix is
// optional; a bare token in the Authorization header is accepted.
func Auth(verifier TokenVerifier, scope token.Scope) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				metrics.AuthRejectionsTotal.WithLabelValues(string(scope), "missing").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "No token provided")
			}

			raw := header
			if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
				raw = header[7:]
			}

			principalID, err := verifier.Verify(raw, scope)
			if err != nil {
				metrics.AuthRejectionsTotal.WithLabelValues(string(scope), "invalid").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
			}

			c.Set(PrincipalIDKey, principalID)
			return next(c)
		}
	}
}
