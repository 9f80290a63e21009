package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/storefront/internal/core/ports"
)

// RequireSession rejects requests while no identity is established and
// injects the identity and its role into context.
func RequireSession(session ports.SessionReader) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			snap := session.Snapshot()
			if !snap.IsAuthenticated() {
				return echo.NewHTTPError(http.StatusUnauthorized, "login required")
			}

			c.Set("identity", snap.Identity)
			c.Set("role", snap.Identity.Role)
			c.Set("identity_id", snap.Identity.ID)

			return next(c)
		}
	}
}
