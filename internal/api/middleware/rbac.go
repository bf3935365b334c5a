package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cropbank/banking-system/internal/core/authz"
	"github.com/cropbank/banking-system/internal/core/domain"
)

// RequireRoles gates a route on the policy engine's role check. Ownership
// checks stay in the services, where the resource is at hand.
func RequireRoles(allowed ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := ClaimsFrom(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}
			if err := authz.RequireRole(claims, allowed...); err != nil {
				return err
			}
			return next(c)
		}
	}
}
