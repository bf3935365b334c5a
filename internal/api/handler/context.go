package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cropbank/banking-system/internal/api/middleware"
	"github.com/cropbank/banking-system/internal/core/domain"
)

// ctxClaims extracts the verified claims injected by the Auth middleware.
// Presence proves the middleware ran; a route reached without it is a wiring
// defect and fails closed with 401.
func ctxClaims(c echo.Context) (domain.Claims, error) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return domain.Claims{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return claims, nil
}
