package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/cropbank/banking-system/internal/core/domain"
)

func runRBAC(claims *domain.Claims, allowed ...domain.Role) (error, bool) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if claims != nil {
		c.Set(claimsContextKey, *claims)
	}

	var handlerRan bool
	handler := RequireRoles(allowed...)(func(c echo.Context) error {
		handlerRan = true
		return c.NoContent(http.StatusOK)
	})
	return handler(c), handlerRan
}

func TestRequireRoles_Allowed(t *testing.T) {
	claims := domain.Claims{UserID: "user_1", Role: domain.RoleAnalyst}

	err, ran := runRBAC(&claims, domain.RoleRelationshipManager, domain.RoleAnalyst)
	if err != nil {
		t.Fatalf("expected analyst to pass, got %v", err)
	}
	if !ran {
		t.Fatalf("handler must run for an allowed role")
	}
}

func TestRequireRoles_Denied(t *testing.T) {
	claims := domain.Claims{UserID: "user_1", Role: domain.RoleRelationshipManager}

	err, ran := runRBAC(&claims, domain.RoleAdmin)
	if !errors.Is(err, domain.ErrRoleDenied) {
		t.Fatalf("expected ErrRoleDenied, got %v", err)
	}
	if ran {
		t.Fatalf("handler must not run for a denied role")
	}
}

func TestRequireRoles_NoClaims(t *testing.T) {
	err, ran := runRBAC(nil, domain.RoleAdmin)
	assertHTTPStatus(t, err, http.StatusUnauthorized)
	if ran {
		t.Fatalf("handler must not run without claims")
	}
}
