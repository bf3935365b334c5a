package authz

import (
	"errors"
	"strings"
	"testing"

	"github.com/cropbank/banking-system/internal/core/domain"
)

func TestRequireRole_Allows(t *testing.T) {
	claims := domain.Claims{UserID: "u1", Role: domain.RoleAnalyst}

	if err := RequireRole(claims, domain.RoleAnalyst); err != nil {
		t.Fatalf("expected allow, got %v", err)
	}
	if err := RequireRole(claims, domain.RoleRelationshipManager, domain.RoleAnalyst); err != nil {
		t.Fatalf("expected allow for either-of set, got %v", err)
	}
}

func TestRequireRole_DeniesWithRequiredRoles(t *testing.T) {
	claims := domain.Claims{UserID: "u1", Role: domain.RoleRelationshipManager}

	err := RequireRole(claims, domain.RoleAdmin)
	if !errors.Is(err, domain.ErrRoleDenied) {
		t.Fatalf("expected ErrRoleDenied, got %v", err)
	}
	if !strings.Contains(err.Error(), "ADMIN") {
		t.Fatalf("denial should name the required role, got %q", err.Error())
	}

	err = RequireRole(claims, domain.RoleAdmin, domain.RoleAnalyst)
	if !strings.Contains(err.Error(), "ADMIN or ANALYST") {
		t.Fatalf("denial should name all required roles, got %q", err.Error())
	}
}

func TestRequireOwner(t *testing.T) {
	claims := domain.Claims{UserID: "u1", Role: domain.RoleRelationshipManager}

	if err := RequireOwner(claims, "u1"); err != nil {
		t.Fatalf("expected allow, got %v", err)
	}
	if err := RequireOwner(claims, "u2"); !errors.Is(err, domain.ErrNotResourceOwner) {
		t.Fatalf("expected ErrNotResourceOwner, got %v", err)
	}
}

// An ownership denial must stay distinct from a role denial: the caller had
// the right role but targeted someone else's resource.
func TestOwnershipDenialIsNotRoleDenial(t *testing.T) {
	claims := domain.Claims{UserID: "u1", Role: domain.RoleRelationshipManager}

	err := RequireOwner(claims, "u2")
	if errors.Is(err, domain.ErrRoleDenied) {
		t.Fatalf("ownership denial must not match ErrRoleDenied")
	}
}
