// Package authz is the access policy engine: two composable checks evaluated
// against explicit claims. Some operations need only a role gate, some add an
// ownership gate on top; the two produce distinct denials so the boundary can
// tell "wrong role" apart from "not your resource".
package authz

import (
	"fmt"
	"strings"

	"github.com/cropbank/banking-system/internal/core/domain"
)

// RequireRole allows the call when the caller's role is in the required set.
// The denial names the roles that would have been accepted.
func RequireRole(claims domain.Claims, required ...domain.Role) error {
	for _, r := range required {
		if claims.Role == r {
			return nil
		}
	}
	return fmt.Errorf("%w: requires %s", domain.ErrRoleDenied, roleList(required))
}

// RequireOwner allows the call when the caller's identity owns the resource.
func RequireOwner(claims domain.Claims, resourceOwnerID string) error {
	if claims.UserID != resourceOwnerID {
		return domain.ErrNotResourceOwner
	}
	return nil
}

func roleList(roles []domain.Role) string {
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r)
	}
	return strings.Join(names, " or ")
}
