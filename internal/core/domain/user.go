package domain

// Role is the closed set of roles a user can hold. The string values are part
// of the external contract: they appear as JWT claim values and in audit events.
type Role string

const (
	RoleAdmin               Role = "ADMIN"
	RoleRelationshipManager Role = "RELATIONSHIP_MANAGER"
	RoleAnalyst             Role = "ANALYST"
)

// ParseRole maps a claim or request string onto a known Role.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleRelationshipManager, RoleAnalyst:
		return Role(s), true
	}
	return "", false
}

// User models an identity that can authenticate against the system.
// PasswordHash never leaves the auth layer; it is excluded from JSON.
type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Role         Role   `json:"role"`
	Active       bool   `json:"active"`
}

// UserSummary is the sanitized view returned by the admin user listing.
type UserSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
	Active   bool   `json:"active"`
}

// Claims is the verified payload of a session token. Every operation that
// needs the caller's identity takes Claims explicitly; nothing reads from
// implicit request state.
type Claims struct {
	UserID string
	Email  string
	Role   Role
}
