package domain

import "errors"

// Sentinel errors for the core. The API layer maps each onto a stable HTTP
// status; none of them are retried internally.
var (
	// ErrInvalidCredentials covers both unknown user and wrong password so a
	// login failure cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAccountDisabled is returned only after the password verified.
	ErrAccountDisabled = errors.New("account is not active")

	ErrTokenInvalid = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// ErrRoleDenied means the caller's role is not in the operation's allowed
	// set. Wrapped with the required roles at the point of denial.
	ErrRoleDenied = errors.New("role not permitted")
	// ErrNotResourceOwner means the role was acceptable but the caller does
	// not own the targeted resource. Kept distinct from ErrRoleDenied so the
	// boundary can name the missing role vs. the unauthorized resource.
	ErrNotResourceOwner = errors.New("not the owner of this resource")

	ErrUserNotFound   = errors.New("user not found")
	ErrClientNotFound = errors.New("client not found")
	ErrCreditNotFound = errors.New("credit request not found")

	ErrEmailExists = errors.New("email already exists")
	ErrUserExists  = errors.New("username already exists")

	// ErrCreditAlreadyDecided guards the PENDING-only decision transition.
	ErrCreditAlreadyDecided = errors.New("credit request already decided")

	ErrMalformedInput = errors.New("malformed input")
)

// ValidationError enumerates every offending field of a rejected payload.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return "validation failed" }
