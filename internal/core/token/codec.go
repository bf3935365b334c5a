// Package token issues and validates the signed session tokens that carry a
// caller's identity and role. Validation is a pure function of the token bytes
// and the signing key; there is no server-side session store and no refresh.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/cropbank/banking-system/internal/core/domain"
)

const defaultTTL = 2 * time.Hour

// Config holds the signing material and token lifetime. It is constructed at
// process start and passed in explicitly; the codec keeps no hidden globals.
type Config struct {
	Secret string
	TTL    time.Duration
}

// Codec signs and verifies session tokens with a process-wide symmetric key.
type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewCodec(cfg Config) *Codec {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Codec{secret: []byte(cfg.Secret), ttl: ttl, now: time.Now}
}

// Issue creates a signed token binding the user's id, email and role.
func (c *Codec) Issue(user *domain.User) (string, error) {
	now := c.now().UTC()
	claims := jwt.MapClaims{
		"sub":    user.Email,
		"userId": user.ID,
		"role":   string(user.Role),
		"iat":    now.Unix(),
		"exp":    now.Add(c.ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.secret)
}

// Validate verifies the signature and expiry of a raw token and returns the
// decoded claims. Expired tokens fail with ErrTokenExpired; anything else that
// is wrong with the token (signature, structure, unknown role) fails with
// ErrTokenInvalid.
func (c *Codec) Validate(raw string) (domain.Claims, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return c.now() }))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.Claims{}, domain.ErrTokenExpired
		}
		return domain.Claims{}, domain.ErrTokenInvalid
	}
	if !parsed.Valid {
		return domain.Claims{}, domain.ErrTokenInvalid
	}

	userID, _ := claims["userId"].(string)
	email, _ := claims["sub"].(string)
	roleStr, _ := claims["role"].(string)

	role, ok := domain.ParseRole(roleStr)
	if !ok || userID == "" {
		return domain.Claims{}, domain.ErrTokenInvalid
	}

	return domain.Claims{UserID: userID, Email: email, Role: role}, nil
}
