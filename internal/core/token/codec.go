// Package token implements the signed session token codec: issuing HS256
// tokens carrying an identity snapshot, verifying untrusted token strings, and
// extracting the trailing signature segment used as the revocation key.
package token

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jwtpizza/pizza-service/internal/core/domain"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims is the identity snapshot embedded in a session token. The role list
// is frozen at issuance; later role changes only take effect on re-login.
type Claims struct {
	UserID string           `json:"id"`
	Name   string           `json:"name"`
	Email  string           `json:"email"`
	Roles  []domain.RoleRef `json:"roles"`
	jwt.RegisteredClaims
}

// HasRole reports exact-match membership over the snapshotted role list.
func (c *Claims) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r.Role == role {
			return true
		}
	}
	return false
}

// FranchiseIDs returns the franchise ids the identity administers.
func (c *Claims) FranchiseIDs() []string {
	var ids []string
	for _, r := range c.Roles {
		if r.Role == domain.RoleFranchisee && r.ObjectID != "" {
			ids = append(ids, r.ObjectID)
		}
	}
	return ids
}

// Codec signs and verifies session tokens with a shared secret. A zero ttl
// issues tokens without an expiry claim.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

func NewCodec(secret string, ttl time.Duration) *Codec {
	return &Codec{secret: []byte(secret), ttl: ttl}
}

// Issue serializes the user's identity and roles into a signed token.
func (c *Codec) Issue(user *domain.User) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Roles:  user.Roles,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if c.ttl != 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(c.ttl))
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.secret)
}

// Verify decodes and validates an untrusted token string. It returns
// ErrInvalidToken for malformed input, foreign-secret signatures, and expired
// tokens; it never panics on adversarial input.
func (c *Codec) Verify(raw string) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	})
	if err != nil || !tkn.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// SignatureOf extracts the trailing segment of a compact JWS, used as the
// stable revocation key. Input that is not shaped header.payload.signature
// yields an empty string; this path runs on untrusted tokens and must not
// fail.
//
// Assumes the three-part compact serialization; revisit if the signing scheme
// ever grows more dot-delimited segments.
func SignatureOf(raw string) string {
	parts := strings.Split(raw, ".")
	if len(parts) != 3 || parts[2] == "" {
		return ""
	}
	return parts[2]
}
