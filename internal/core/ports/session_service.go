package ports

import (
	"context"

	"github.com/jwtpizza/pizza-service/internal/core/domain"
	"github.com/jwtpizza/pizza-service/internal/core/token"
)

// SessionService is the session authorizer consumed by every protected route.
type SessionService interface {
	// Resolve returns the identity behind raw, or nil for any token that is
	// missing, malformed, cryptographically invalid, or revoked. It never
	// returns an error; a store read failure degrades to nil.
	Resolve(ctx context.Context, raw string) *token.Claims
	// StartSession issues a token for user and records its signature as the
	// user's single active marker, overwriting any prior one.
	StartSession(ctx context.Context, user *domain.User) (string, error)
	// EndSession revokes the session behind raw. Idempotent; unknown or
	// malformed tokens are a no-op.
	EndSession(ctx context.Context, raw string) error
}
