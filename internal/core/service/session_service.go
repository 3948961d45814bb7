package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jwtpizza/pizza-service/internal/core/domain"
	"github.com/jwtpizza/pizza-service/internal/core/ports"
	"github.com/jwtpizza/pizza-service/internal/core/token"
)

// SessionService is the session authorizer. A token authorizes a request only
// when its signature verifies under the shared secret AND its trailing
// signature segment is still recorded as the owner's active marker. Logout
// removes the marker, revoking the token for good even though it would still
// verify.
type SessionService struct {
	codec  *token.Codec
	store  ports.SessionStore
	logger zerolog.Logger
}

func NewSessionService(codec *token.Codec, store ports.SessionStore, logger zerolog.Logger) *SessionService {
	return &SessionService{codec: codec, store: store, logger: logger}
}

// Resolve maps a raw bearer token to an identity, or nil. Every failure mode
// short of a store write collapses to nil: no token, malformed token, revoked
// signature, verification failure, and store read errors (anonymous is the
// safe default when the store cannot answer).
//
// The active-marker check runs before signature verification, so a revoked
// token costs one store round trip and no crypto.
func (s *SessionService) Resolve(ctx context.Context, raw string) *token.Claims {
	if raw == "" {
		return nil
	}

	sig := token.SignatureOf(raw)
	if sig == "" {
		return nil
	}

	active, err := s.store.IsActive(ctx, sig)
	if err != nil {
		s.logger.Warn().Err(err).Msg("session store unavailable during resolve")
		return nil
	}
	if !active {
		return nil
	}

	claims, err := s.codec.Verify(raw)
	if err != nil {
		// Signature was recorded but the token no longer verifies (expired or
		// tampered); treat like any anonymous request.
		return nil
	}
	return claims
}

// StartSession issues a token for user and records its signature as the
// user's single active marker. The store write overwrites any prior marker,
// so a second login invalidates the first session (last-write-wins).
func (s *SessionService) StartSession(ctx context.Context, user *domain.User) (string, error) {
	tok, err := s.codec.Issue(user)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	sig := token.SignatureOf(tok)
	if sig == "" {
		return "", fmt.Errorf("issued token has no signature segment")
	}

	if err := s.store.RecordActive(ctx, user.ID, sig); err != nil {
		return "", fmt.Errorf("record active session: %w", err)
	}
	return tok, nil
}

// EndSession removes the active marker matching raw's signature. Idempotent:
// a missing token, malformed token, or already-cleared marker is a no-op.
// Store failures are returned, the caller must not report a logout that never
// happened.
func (s *SessionService) EndSession(ctx context.Context, raw string) error {
	if raw == "" {
		return nil
	}

	sig := token.SignatureOf(raw)
	if sig == "" {
		return nil
	}

	if err := s.store.ClearActive(ctx, sig); err != nil {
		return fmt.Errorf("clear active session: %w", err)
	}
	return nil
}
