package ports

import "context"

// SessionStore keeps the per-user active token signature that makes a
// cryptographically valid token authorization-valid. Removing the record is
// the revocation mechanism.
type SessionStore interface {
	// RecordActive associates signature with userID, overwriting any prior
	// active signature for that user (single active session per user).
	RecordActive(ctx context.Context, userID, signature string) error
	// ClearActive removes the active record for signature. Clearing an
	// unknown signature is a no-op.
	ClearActive(ctx context.Context, signature string) error
	// IsActive reports whether signature is currently recorded.
	IsActive(ctx context.Context, signature string) (bool, error)
}
