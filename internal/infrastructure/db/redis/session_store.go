package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// SessionStore keeps the active-signature table backing token revocation.
//
// Two key families, kept in sync:
//
//	session:sig:<signature>  → user id   (presence makes the token valid)
//	session:user:<user id>   → signature (locates the marker to overwrite)
//
// Both keys move together inside server-side Lua scripts, so concurrent
// logins and logouts for one user serialize on the server; at no point do two
// signatures validate for the same user.
type SessionStore struct {
	client *redis.Client
}

func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

// Swaps the user's marker and drops the superseded signature in one atomic
// step. KEYS[1] = user key, KEYS[2] = sig key, ARGV[1] = signature,
// ARGV[2] = user id.
var recordActiveScript = redis.NewScript(`
local old = redis.call("GET", KEYS[1])
if old and old ~= ARGV[1] then
	redis.call("DEL", "session:sig:" .. old)
end
redis.call("SET", KEYS[1], ARGV[1])
redis.call("SET", KEYS[2], ARGV[2])
return 1
`)

// Removes the marker for one signature. The reverse mapping is dropped only
// while it still points at this signature; a newer login already owns it
// otherwise. KEYS[1] = sig key, ARGV[1] = signature.
var clearActiveScript = redis.NewScript(`
local owner = redis.call("GET", KEYS[1])
if owner == false then
	return 0
end
redis.call("DEL", KEYS[1])
if redis.call("GET", "session:user:" .. owner) == ARGV[1] then
	redis.call("DEL", "session:user:" .. owner)
end
return 1
`)

// RecordActive registers signature as userID's single active marker,
// atomically replacing any previously recorded signature for the user.
func (s *SessionStore) RecordActive(ctx context.Context, userID, signature string) error {
	keys := []string{userKey(userID), sigKey(signature)}
	if err := recordActiveScript.Run(ctx, s.client, keys, signature, userID).Err(); err != nil {
		return fmt.Errorf("record session: %w", err)
	}
	return nil
}

// ClearActive removes the marker for signature. Unknown signatures are a
// no-op.
func (s *SessionStore) ClearActive(ctx context.Context, signature string) error {
	if err := clearActiveScript.Run(ctx, s.client, []string{sigKey(signature)}, signature).Err(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// IsActive reports whether signature is currently recorded.
func (s *SessionStore) IsActive(ctx context.Context, signature string) (bool, error) {
	n, err := s.client.Exists(ctx, sigKey(signature)).Result()
	if err != nil {
		return false, fmt.Errorf("session check: %w", err)
	}
	return n > 0, nil
}

func sigKey(signature string) string {
	return fmt.Sprintf("session:sig:%s", signature)
}

func userKey(userID string) string {
	return fmt.Sprintf("session:user:%s", userID)
}
