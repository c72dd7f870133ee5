package ports

import (
	"context"
	"time"
)

// CredentialHasher hashes account credentials one-way.
type CredentialHasher interface {
	Hash(plaintext string) (string, error)
	Matches(plaintext, hash string) bool
}

// TokenIssuer mints access tokens. Verification happens outside the core.
type TokenIssuer interface {
	Issue(subject string, issuedAt, expiresAt time.Time, claims map[string]any) (string, error)
}

// TokenRevoker blocks tokens issued to a subject until they would expire.
type TokenRevoker interface {
	Revoke(ctx context.Context, subject string, ttl time.Duration) error
	IsRevoked(ctx context.Context, subject string) (bool, error)
}
