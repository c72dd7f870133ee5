package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RevocationList blocks tokens of deleted accounts until they expire.
// Key format: revoked:<account_id>
type RevocationList struct {
	client *redis.Client
}

func NewRevocationList(client *redis.Client) *RevocationList {
	return &RevocationList{client: client}
}

// Revoke records subject as revoked for ttl.
func (l *RevocationList) Revoke(ctx context.Context, subject string, ttl time.Duration) error {
	if err := l.client.Set(ctx, l.key(subject), "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// IsRevoked reports whether tokens for subject have been revoked.
func (l *RevocationList) IsRevoked(ctx context.Context, subject string) (bool, error) {
	n, err := l.client.Exists(ctx, l.key(subject)).Result()
	if err != nil {
		return false, fmt.Errorf("revocation check: %w", err)
	}
	return n > 0, nil
}

func (l *RevocationList) Ping(ctx context.Context) error {
	return l.client.Ping(ctx).Err()
}

func (l *RevocationList) key(subject string) string {
	return "revoked:" + subject
}

// NoopRevoker is used when Redis is disabled. Nothing is ever revoked.
type NoopRevoker struct{}

func (NoopRevoker) Revoke(context.Context, string, time.Duration) error { return nil }
func (NoopRevoker) IsRevoked(context.Context, string) (bool, error)      { return false, nil }
