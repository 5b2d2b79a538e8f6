package authtoken

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, t *Token) error
	// GetByAccessToken returns the row regardless of revocation/expiry;
	// callers decide which error applies.
	GetByAccessToken(ctx context.Context, accessToken string) (*Token, error)
	Revoke(ctx context.Context, accessToken string) error
	RevokeAllForUser(ctx context.Context, userID uint64) error
	DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
