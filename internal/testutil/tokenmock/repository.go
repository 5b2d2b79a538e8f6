package tokenmock

import (
	"context"
	"time"

	domain "ticketflow-backend/internal/domain/authtoken"
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn              func(ctx context.Context, t *domain.Token) error
	GetByAccessTokenFn    func(ctx context.Context, accessToken string) (*domain.Token, error)
	RevokeFn              func(ctx context.Context, accessToken string) error
	RevokeAllForUserFn    func(ctx context.Context, userID uint64) error
	DeleteExpiredBeforeFn func(ctx context.Context, cutoff time.Time) (int64, error)
}

var _ domain.Repository = (*Repo)(nil)

func (m *Repo) Create(ctx context.Context, t *domain.Token) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, t)
	}
	return nil
}
func (m *Repo) GetByAccessToken(ctx context.Context, accessToken string) (*domain.Token, error) {
	if m.GetByAccessTokenFn != nil {
		return m.GetByAccessTokenFn(ctx, accessToken)
	}
	return nil, context.Canceled
}
func (m *Repo) Revoke(ctx context.Context, accessToken string) error {
	if m.RevokeFn != nil {
		return m.RevokeFn(ctx, accessToken)
	}
	return nil
}
func (m *Repo) RevokeAllForUser(ctx context.Context, userID uint64) error {
	if m.RevokeAllForUserFn != nil {
		return m.RevokeAllForUserFn(ctx, userID)
	}
	return nil
}
func (m *Repo) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	if m.DeleteExpiredBeforeFn != nil {
		return m.DeleteExpiredBeforeFn(ctx, cutoff)
	}
	return 0, nil
}
