package mysql

import (
	"context"
	"time"

	tokenDomain "ticketflow-backend/internal/domain/authtoken"

	"gorm.io/gorm"
)

type AuthTokenRepository struct{ db *gorm.DB }

func NewAuthTokenRepository(db *gorm.DB) *AuthTokenRepository {
	return &AuthTokenRepository{db: db}
}

func (r *AuthTokenRepository) Create(ctx context.Context, t *tokenDomain.Token) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *AuthTokenRepository) GetByAccessToken(ctx context.Context, accessToken string) (*tokenDomain.Token, error) {
	var out tokenDomain.Token
	res := r.db.WithContext(ctx).Where("access_token = ?", accessToken).First(&out)
	return &out, res.Error
}

func (r *AuthTokenRepository) Revoke(ctx context.Context, accessToken string) error {
	res := r.db.WithContext(ctx).Model(&tokenDomain.Token{}).
		Where("access_token = ? AND is_revoked = ?", accessToken, false).
		Update("is_revoked", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *AuthTokenRepository) RevokeAllForUser(ctx context.Context, userID uint64) error {
	return r.db.WithContext(ctx).Model(&tokenDomain.Token{}).
		Where("user_id = ? AND is_revoked = ?", userID, false).
		Update("is_revoked", true).Error
}

func (r *AuthTokenRepository) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at < ?", cutoff).
		Delete(&tokenDomain.Token{})
	return res.RowsAffected, res.Error
}
