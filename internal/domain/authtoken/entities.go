package authtoken

import (
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("auth token not found")
	ErrRevoked  = errors.New("auth token revoked")
	ErrExpired  = errors.New("auth token expired")
)

// Token is one issued bearer token. The JWT itself is self-describing; the
// row exists so logout can revoke it before expiry.
type Token struct {
	ID          uint64    `gorm:"primaryKey;column:id"`
	UserID      uint64    `gorm:"not null;index"`
	AccessToken string    `gorm:"size:512;not null;index:idx_auth_tokens_access"`
	TokenType   string    `gorm:"size:50;default:'Bearer'"`
	ExpiresAt   time.Time `gorm:"not null"`
	IsRevoked   bool      `gorm:"default:false"`
	IPAddress   string    `gorm:"size:45"`
	UserAgent   string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (Token) TableName() string { return "auth_tokens" }
