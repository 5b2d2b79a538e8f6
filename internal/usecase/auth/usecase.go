package auth

import (
	"context"
	"errors"
	"strconv"
	"time"

	"ticketflow-backend/internal/domain/authtoken"
	userDomain "ticketflow-backend/internal/domain/user"
	"ticketflow-backend/pkg/id"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token has expired")
)

// Usecase mints, verifies and revokes bearer tokens. Tokens are HS256 JWTs
// backed by an auth_tokens row so logout can kill them before expiry.
type Usecase struct {
	users  userDomain.Repository
	tokens authtoken.Repository
	secret []byte
	ttl    time.Duration
}

func NewUsecase(users userDomain.Repository, tokens authtoken.Repository, secret []byte, ttl time.Duration) *Usecase {
	return &Usecase{users: users, tokens: tokens, secret: secret, ttl: ttl}
}

type LoginInput struct {
	Username  string `json:"username" validate:"required"`
	Password  string `json:"password" validate:"required"`
	IPAddress string `json:"-"`
	UserAgent string `json:"-"`
}

type TokenDTO struct {
	AccessToken string           `json:"access_token"`
	TokenType   string           `json:"token_type"`
	ExpiresAt   time.Time        `json:"expires_at"`
	User        *userDomain.User `json:"user"`
}

func (u *Usecase) Login(ctx context.Context, in LoginInput) (*TokenDTO, error) {
	usr, err := u.users.GetByUsername(ctx, in.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(in.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := time.Now().UTC()
	expires := now.Add(u.ttl)
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(usr.ID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expires),
		ID:        id.NewID32(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(u.secret)
	if err != nil {
		return nil, err
	}

	if err := u.tokens.Create(ctx, &authtoken.Token{
		UserID:      usr.ID,
		AccessToken: signed,
		TokenType:   "Bearer",
		ExpiresAt:   expires,
		IPAddress:   in.IPAddress,
		UserAgent:   in.UserAgent,
	}); err != nil {
		return nil, err
	}

	return &TokenDTO{
		AccessToken: signed,
		TokenType:   "Bearer",
		ExpiresAt:   expires,
		User:        usr,
	}, nil
}

// Verify checks signature, expiry and revocation, and returns the bearer.
func (u *Usecase) Verify(ctx context.Context, raw string) (*userDomain.User, error) {
	parsed, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return u.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	row, err := u.tokens.GetByAccessToken(ctx, raw)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	if row.IsRevoked {
		return nil, ErrInvalidToken
	}
	if time.Now().UTC().After(row.ExpiresAt) {
		return nil, ErrTokenExpired
	}

	uid, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return nil, ErrInvalidToken
	}
	usr, err := u.users.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return usr, nil
}

func (u *Usecase) Logout(ctx context.Context, raw string) error {
	err := u.tokens.Revoke(ctx, raw)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// already revoked or never issued; logout is idempotent
		return nil
	}
	return err
}

// PurgeExpired removes token rows past their expiry. Callers decide when;
// nothing in the request path depends on it.
func (u *Usecase) PurgeExpired(ctx context.Context) (int64, error) {
	return u.tokens.DeleteExpiredBefore(ctx, time.Now().UTC())
}
