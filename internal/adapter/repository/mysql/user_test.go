package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	"ticketflow-backend/internal/domain/authtoken"
	userDomain "ticketflow-backend/internal/domain/user"

	"gorm.io/gorm"
)

func TestUserRepository_CRUD(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := &userDomain.User{
		Username:     "alice",
		Email:        "alice@example.com",
		FirstName:    "Alice",
		LastName:     "Smith",
		Role:         userDomain.RoleAdmin,
		PasswordHash: "hash",
	}
	if err := repo.Create(ctx, u); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if u.ID == 0 {
		t.Fatalf("Create did not set ID")
	}

	got, err := repo.GetByUsername(ctx, "alice")
	if err != nil || got.ID != u.ID {
		t.Fatalf("GetByUsername: %+v (%v)", got, err)
	}

	got.FirstName = "Alicia"
	if err := repo.Save(ctx, got); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, _ = repo.GetByID(ctx, u.ID)
	if got.FirstName != "Alicia" {
		t.Fatalf("Save not applied: %+v", got)
	}

	if err := repo.Delete(ctx, u.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, u.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("deleted user still readable: %v", err)
	}
}

func TestAuthTokenRepository(t *testing.T) {
	db := openTestDB(t)
	if err := db.AutoMigrate(&authtoken.Token{}); err != nil {
		t.Fatalf("migrate tokens: %v", err)
	}
	repo := NewAuthTokenRepository(db)
	ctx := context.Background()

	now := time.Now().UTC()
	tok := &authtoken.Token{
		UserID:      7,
		AccessToken: "jwt-abc",
		TokenType:   "Bearer",
		ExpiresAt:   now.Add(time.Hour),
	}
	if err := repo.Create(ctx, tok); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByAccessToken(ctx, "jwt-abc")
	if err != nil || got.UserID != 7 || got.IsRevoked {
		t.Fatalf("GetByAccessToken: %+v (%v)", got, err)
	}

	if err := repo.Revoke(ctx, "jwt-abc"); err != nil {
		t.Fatalf("Revoke: %v", err)
	}
	got, _ = repo.GetByAccessToken(ctx, "jwt-abc")
	if !got.IsRevoked {
		t.Fatalf("token not revoked: %+v", got)
	}

	expired := &authtoken.Token{UserID: 7, AccessToken: "jwt-old", TokenType: "Bearer", ExpiresAt: now.Add(-time.Hour)}
	if err := repo.Create(ctx, expired); err != nil {
		t.Fatalf("Create expired: %v", err)
	}
	n, err := repo.DeleteExpiredBefore(ctx, now)
	if err != nil || n != 1 {
		t.Fatalf("DeleteExpiredBefore: n=%d (%v)", n, err)
	}
	if _, err := repo.GetByAccessToken(ctx, "jwt-old"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expired token still present: %v", err)
	}
	if _, err := repo.GetByAccessToken(ctx, "jwt-abc"); err != nil {
		t.Fatalf("unexpired token purged: %v", err)
	}
}
