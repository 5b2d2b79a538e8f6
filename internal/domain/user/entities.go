package user

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound      = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already taken")
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleOperator Role = "operator"
	RoleViewer   Role = "viewer"
)

type User struct {
	ID           uint64         `gorm:"primaryKey;column:id" json:"id"`
	Username     string         `gorm:"size:100;not null;uniqueIndex:ux_users_username" json:"username"`
	Email        string         `gorm:"size:255;not null" json:"email"`
	FirstName    string         `gorm:"size:100" json:"first_name"`
	LastName     string         `gorm:"size:100" json:"last_name"`
	Role         Role           `gorm:"size:20;not null;default:'viewer';index" json:"role"`
	PasswordHash string         `gorm:"size:255;not null" json:"-"`
	Address      string         `gorm:"type:text" json:"address,omitempty"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string { return "users" }
