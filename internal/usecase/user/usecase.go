package user

import (
	"context"
	"errors"

	domain "ticketflow-backend/internal/domain/user"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Usecase struct{ repo domain.Repository }

func NewUsecase(r domain.Repository) *Usecase { return &Usecase{repo: r} }

type CreateUserInput struct {
	Username  string `json:"username" validate:"required,min=3,max=100"`
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role" validate:"omitempty,oneof=admin operator viewer"`
	Password  string `json:"password" validate:"required,min=8"`
	Address   string `json:"address"`
}

type UpdateUserInput struct {
	Email     *string `json:"email" validate:"omitempty,email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Role      *string `json:"role" validate:"omitempty,oneof=admin operator viewer"`
	Password  *string `json:"password" validate:"omitempty,min=8"`
	Address   *string `json:"address"`
}

func (u *Usecase) Create(ctx context.Context, in CreateUserInput) (*domain.User, error) {
	if _, err := u.repo.GetByUsername(ctx, in.Username); err == nil {
		return nil, domain.ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	role := domain.Role(in.Role)
	if role == "" {
		role = domain.RoleViewer
	}
	usr := &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Role:         role,
		PasswordHash: string(hash),
		Address:      in.Address,
	}
	if err := u.repo.Create(ctx, usr); err != nil {
		return nil, err
	}
	return usr, nil
}

func (u *Usecase) Get(ctx context.Context, id uint64) (*domain.User, error) {
	usr, err := u.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return usr, nil
}

func (u *Usecase) List(ctx context.Context, limit, offset int) ([]domain.User, int64, error) {
	users, err := u.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := u.repo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (u *Usecase) Update(ctx context.Context, id uint64, in UpdateUserInput) (*domain.User, error) {
	usr, err := u.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Email != nil {
		usr.Email = *in.Email
	}
	if in.FirstName != nil {
		usr.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		usr.LastName = *in.LastName
	}
	if in.Role != nil {
		usr.Role = domain.Role(*in.Role)
	}
	if in.Address != nil {
		usr.Address = *in.Address
	}
	if in.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		usr.PasswordHash = string(hash)
	}
	if err := u.repo.Save(ctx, usr); err != nil {
		return nil, err
	}
	return usr, nil
}

func (u *Usecase) Delete(ctx context.Context, id uint64) error {
	err := u.repo.Delete(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}
