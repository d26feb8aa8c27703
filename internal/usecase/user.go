package usecase

import (
	"context"

	"libraryapi/internal/auth"
	"libraryapi/internal/entity"
)

// UserRepository defines the contract for the membership store. Create must
// surface a duplicate email as ErrAlreadyExists via the store's unique
// constraint.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (entity.User, error)
	GetByEmail(ctx context.Context, email string) (entity.User, error)
	List(ctx context.Context, limit, offset int) ([]entity.User, int, error)
	Delete(ctx context.Context, id string) error
}

type UserUsecase struct {
	users UserRepository
}

func NewUserUsecase(users UserRepository) *UserUsecase {
	return &UserUsecase{users: users}
}

// CreateUser hashes the plaintext password before it ever reaches the store.
func (u *UserUsecase) CreateUser(ctx context.Context, name, email, password string) (entity.User, error) {
	hashed, err := auth.HashPassword(password)
	if err != nil {
		return entity.User{}, err
	}

	user := entity.User{
		Name:     name,
		Email:    email,
		Password: hashed,
	}
	if err := u.users.Create(ctx, &user); err != nil {
		return entity.User{}, err
	}
	return user, nil
}

func (u *UserUsecase) GetUser(ctx context.Context, id string) (entity.User, error) {
	return u.users.GetByID(ctx, id)
}

func (u *UserUsecase) ListUsers(ctx context.Context, limit, offset int) ([]entity.User, int, error) {
	return u.users.List(ctx, limit, offset)
}

func (u *UserUsecase) DeleteUser(ctx context.Context, id string) error {
	return u.users.Delete(ctx, id)
}
