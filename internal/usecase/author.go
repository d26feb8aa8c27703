package usecase

import (
	"context"

	"libraryapi/internal/entity"
)

type AuthorRepository interface {
	Create(ctx context.Context, a *entity.Author) error
	GetByID(ctx context.Context, id string) (entity.Author, error)
	List(ctx context.Context, limit, offset int) ([]entity.Author, int, error)
}
