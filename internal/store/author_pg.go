package store

import (
	"context"
	"errors"

	"libraryapi/internal/entity"
	"libraryapi/internal/usecase"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AuthorPG struct {
	db *pgxpool.Pool
}

func NewAuthorPG(db *pgxpool.Pool) *AuthorPG {
	return &AuthorPG{db: db}
}

func (r *AuthorPG) Create(ctx context.Context, a *entity.Author) error {
	const query = `
	INSERT INTO authors (id, name, biography, nationality)
	VALUES (gen_random_uuid(), $1, $2, $3)
	RETURNING id, created_at, updated_at
	`
	return r.db.QueryRow(ctx, query, a.Name, a.Biography, a.Nationality).
		Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

func (r *AuthorPG) GetByID(ctx context.Context, id string) (entity.Author, error) {
	const query = `
	SELECT id, name, biography, nationality, created_at, updated_at
	FROM authors
	WHERE id = $1
	LIMIT 1
	`
	var a entity.Author
	err := r.db.QueryRow(ctx, query, id).
		Scan(&a.ID, &a.Name, &a.Biography, &a.Nationality, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Author{}, usecase.ErrNotFound
		}
		return entity.Author{}, err
	}
	return a, nil
}

func (r *AuthorPG) List(ctx context.Context, limit, offset int) ([]entity.Author, int, error) {
	const query = `
	SELECT id, name, biography, nationality, created_at, updated_at, COUNT(*) OVER()
	FROM authors
	ORDER BY name
	LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var authors []entity.Author
	var total int
	for rows.Next() {
		var a entity.Author
		if err := rows.Scan(&a.ID, &a.Name, &a.Biography, &a.Nationality, &a.CreatedAt, &a.UpdatedAt, &total); err != nil {
			return nil, 0, err
		}
		authors = append(authors, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	if len(authors) == 0 {
		// page past the end: the window count is gone, fetch it separately
		if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM authors`).Scan(&total); err != nil {
			return nil, 0, err
		}
	}
	return authors, total, nil
}
