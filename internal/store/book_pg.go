package store

import (
	"context"
	"errors"

	"libraryapi/internal/entity"
	"libraryapi/internal/usecase"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BookPG is the Postgres catalog store.
type BookPG struct {
	db *pgxpool.Pool
}

func NewBookPG(db *pgxpool.Pool) *BookPG {
	return &BookPG{db: db}
}

func (r *BookPG) Create(ctx context.Context, b *entity.Book) error {
	const query = `
	INSERT INTO books (id, name, description, pages, author_id)
	VALUES (gen_random_uuid(), $1, $2, $3, $4)
	RETURNING id, created_at, updated_at
	`
	return r.db.QueryRow(ctx, query, b.Name, b.Description, b.Pages, b.AuthorID).
		Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

func (r *BookPG) GetByID(ctx context.Context, id string) (entity.Book, error) {
	const query = `
	SELECT id, name, description, pages, author_id, created_at, updated_at
	FROM books
	WHERE id = $1
	LIMIT 1
	`
	var b entity.Book
	err := r.db.QueryRow(ctx, query, id).
		Scan(&b.ID, &b.Name, &b.Description, &b.Pages, &b.AuthorID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Book{}, usecase.ErrNotFound
		}
		return entity.Book{}, err
	}
	return b, nil
}

func (r *BookPG) List(ctx context.Context, limit, offset int) ([]entity.Book, int, error) {
	const query = `
	SELECT id, name, description, pages, author_id, created_at, updated_at, COUNT(*) OVER()
	FROM books
	ORDER BY name
	LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var books []entity.Book
	var total int
	for rows.Next() {
		var b entity.Book
		if err := rows.Scan(&b.ID, &b.Name, &b.Description, &b.Pages, &b.AuthorID, &b.CreatedAt, &b.UpdatedAt, &total); err != nil {
			return nil, 0, err
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	if len(books) == 0 {
		if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM books`).Scan(&total); err != nil {
			return nil, 0, err
		}
	}
	return books, total, nil
}

func (r *BookPG) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return usecase.ErrNotFound
	}
	return nil
}
