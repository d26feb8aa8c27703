package usecase

import (
	"context"
	"errors"

	"libraryapi/internal/entity"
)

// BookRepository defines the contract for the catalog store.
type BookRepository interface {
	Create(ctx context.Context, b *entity.Book) error
	GetByID(ctx context.Context, id string) (entity.Book, error)
	List(ctx context.Context, limit, offset int) ([]entity.Book, int, error)
	Delete(ctx context.Context, id string) error
}

// BookAvailability reports whether a book can currently be loaned out.
// Availability is derived from the loan ledger, not the catalog itself.
type BookAvailability struct {
	BookID        string  `json:"book_id"`
	Name          string  `json:"name"`
	Available     bool    `json:"available"`
	CurrentLoanID *string `json:"current_loan_id"`
}

type BookUsecase struct {
	books   BookRepository
	authors AuthorRepository
	loans   LoanRepository
}

func NewBookUsecase(books BookRepository, authors AuthorRepository, loans LoanRepository) *BookUsecase {
	return &BookUsecase{books: books, authors: authors, loans: loans}
}

// CreateBook registers a new book after validating that its author exists.
func (u *BookUsecase) CreateBook(ctx context.Context, b *entity.Book) error {
	if _, err := u.authors.GetByID(ctx, b.AuthorID); err != nil {
		return err
	}
	return u.books.Create(ctx, b)
}

func (u *BookUsecase) GetBook(ctx context.Context, id string) (entity.Book, error) {
	return u.books.GetByID(ctx, id)
}

func (u *BookUsecase) ListBooks(ctx context.Context, limit, offset int) ([]entity.Book, int, error) {
	return u.books.List(ctx, limit, offset)
}

func (u *BookUsecase) DeleteBook(ctx context.Context, id string) error {
	return u.books.Delete(ctx, id)
}

// CheckAvailability looks up the book and reports whether an active loan
// currently holds it.
func (u *BookUsecase) CheckAvailability(ctx context.Context, bookID string) (BookAvailability, error) {
	book, err := u.books.GetByID(ctx, bookID)
	if err != nil {
		return BookAvailability{}, err
	}

	loan, err := u.loans.GetActiveByBook(ctx, bookID)
	if err != nil {
		if errors.Is(err, ErrNoActiveLoan) {
			return BookAvailability{BookID: book.ID, Name: book.Name, Available: true}, nil
		}
		return BookAvailability{}, err
	}

	return BookAvailability{
		BookID:        book.ID,
		Name:          book.Name,
		Available:     false,
		CurrentLoanID: &loan.ID,
	}, nil
}
