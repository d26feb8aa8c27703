package usecase_test

import (
	"context"
	"errors"
	"testing"

	"libraryapi/internal/entity"
	"libraryapi/internal/store/mocks"
	"libraryapi/internal/testutil"
	"libraryapi/internal/usecase"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
)

func TestBookUsecase_CreateBook(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	bookRepo := mocks.NewMockBookRepository(ctrl)
	authorRepo := mocks.NewMockAuthorRepository(ctrl)
	loanRepo := mocks.NewMockLoanRepository(ctrl)
	uc := usecase.NewBookUsecase(bookRepo, authorRepo, loanRepo)
	ctx := context.Background()

	t.Run("success - author exists", func(t *testing.T) {
		authorRepo.EXPECT().GetByID(ctx, testutil.TestAuthor.ID).Return(testutil.TestAuthor, nil)
		bookRepo.EXPECT().Create(ctx, gomock.Any()).Return(nil)

		book := entity.Book{Name: "New Book", Pages: 120, AuthorID: testutil.TestAuthor.ID}
		assert.NoError(t, uc.CreateBook(ctx, &book))
	})

	t.Run("error - author missing, book not created", func(t *testing.T) {
		authorRepo.EXPECT().GetByID(ctx, "missing-author").Return(entity.Author{}, usecase.ErrNotFound)

		book := entity.Book{Name: "Orphan Book", Pages: 120, AuthorID: "missing-author"}
		err := uc.CreateBook(ctx, &book)
		assert.True(t, errors.Is(err, usecase.ErrNotFound))
	})
}

func TestBookUsecase_CheckAvailability(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	bookRepo := mocks.NewMockBookRepository(ctrl)
	authorRepo := mocks.NewMockAuthorRepository(ctrl)
	loanRepo := mocks.NewMockLoanRepository(ctrl)
	uc := usecase.NewBookUsecase(bookRepo, authorRepo, loanRepo)
	ctx := context.Background()

	t.Run("available when no active loan holds the book", func(t *testing.T) {
		bookRepo.EXPECT().GetByID(ctx, testutil.TestBook.ID).Return(testutil.TestBook, nil)
		loanRepo.EXPECT().GetActiveByBook(ctx, testutil.TestBook.ID).Return(entity.Loan{}, usecase.ErrNoActiveLoan)

		info, err := uc.CheckAvailability(ctx, testutil.TestBook.ID)

		assert.NoError(t, err)
		assert.True(t, info.Available)
		assert.Equal(t, testutil.TestBook.Name, info.Name)
		assert.Nil(t, info.CurrentLoanID)
	})

	t.Run("unavailable reports the holding loan", func(t *testing.T) {
		bookRepo.EXPECT().GetByID(ctx, testutil.TestBook.ID).Return(testutil.TestBook, nil)
		loan := entity.Loan{ID: "loan-id-001", BookID: testutil.TestBook.ID, Status: entity.LoanStatusActive}
		loanRepo.EXPECT().GetActiveByBook(ctx, testutil.TestBook.ID).Return(loan, nil)

		info, err := uc.CheckAvailability(ctx, testutil.TestBook.ID)

		assert.NoError(t, err)
		assert.False(t, info.Available)
		if assert.NotNil(t, info.CurrentLoanID) {
			assert.Equal(t, "loan-id-001", *info.CurrentLoanID)
		}
	})

	t.Run("unknown book is not found", func(t *testing.T) {
		bookRepo.EXPECT().GetByID(ctx, "missing").Return(entity.Book{}, usecase.ErrNotFound)

		_, err := uc.CheckAvailability(ctx, "missing")
		assert.True(t, errors.Is(err, usecase.ErrNotFound))
	})
}
