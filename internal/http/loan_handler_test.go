package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"libraryapi/internal/entity"
	"libraryapi/internal/store/mocks"
	"libraryapi/internal/testutil"
	"libraryapi/internal/usecase"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
)

var handlerNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func newLoanHandler(t *testing.T) (*LoanHandler, *mocks.MockLoanRepository, *mocks.MockBookRepository, *mocks.MockUserRepository) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	loanRepo := mocks.NewMockLoanRepository(ctrl)
	bookRepo := mocks.NewMockBookRepository(ctrl)
	userRepo := mocks.NewMockUserRepository(ctrl)

	ledger := usecase.NewLoanUsecase(loanRepo, bookRepo, userRepo, usecase.DefaultPolicy()).
		WithClock(func() time.Time { return handlerNow })
	return NewLoanHandler(ledger), loanRepo, bookRepo, userRepo
}

func TestLoanHandler_Create(t *testing.T) {
	validBody := map[string]string{
		"book_id": testutil.TestBook.ID,
		"user_id": testutil.TestUser.ID,
	}

	tests := []struct {
		name           string
		body           interface{}
		setupMock      func(loans *mocks.MockLoanRepository, books *mocks.MockBookRepository, users *mocks.MockUserRepository)
		expectedStatus int
		expectedCode   string
	}{
		{
			name: "created",
			body: validBody,
			setupMock: func(loans *mocks.MockLoanRepository, books *mocks.MockBookRepository, users *mocks.MockUserRepository) {
				books.EXPECT().GetByID(gomock.Any(), testutil.TestBook.ID).Return(testutil.TestBook, nil)
				users.EXPECT().GetByID(gomock.Any(), testutil.TestUser.ID).Return(testutil.TestUser, nil)
				loans.EXPECT().GetActiveByBook(gomock.Any(), testutil.TestBook.ID).Return(entity.Loan{}, usecase.ErrNoActiveLoan)
				loans.EXPECT().CountActiveByUser(gomock.Any(), testutil.TestUser.ID).Return(1, nil)
				loans.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "invalid JSON",
			body:           "not json",
			setupMock:      func(*mocks.MockLoanRepository, *mocks.MockBookRepository, *mocks.MockUserRepository) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "BAD_REQUEST",
		},
		{
			name:           "missing user_id",
			body:           map[string]string{"book_id": testutil.TestBook.ID},
			setupMock:      func(*mocks.MockLoanRepository, *mocks.MockBookRepository, *mocks.MockUserRepository) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "VALIDATION_ERROR",
		},
		{
			name: "book not found",
			body: validBody,
			setupMock: func(loans *mocks.MockLoanRepository, books *mocks.MockBookRepository, users *mocks.MockUserRepository) {
				books.EXPECT().GetByID(gomock.Any(), testutil.TestBook.ID).Return(entity.Book{}, usecase.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedCode:   "NOT_FOUND",
		},
		{
			name: "book unavailable",
			body: validBody,
			setupMock: func(loans *mocks.MockLoanRepository, books *mocks.MockBookRepository, users *mocks.MockUserRepository) {
				books.EXPECT().GetByID(gomock.Any(), testutil.TestBook.ID).Return(testutil.TestBook, nil)
				users.EXPECT().GetByID(gomock.Any(), testutil.TestUser.ID).Return(testutil.TestUser, nil)
				loans.EXPECT().GetActiveByBook(gomock.Any(), testutil.TestBook.ID).
					Return(testutil.NewActiveLoan(handlerNow, handlerNow.AddDate(0, 0, 14)), nil)
			},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "BOOK_UNAVAILABLE",
		},
		{
			name: "loan limit exceeded",
			body: validBody,
			setupMock: func(loans *mocks.MockLoanRepository, books *mocks.MockBookRepository, users *mocks.MockUserRepository) {
				books.EXPECT().GetByID(gomock.Any(), testutil.TestBook.ID).Return(testutil.TestBook, nil)
				users.EXPECT().GetByID(gomock.Any(), testutil.TestUser.ID).Return(testutil.TestUser, nil)
				loans.EXPECT().GetActiveByBook(gomock.Any(), testutil.TestBook.ID).Return(entity.Loan{}, usecase.ErrNoActiveLoan)
				loans.EXPECT().CountActiveByUser(gomock.Any(), testutil.TestUser.ID).Return(3, nil)
			},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "LOAN_LIMIT_EXCEEDED",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, loans, books, users := newLoanHandler(t)
			tt.setupMock(loans, books, users)

			w := httptest.NewRecorder()
			r := testutil.NewRequest(http.MethodPost, "/loans", tt.body)

			handler.Loans(w, r)

			resp := testutil.RecordHTTPResponse(w)
			assert.Equal(t, tt.expectedStatus, resp.Code)
			if tt.expectedCode != "" {
				errBody, _ := resp.Body["error"].(map[string]interface{})
				assert.Equal(t, tt.expectedCode, errBody["code"])
			}
		})
	}
}

func TestLoanHandler_Return(t *testing.T) {
	t.Run("overdue return reports the frozen fine", func(t *testing.T) {
		handler, loans, _, _ := newLoanHandler(t)

		loan := testutil.NewActiveLoan(handlerNow.AddDate(0, 0, -17), handlerNow.AddDate(0, 0, -3))
		loans.EXPECT().GetActiveByID(gomock.Any(), loan.ID).Return(loan, nil)
		loans.EXPECT().MarkReturned(gomock.Any(), loan.ID, handlerNow, 6.0).DoAndReturn(
			func(_ context.Context, id string, returnedAt time.Time, fine float64) (entity.Loan, error) {
				loan.ReturnDate = &returnedAt
				loan.FineAmount = fine
				loan.Status = entity.LoanStatusReturned
				return loan, nil
			})

		w := httptest.NewRecorder()
		r := testutil.NewRequest(http.MethodPut, "/loans/"+loan.ID+"/return", nil)

		handler.LoanSubroutes(w, r)

		resp := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusOK, resp.Code)
		data, _ := resp.Body["data"].(map[string]interface{})
		assert.Equal(t, 6.0, data["fine_amount"])
		assert.Contains(t, data["message"], "6.00")
	})

	t.Run("double return is not found", func(t *testing.T) {
		handler, loans, _, _ := newLoanHandler(t)

		loans.EXPECT().GetActiveByID(gomock.Any(), "loan-id-001").Return(entity.Loan{}, usecase.ErrNoActiveLoan)

		w := httptest.NewRecorder()
		r := testutil.NewRequest(http.MethodPut, "/loans/loan-id-001/return", nil)

		handler.LoanSubroutes(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("POST to return path is rejected", func(t *testing.T) {
		handler, _, _, _ := newLoanHandler(t)

		w := httptest.NewRecorder()
		r := testutil.NewRequest(http.MethodPost, "/loans/loan-id-001/return", nil)

		handler.LoanSubroutes(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestLoanHandler_Lists(t *testing.T) {
	t.Run("default pagination", func(t *testing.T) {
		handler, loans, _, _ := newLoanHandler(t)

		items := []entity.Loan{testutil.NewActiveLoan(handlerNow, handlerNow.AddDate(0, 0, 14))}
		loans.EXPECT().List(gomock.Any(), 10, 0).Return(items, 25, nil)

		w := httptest.NewRecorder()
		handler.Loans(w, testutil.NewRequest(http.MethodGet, "/loans", nil))

		resp := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusOK, resp.Code)
		assert.Equal(t, float64(25), resp.Body["total"])
		assert.Equal(t, float64(1), resp.Body["page"])
		assert.Equal(t, float64(10), resp.Body["size"])
		assert.Equal(t, float64(3), resp.Body["pages"])
		assert.Len(t, resp.Body["items"], 1)
	})

	t.Run("page past the end is empty, not an error", func(t *testing.T) {
		handler, loans, _, _ := newLoanHandler(t)

		loans.EXPECT().List(gomock.Any(), 10, 90).Return(nil, 25, nil)

		w := httptest.NewRecorder()
		handler.Loans(w, testutil.NewRequest(http.MethodGet, "/loans?page=10", nil))

		resp := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusOK, resp.Code)
		items, ok := resp.Body["items"].([]interface{})
		assert.True(t, ok, "items must be a list even when empty")
		assert.Empty(t, items)
		assert.Equal(t, float64(3), resp.Body["pages"])
	})

	t.Run("size is clamped to the default when out of range", func(t *testing.T) {
		handler, loans, _, _ := newLoanHandler(t)

		loans.EXPECT().List(gomock.Any(), 10, 0).Return(nil, 0, nil)

		w := httptest.NewRecorder()
		handler.Loans(w, testutil.NewRequest(http.MethodGet, "/loans?size=500", nil))

		resp := testutil.RecordHTTPResponse(w)
		assert.Equal(t, float64(10), resp.Body["size"])
	})

	t.Run("active filter", func(t *testing.T) {
		handler, loans, _, _ := newLoanHandler(t)

		loans.EXPECT().ListActive(gomock.Any(), 10, 0).Return([]entity.Loan{}, 0, nil)

		w := httptest.NewRecorder()
		handler.LoanSubroutes(w, testutil.NewRequest(http.MethodGet, "/loans/active", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("overdue filter pins the clock", func(t *testing.T) {
		handler, loans, _, _ := newLoanHandler(t)

		loans.EXPECT().ListOverdue(gomock.Any(), handlerNow, 10, 0).Return([]entity.Loan{}, 0, nil)

		w := httptest.NewRecorder()
		handler.LoanSubroutes(w, testutil.NewRequest(http.MethodGet, "/loans/overdue", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("loans by user id", func(t *testing.T) {
		handler, loans, _, _ := newLoanHandler(t)

		loans.EXPECT().ListByUser(gomock.Any(), testutil.TestUser.ID, 10, 0).Return([]entity.Loan{}, 0, nil)

		w := httptest.NewRecorder()
		handler.LoanSubroutes(w, testutil.NewRequest(http.MethodGet, "/loans/"+testutil.TestUser.ID, nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
