package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"libraryapi/internal/entity"
)

// Policy holds the borrowing rules. The values are fixed per deployment and
// passed in at construction so tests can exercise boundary values.
type Policy struct {
	LoanPeriodDays int
	MaxActiveLoans int
	DailyFineRate  float64
}

// DefaultPolicy matches the library's standing rules: 14-day loans, at most
// 3 active loans per user, 2.0 currency units of fine per overdue day.
func DefaultPolicy() Policy {
	return Policy{
		LoanPeriodDays: 14,
		MaxActiveLoans: 3,
		DailyFineRate:  2.0,
	}
}

// LoanRepository defines the contract for the loan ledger's storage. All list
// operations return the pre-pagination total alongside the page of items.
type LoanRepository interface {
	Create(ctx context.Context, l *entity.Loan) error
	GetActiveByID(ctx context.Context, id string) (entity.Loan, error)
	GetActiveByBook(ctx context.Context, bookID string) (entity.Loan, error)
	CountActiveByUser(ctx context.Context, userID string) (int, error)
	MarkReturned(ctx context.Context, id string, returnedAt time.Time, fine float64) (entity.Loan, error)
	List(ctx context.Context, limit, offset int) ([]entity.Loan, int, error)
	ListActive(ctx context.Context, limit, offset int) ([]entity.Loan, int, error)
	ListOverdue(ctx context.Context, now time.Time, limit, offset int) ([]entity.Loan, int, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]entity.Loan, int, error)
}

// LoanUsecase is the loan ledger: it owns loan creation, return and fine
// policy, consulting the catalog and membership stores only for existence.
type LoanUsecase struct {
	loans  LoanRepository
	books  BookRepository
	users  UserRepository
	policy Policy
	now    func() time.Time
}

func NewLoanUsecase(loans LoanRepository, books BookRepository, users UserRepository, policy Policy) *LoanUsecase {
	return &LoanUsecase{
		loans:  loans,
		books:  books,
		users:  users,
		policy: policy,
		now:    time.Now,
	}
}

// WithClock overrides the ledger's clock. Tests use this to pin time.
func (u *LoanUsecase) WithClock(now func() time.Time) *LoanUsecase {
	u.now = now
	return u
}

// CreateLoan lends a book to a user. The book and user must exist, the book
// must have no active loan, and the user must be under the active-loan cap.
func (u *LoanUsecase) CreateLoan(ctx context.Context, bookID, userID string) (entity.Loan, error) {
	if _, err := u.books.GetByID(ctx, bookID); err != nil {
		return entity.Loan{}, err
	}
	if _, err := u.users.GetByID(ctx, userID); err != nil {
		return entity.Loan{}, err
	}

	if _, err := u.loans.GetActiveByBook(ctx, bookID); err == nil {
		log.Printf("loan rejected: book unavailable book_id=%s", bookID)
		return entity.Loan{}, ErrBookUnavailable
	} else if !errors.Is(err, ErrNoActiveLoan) {
		return entity.Loan{}, err
	}

	active, err := u.loans.CountActiveByUser(ctx, userID)
	if err != nil {
		return entity.Loan{}, err
	}
	if active >= u.policy.MaxActiveLoans {
		log.Printf("loan rejected: limit reached user_id=%s active=%d", userID, active)
		return entity.Loan{}, ErrLoanLimitExceeded
	}

	now := u.now().UTC()
	loan := entity.Loan{
		BookID:   bookID,
		UserID:   userID,
		LoanDate: now,
		DueDate:  now.AddDate(0, 0, u.policy.LoanPeriodDays),
		Status:   entity.LoanStatusActive,
	}
	if err := u.loans.Create(ctx, &loan); err != nil {
		return entity.Loan{}, err
	}
	return loan, nil
}

// ReturnBook closes an active loan, freezing the fine at the moment of
// return. Returning an already-returned or unknown loan fails with
// ErrNoActiveLoan.
func (u *LoanUsecase) ReturnBook(ctx context.Context, loanID string) (entity.Loan, error) {
	loan, err := u.loans.GetActiveByID(ctx, loanID)
	if err != nil {
		return entity.Loan{}, err
	}

	now := u.now().UTC()
	fine := u.CalculateFine(loan.DueDate, now)
	return u.loans.MarkReturned(ctx, loan.ID, now, fine)
}

// CalculateFine charges the daily rate per whole day past the due date.
// Elapsed time is truncated toward zero: 1 day + 1 hour overdue is 1 day of
// fine, and anything under 24 hours overdue is free.
func (u *LoanUsecase) CalculateFine(dueDate, now time.Time) float64 {
	if !now.After(dueDate) {
		return 0
	}
	daysOverdue := int(now.Sub(dueDate).Hours() / 24)
	return float64(daysOverdue) * u.policy.DailyFineRate
}

func (u *LoanUsecase) ListLoans(ctx context.Context, limit, offset int) ([]entity.Loan, int, error) {
	return u.loans.List(ctx, limit, offset)
}

func (u *LoanUsecase) ListActiveLoans(ctx context.Context, limit, offset int) ([]entity.Loan, int, error) {
	return u.loans.ListActive(ctx, limit, offset)
}

// ListOverdueLoans returns active loans whose due date has passed.
func (u *LoanUsecase) ListOverdueLoans(ctx context.Context, limit, offset int) ([]entity.Loan, int, error) {
	return u.loans.ListOverdue(ctx, u.now().UTC(), limit, offset)
}

func (u *LoanUsecase) ListUserLoans(ctx context.Context, userID string, limit, offset int) ([]entity.Loan, int, error) {
	return u.loans.ListByUser(ctx, userID, limit, offset)
}
