package store

import (
	"context"
	"errors"
	"time"

	"libraryapi/internal/entity"
	"libraryapi/internal/usecase"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const loanColumns = `id, book_id, user_id, loan_date, due_date, return_date, fine_amount, status`

// LoanPG is the Postgres loan ledger store. A partial unique index on
// loans(book_id) WHERE status = 'active' backs the one-active-loan-per-book
// invariant against concurrent create requests.
type LoanPG struct {
	db *pgxpool.Pool
}

func NewLoanPG(db *pgxpool.Pool) *LoanPG {
	return &LoanPG{db: db}
}

func (r *LoanPG) Create(ctx context.Context, l *entity.Loan) error {
	const query = `
	INSERT INTO loans (id, book_id, user_id, loan_date, due_date, fine_amount, status)
	VALUES (gen_random_uuid(), $1, $2, $3, $4, 0, $5)
	RETURNING id
	`
	err := r.db.QueryRow(ctx, query, l.BookID, l.UserID, l.LoanDate, l.DueDate, l.Status).
		Scan(&l.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return usecase.ErrBookUnavailable
		}
		return err
	}
	return nil
}

func (r *LoanPG) GetActiveByID(ctx context.Context, id string) (entity.Loan, error) {
	const query = `
	SELECT ` + loanColumns + `
	FROM loans
	WHERE id = $1 AND status = 'active'
	LIMIT 1
	`
	return r.getOne(ctx, query, id)
}

func (r *LoanPG) GetActiveByBook(ctx context.Context, bookID string) (entity.Loan, error) {
	const query = `
	SELECT ` + loanColumns + `
	FROM loans
	WHERE book_id = $1 AND status = 'active'
	LIMIT 1
	`
	return r.getOne(ctx, query, bookID)
}

func (r *LoanPG) getOne(ctx context.Context, query string, arg any) (entity.Loan, error) {
	var l entity.Loan
	err := r.db.QueryRow(ctx, query, arg).
		Scan(&l.ID, &l.BookID, &l.UserID, &l.LoanDate, &l.DueDate, &l.ReturnDate, &l.FineAmount, &l.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Loan{}, usecase.ErrNoActiveLoan
		}
		return entity.Loan{}, err
	}
	return l, nil
}

func (r *LoanPG) CountActiveByUser(ctx context.Context, userID string) (int, error) {
	const query = `
	SELECT COUNT(*) FROM loans WHERE user_id = $1 AND status = 'active'
	`
	var count int
	if err := r.db.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// MarkReturned flips an active loan to returned, freezing the fine. The
// status guard in the WHERE clause makes a concurrent double-return lose.
func (r *LoanPG) MarkReturned(ctx context.Context, id string, returnedAt time.Time, fine float64) (entity.Loan, error) {
	const query = `
	UPDATE loans
	SET status = 'returned', return_date = $2, fine_amount = $3
	WHERE id = $1 AND status = 'active'
	RETURNING ` + loanColumns + `
	`
	var l entity.Loan
	err := r.db.QueryRow(ctx, query, id, returnedAt, fine).
		Scan(&l.ID, &l.BookID, &l.UserID, &l.LoanDate, &l.DueDate, &l.ReturnDate, &l.FineAmount, &l.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Loan{}, usecase.ErrNoActiveLoan
		}
		return entity.Loan{}, err
	}
	return l, nil
}

func (r *LoanPG) List(ctx context.Context, limit, offset int) ([]entity.Loan, int, error) {
	const query = `
	SELECT ` + loanColumns + `, COUNT(*) OVER()
	FROM loans
	ORDER BY loan_date DESC
	LIMIT $1 OFFSET $2
	`
	return r.list(ctx, query, `SELECT COUNT(*) FROM loans`, limit, offset)
}

func (r *LoanPG) ListActive(ctx context.Context, limit, offset int) ([]entity.Loan, int, error) {
	const query = `
	SELECT ` + loanColumns + `, COUNT(*) OVER()
	FROM loans
	WHERE status = 'active'
	ORDER BY loan_date DESC
	LIMIT $1 OFFSET $2
	`
	return r.list(ctx, query, `SELECT COUNT(*) FROM loans WHERE status = 'active'`, limit, offset)
}

func (r *LoanPG) ListOverdue(ctx context.Context, now time.Time, limit, offset int) ([]entity.Loan, int, error) {
	const query = `
	SELECT ` + loanColumns + `, COUNT(*) OVER()
	FROM loans
	WHERE status = 'active' AND due_date < $3
	ORDER BY due_date
	LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset, now)
	if err != nil {
		return nil, 0, err
	}
	loans, total, err := scanLoans(rows)
	if err != nil {
		return nil, 0, err
	}
	if len(loans) == 0 {
		err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM loans WHERE status = 'active' AND due_date < $1`, now).
			Scan(&total)
		if err != nil {
			return nil, 0, err
		}
	}
	return loans, total, nil
}

func (r *LoanPG) ListByUser(ctx context.Context, userID string, limit, offset int) ([]entity.Loan, int, error) {
	const query = `
	SELECT ` + loanColumns + `, COUNT(*) OVER()
	FROM loans
	WHERE user_id = $3
	ORDER BY loan_date DESC
	LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset, userID)
	if err != nil {
		return nil, 0, err
	}
	loans, total, err := scanLoans(rows)
	if err != nil {
		return nil, 0, err
	}
	if len(loans) == 0 {
		err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM loans WHERE user_id = $1`, userID).Scan(&total)
		if err != nil {
			return nil, 0, err
		}
	}
	return loans, total, nil
}

func (r *LoanPG) list(ctx context.Context, query, countQuery string, limit, offset int) ([]entity.Loan, int, error) {
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	loans, total, err := scanLoans(rows)
	if err != nil {
		return nil, 0, err
	}
	if len(loans) == 0 {
		if err := r.db.QueryRow(ctx, countQuery).Scan(&total); err != nil {
			return nil, 0, err
		}
	}
	return loans, total, nil
}

func scanLoans(rows pgx.Rows) ([]entity.Loan, int, error) {
	defer rows.Close()

	var loans []entity.Loan
	var total int
	for rows.Next() {
		var l entity.Loan
		if err := rows.Scan(&l.ID, &l.BookID, &l.UserID, &l.LoanDate, &l.DueDate, &l.ReturnDate, &l.FineAmount, &l.Status, &total); err != nil {
			return nil, 0, err
		}
		loans = append(loans, l)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return loans, total, nil
}
