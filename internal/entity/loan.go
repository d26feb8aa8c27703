package entity

import "time"

// Loan status values. A loan starts active and is returned exactly once;
// there is no cancelled or lost state.
const (
	LoanStatusActive   = "active"
	LoanStatusReturned = "returned"
)

type Loan struct {
	ID         string     `json:"id"`
	BookID     string     `json:"book_id"`
	UserID     string     `json:"user_id"`
	LoanDate   time.Time  `json:"loan_date"`
	DueDate    time.Time  `json:"due_date"`
	ReturnDate *time.Time `json:"return_date,omitempty"`
	FineAmount float64    `json:"fine_amount"`
	Status     string     `json:"status"`
}

// Overdue reports whether the loan is still active past its due date.
func (l Loan) Overdue(now time.Time) bool {
	return l.Status == LoanStatusActive && l.DueDate.Before(now)
}
