package usecase

import "errors"

var (
	// ErrNotFound is returned when a referenced book, author or user does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists is returned on unique constraint conflicts (duplicate email).
	ErrAlreadyExists = errors.New("already exists")

	// ErrBookUnavailable is returned when the book already has an active loan.
	ErrBookUnavailable = errors.New("book is not available")

	// ErrLoanLimitExceeded is returned when the user already holds the maximum
	// number of active loans.
	ErrLoanLimitExceeded = errors.New("user already has maximum active loans")

	// ErrNoActiveLoan is returned when no active loan matches the given ID.
	// It covers both "never existed" and "already returned"; the ledger does
	// not distinguish the two.
	ErrNoActiveLoan = errors.New("active loan not found")
)
