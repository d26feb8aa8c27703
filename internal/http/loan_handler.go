package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"libraryapi/internal/entity"
	"libraryapi/internal/usecase"
)

type LoanHandler struct {
	ledger *usecase.LoanUsecase
}

func NewLoanHandler(ledger *usecase.LoanUsecase) *LoanHandler {
	return &LoanHandler{ledger: ledger}
}

type createLoanReq struct {
	BookID string `json:"book_id" validate:"required"`
	UserID string `json:"user_id" validate:"required"`
}

type loanReturnResp struct {
	FineAmount float64 `json:"fine_amount"`
	Message    string  `json:"message"`
}

// Loans handles the /loans collection: POST creates a loan, GET lists all.
func (h *LoanHandler) Loans(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.create(w, r)
	case http.MethodGet:
		h.list(w, r, h.ledger.ListLoans)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// LoanSubroutes handles everything under /loans/: the active and overdue
// filters, PUT /loans/{id}/return, and GET /loans/{user_id}.
func (h *LoanHandler) LoanSubroutes(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/loans/")
	switch {
	case rest == "active" && r.Method == http.MethodGet:
		h.list(w, r, h.ledger.ListActiveLoans)
	case rest == "overdue" && r.Method == http.MethodGet:
		h.list(w, r, h.ledger.ListOverdueLoans)
	case strings.HasSuffix(rest, "/return") && r.Method == http.MethodPut:
		h.returnBook(w, r, strings.TrimSuffix(rest, "/return"))
	case rest != "" && !strings.Contains(rest, "/") && r.Method == http.MethodGet:
		h.listByUser(w, r, rest)
	default:
		http.NotFound(w, r)
	}
}

func (h *LoanHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createLoanReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	if details := ValidateStruct(req); len(details) > 0 {
		JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)
		return
	}

	loan, err := h.ledger.CreateLoan(r.Context(), req.BookID, req.UserID)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrNotFound):
			JSONError(w, http.StatusNotFound, "NOT_FOUND", "Book or user not found", nil)
		case errors.Is(err, usecase.ErrBookUnavailable):
			JSONError(w, http.StatusBadRequest, "BOOK_UNAVAILABLE", "Book is not available", nil)
		case errors.Is(err, usecase.ErrLoanLimitExceeded):
			JSONError(w, http.StatusBadRequest, "LOAN_LIMIT_EXCEEDED", "User already has maximum active loans", nil)
		default:
			JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		}
		return
	}

	JSONSuccessCreated(w, loan)
}

func (h *LoanHandler) returnBook(w http.ResponseWriter, r *http.Request, loanID string) {
	loan, err := h.ledger.ReturnBook(r.Context(), loanID)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrNoActiveLoan):
			JSONError(w, http.StatusNotFound, "NO_ACTIVE_LOAN", "Active loan not found", nil)
		default:
			JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		}
		return
	}

	JSONSuccess(w, loanReturnResp{
		FineAmount: loan.FineAmount,
		Message:    fmt.Sprintf("Book returned. Fine: %.2f", loan.FineAmount),
	})
}

func (h *LoanHandler) list(w http.ResponseWriter, r *http.Request, fetch func(ctx context.Context, limit, offset int) ([]entity.Loan, int, error)) {
	p := parsePageParams(r)
	loans, total, err := fetch(r.Context(), p.Limit(), p.Offset())
	if err != nil {
		JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	if loans == nil {
		loans = []entity.Loan{}
	}
	writePage(w, p, loans, total)
}

func (h *LoanHandler) listByUser(w http.ResponseWriter, r *http.Request, userID string) {
	p := parsePageParams(r)
	loans, total, err := h.ledger.ListUserLoans(r.Context(), userID, p.Limit(), p.Offset())
	if err != nil {
		JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	if loans == nil {
		loans = []entity.Loan{}
	}
	writePage(w, p, loans, total)
}
