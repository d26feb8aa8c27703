package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"libraryapi/internal/entity"
	"libraryapi/internal/usecase"
)

type UserHandler struct {
	users  *usecase.UserUsecase
	ledger *usecase.LoanUsecase
}

func NewUserHandler(users *usecase.UserUsecase, ledger *usecase.LoanUsecase) *UserHandler {
	return &UserHandler{users: users, ledger: ledger}
}

type createUserReq struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,password_strength"`
}

// Users handles the /users collection: POST creates, GET lists.
func (h *UserHandler) Users(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.create(w, r)
	case http.MethodGet:
		h.list(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// UserSubroutes handles /users/{id}, DELETE /users/{id} and
// GET /users/{id}/loans.
func (h *UserHandler) UserSubroutes(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/users/")
	switch {
	case strings.HasSuffix(rest, "/loans") && r.Method == http.MethodGet:
		h.loans(w, r, strings.TrimSuffix(rest, "/loans"))
	case rest != "" && !strings.Contains(rest, "/") && r.Method == http.MethodGet:
		h.get(w, r, rest)
	case rest != "" && !strings.Contains(rest, "/") && r.Method == http.MethodDelete:
		h.delete(w, r, rest)
	default:
		http.NotFound(w, r)
	}
}

func (h *UserHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createUserReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	req.Name = strings.TrimSpace(req.Name)

	if details := ValidateStruct(req); len(details) > 0 {
		JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)
		return
	}

	user, err := h.users.CreateUser(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, usecase.ErrAlreadyExists) {
			JSONError(w, http.StatusConflict, "ALREADY_EXISTS", "Email already exists", nil)
			return
		}
		JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	JSONSuccessCreated(w, user)
}

func (h *UserHandler) list(w http.ResponseWriter, r *http.Request) {
	p := parsePageParams(r)
	users, total, err := h.users.ListUsers(r.Context(), p.Limit(), p.Offset())
	if err != nil {
		JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	if users == nil {
		users = []entity.User{}
	}
	writePage(w, p, users, total)
}

func (h *UserHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	user, err := h.users.GetUser(r.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			JSONError(w, http.StatusNotFound, "NOT_FOUND", "User not found", nil)
			return
		}
		JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	JSONSuccess(w, user)
}

func (h *UserHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.users.DeleteUser(r.Context(), id); err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			JSONError(w, http.StatusNotFound, "NOT_FOUND", "User not found", nil)
			return
		}
		JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	JSONSuccessNoContent(w)
}

// loans lists the loan history of one user, checking that the user exists
// first so an unknown ID is a 404 rather than an empty page.
func (h *UserHandler) loans(w http.ResponseWriter, r *http.Request, userID string) {
	if _, err := h.users.GetUser(r.Context(), userID); err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			JSONError(w, http.StatusNotFound, "NOT_FOUND", "User not found", nil)
			return
		}
		JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

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
