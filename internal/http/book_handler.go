package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"libraryapi/internal/entity"
	"libraryapi/internal/usecase"
)

type BookHandler struct {
	books *usecase.BookUsecase
}

func NewBookHandler(books *usecase.BookUsecase) *BookHandler {
	return &BookHandler{books: books}
}

type createBookReq struct {
	Name        string `json:"name" validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
	Pages       int    `json:"pages" validate:"required,gt=0"`
	AuthorID    string `json:"author_id" validate:"required"`
}

// Books handles the /books collection: POST creates a book, GET lists all.
func (h *BookHandler) Books(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.create(w, r)
	case http.MethodGet:
		h.list(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// BookSubroutes handles /books/{id} and /books/{id}/availability.
func (h *BookHandler) BookSubroutes(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/books/")
	switch {
	case strings.HasSuffix(rest, "/availability") && r.Method == http.MethodGet:
		h.availability(w, r, strings.TrimSuffix(rest, "/availability"))
	case rest != "" && !strings.Contains(rest, "/") && r.Method == http.MethodGet:
		h.get(w, r, rest)
	case rest != "" && !strings.Contains(rest, "/") && r.Method == http.MethodDelete:
		h.delete(w, r, rest)
	default:
		http.NotFound(w, r)
	}
}

func (h *BookHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createBookReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	req.Name = strings.TrimSpace(req.Name)

	if details := ValidateStruct(req); len(details) > 0 {
		JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)
		return
	}

	book := entity.Book{
		Name:        req.Name,
		Description: req.Description,
		Pages:       req.Pages,
		AuthorID:    req.AuthorID,
	}
	if err := h.books.CreateBook(r.Context(), &book); err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			JSONError(w, http.StatusNotFound, "NOT_FOUND", "Author not found", nil)
			return
		}
		JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	JSONSuccessCreated(w, book)
}

func (h *BookHandler) list(w http.ResponseWriter, r *http.Request) {
	p := parsePageParams(r)
	books, total, err := h.books.ListBooks(r.Context(), p.Limit(), p.Offset())
	if err != nil {
		JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	if books == nil {
		books = []entity.Book{}
	}
	writePage(w, p, books, total)
}

func (h *BookHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	book, err := h.books.GetBook(r.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			JSONError(w, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
			return
		}
		JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	JSONSuccess(w, book)
}

func (h *BookHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.books.DeleteBook(r.Context(), id); err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			JSONError(w, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
			return
		}
		JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	JSONSuccessNoContent(w)
}

func (h *BookHandler) availability(w http.ResponseWriter, r *http.Request, id string) {
	info, err := h.books.CheckAvailability(r.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			JSONError(w, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
			return
		}
		JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	JSONSuccess(w, info)
}
