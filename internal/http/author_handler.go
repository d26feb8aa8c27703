package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"libraryapi/internal/entity"
	"libraryapi/internal/usecase"
)

type AuthorHandler struct {
	authors usecase.AuthorRepository
}

func NewAuthorHandler(authors usecase.AuthorRepository) *AuthorHandler {
	return &AuthorHandler{authors: authors}
}

type createAuthorReq struct {
	Name        string `json:"name" validate:"required,max=200"`
	Biography   string `json:"biography" validate:"max=5000"`
	Nationality string `json:"nationality" validate:"max=100"`
}

// Authors handles the /authors collection: POST creates, GET lists.
func (h *AuthorHandler) Authors(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.create(w, r)
	case http.MethodGet:
		h.list(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// AuthorByID handles GET /authors/{id}.
func (h *AuthorHandler) AuthorByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/authors/")
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}

	author, err := h.authors.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			JSONError(w, http.StatusNotFound, "NOT_FOUND", "Author not found", nil)
			return
		}
		JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	JSONSuccess(w, author)
}

func (h *AuthorHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createAuthorReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	req.Name = strings.TrimSpace(req.Name)

	if details := ValidateStruct(req); len(details) > 0 {
		JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)
		return
	}

	author := entity.Author{
		Name:        req.Name,
		Biography:   req.Biography,
		Nationality: req.Nationality,
	}
	if err := h.authors.Create(r.Context(), &author); err != nil {
		JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	JSONSuccessCreated(w, author)
}

func (h *AuthorHandler) list(w http.ResponseWriter, r *http.Request) {
	p := parsePageParams(r)
	authors, total, err := h.authors.List(r.Context(), p.Limit(), p.Offset())
	if err != nil {
		JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	if authors == nil {
		authors = []entity.Author{}
	}
	writePage(w, p, authors, total)
}
