package http

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateStruct_CreateLoan(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		req := createLoanReq{BookID: "book-id-456", UserID: "user-id-789"}
		assert.Empty(t, ValidateStruct(req))
	})

	t.Run("missing both references", func(t *testing.T) {
		details := ValidateStruct(createLoanReq{})
		assert.Len(t, details, 2)
		assert.Equal(t, "bookID", details[0].Field)
		assert.Contains(t, details[0].Message, "required")
	})
}

func TestValidateStruct_CreateBook(t *testing.T) {
	t.Run("pages must be positive", func(t *testing.T) {
		req := createBookReq{Name: "A Book", Pages: 0, AuthorID: "author-id-123"}
		details := ValidateStruct(req)
		assert.Len(t, details, 1)
		assert.Equal(t, "pages", details[0].Field)
	})

	t.Run("valid", func(t *testing.T) {
		req := createBookReq{Name: "A Book", Pages: 96, AuthorID: "author-id-123"}
		assert.Empty(t, ValidateStruct(req))
	})
}

func TestValidateStruct_CreateUser(t *testing.T) {
	tests := []struct {
		name     string
		req      createUserReq
		badField string
	}{
		{"invalid email", createUserReq{Name: "Reader", Email: "nope", Password: "Password123"}, "email"},
		{"password too short", createUserReq{Name: "Reader", Email: "r@example.com", Password: "Pw1"}, "password"},
		{"password without digit", createUserReq{Name: "Reader", Email: "r@example.com", Password: "Passwords"}, "password"},
		{"password without uppercase", createUserReq{Name: "Reader", Email: "r@example.com", Password: "password123"}, "password"},
		{"name too short", createUserReq{Name: "R", Email: "r@example.com", Password: "Password123"}, "name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			details := ValidateStruct(tt.req)
			if assert.Len(t, details, 1) {
				assert.Equal(t, tt.badField, details[0].Field)
			}
		})
	}
}
