package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"time"

	"libraryapi/internal/entity"
)

// TestAuthor is a fixture author for testing.
var TestAuthor = entity.Author{
	ID:          "author-id-123",
	Name:        "Clarice Lispector",
	Biography:   "Brazilian novelist and short story writer.",
	Nationality: "Brazilian",
	CreatedAt:   time.Now(),
	UpdatedAt:   time.Now(),
}

// TestBook is a fixture book for testing.
var TestBook = entity.Book{
	ID:          "book-id-456",
	Name:        "The Hour of the Star",
	Description: "A novella about a poor typist in Rio.",
	Pages:       96,
	AuthorID:    TestAuthor.ID,
	CreatedAt:   time.Now(),
	UpdatedAt:   time.Now(),
}

// TestUser is a fixture member for testing.
var TestUser = entity.User{
	ID:        "user-id-789",
	Name:      "Test Reader",
	Email:     "reader@example.com",
	Password:  "hashedpassword",
	CreatedAt: time.Now(),
	UpdatedAt: time.Now(),
}

// NewActiveLoan builds an active loan for the fixture book and user with the
// given due date.
func NewActiveLoan(loanDate, dueDate time.Time) entity.Loan {
	return entity.Loan{
		ID:       "loan-id-001",
		BookID:   TestBook.ID,
		UserID:   TestUser.ID,
		LoanDate: loanDate,
		DueDate:  dueDate,
		Status:   entity.LoanStatusActive,
	}
}

// NewRequest creates a new HTTP request for testing.
func NewRequest(method, path string, body interface{}) *http.Request {
	var bodyBytes []byte
	if body != nil {
		bodyBytes, _ = json.Marshal(body)
	}
	var r *http.Request
	if bodyBytes != nil {
		r = httptest.NewRequest(method, path, bytes.NewReader(bodyBytes))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, path, nil)
	}
	return r
}

// RecordResponse holds a decoded HTTP response for testing.
type RecordResponse struct {
	Code   int
	Header http.Header
	Body   map[string]interface{}
}

// RecordHTTPResponse decodes the recorded response body as JSON.
func RecordHTTPResponse(w *httptest.ResponseRecorder) RecordResponse {
	result := w.Result()
	defer result.Body.Close()

	bodyBytes, _ := io.ReadAll(result.Body)

	var bodyMap map[string]interface{}
	if len(bodyBytes) > 0 {
		json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&bodyMap)
	}

	return RecordResponse{
		Code:   result.StatusCode,
		Header: result.Header,
		Body:   bodyMap,
	}
}
