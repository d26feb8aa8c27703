package http

import (
	"encoding/json"
	"net/http"
	"strconv"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// PageParams carries the normalized page/size query parameters.
type PageParams struct {
	Page int
	Size int
}

func (p PageParams) Limit() int  { return p.Size }
func (p PageParams) Offset() int { return (p.Page - 1) * p.Size }

// parsePageParams reads page and size from the query string, clamping
// page to >= 1 and size to 1..100 (default 10).
func parsePageParams(r *http.Request) PageParams {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	size, _ := strconv.Atoi(r.URL.Query().Get("size"))
	if size <= 0 || size > maxPageSize {
		size = defaultPageSize
	}
	return PageParams{Page: page, Size: size}
}

// PageResponse is the envelope every list endpoint returns. A page past the
// end yields an empty items list, never an error.
type PageResponse struct {
	Items interface{} `json:"items"`
	Total int         `json:"total"`
	Page  int         `json:"page"`
	Size  int         `json:"size"`
	Pages int         `json:"pages"`
}

func writePage(w http.ResponseWriter, p PageParams, items interface{}, total int) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(PageResponse{
		Items: items,
		Total: total,
		Page:  p.Page,
		Size:  p.Size,
		Pages: (total + p.Size - 1) / p.Size, // ceiling division
	})
}
