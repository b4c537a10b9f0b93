package request

import (
	"net/url"

	"cinelog/pkg/utils"
)

const (
	defaultPerPage = 10
	maxPerPage     = 100
)

// PaginatedRequest is built from the page and per_page query parameters.
type PaginatedRequest struct {
	Page    int `json:"page" validate:"min=1"`
	PerPage int `json:"per_page" validate:"min=1,max=100"`
}

// PageFromQuery reads page and per_page from a query string. ok is false when
// neither is present, and the caller should list everything. A value that is
// not a positive integer falls back to page 1 or the default page size.
func PageFromQuery(query url.Values) (req *PaginatedRequest, ok bool) {
	if query.Get("page") == "" && query.Get("per_page") == "" {
		return nil, false
	}
	return &PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), defaultPerPage),
	}, true
}

// Offset skips the rows of earlier pages, sized by Limit.
func (p PaginatedRequest) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit()
}

// Limit clamps PerPage to 1..100, defaulting to 10.
func (p PaginatedRequest) Limit() int {
	switch {
	case p.PerPage < 1:
		return defaultPerPage
	case p.PerPage > maxPerPage:
		return maxPerPage
	}
	return p.PerPage
}
