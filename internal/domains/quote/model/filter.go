package model

import (
	"strings"

	"quotes-api/internal/shared/utils"
)

const (
	SortByID      = "id"
	SortByRating  = "rating"
	SortByCreated = "created"

	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// QuoteFilter selects and orders visible quotes.
// AuthorSearch is already case-folded; it matches any part of the
// author's full name.
type QuoteFilter struct {
	AuthorID     *int64
	AuthorSearch string
	SortBy       string
	Order        string
}

func NewQuoteFilter(sortBy, order string) (QuoteFilter, error) {
	f := QuoteFilter{
		SortBy: strings.ToLower(strings.TrimSpace(sortBy)),
		Order:  strings.ToLower(strings.TrimSpace(order)),
	}
	if f.SortBy == "" {
		f.SortBy = SortByID
	}
	if f.Order == "" {
		f.Order = OrderAsc
	}

	switch f.SortBy {
	case SortByID, SortByRating, SortByCreated:
	default:
		return QuoteFilter{}, ErrInvalidSort.WithMessage("sort_by must be one of id, rating, created")
	}
	if f.Order != OrderAsc && f.Order != OrderDesc {
		return QuoteFilter{}, ErrInvalidSort.WithMessage("order must be asc or desc")
	}
	return f, nil
}

// ByAuthor returns a copy restricted to one author.
func (f QuoteFilter) ByAuthor(authorID int64) QuoteFilter {
	f.AuthorID = &authorID
	return f
}

// SearchAuthor returns a copy restricted to authors whose full name
// contains term, ignoring case.
func (f QuoteFilter) SearchAuthor(term string) QuoteFilter {
	f.AuthorSearch = utils.FoldCase(strings.TrimSpace(term))
	return f
}

func (f QuoteFilter) Desc() bool {
	return f.Order == OrderDesc
}
