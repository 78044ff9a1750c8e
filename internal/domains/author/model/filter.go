package model

import "strings"

const (
	SortByID      = "id"
	SortByName    = "name"
	SortBySurname = "surname"

	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// AuthorFilter selects and orders authors for List.
// Deleted switches to the soft-deleted view.
type AuthorFilter struct {
	Deleted bool
	SortBy  string
	Order   string
}

// NewAuthorFilter validates sort_by/order query values. Empty values fall
// back to id/asc.
func NewAuthorFilter(sortBy, order string, deleted bool) (AuthorFilter, error) {
	f := AuthorFilter{
		Deleted: deleted,
		SortBy:  strings.ToLower(strings.TrimSpace(sortBy)),
		Order:   strings.ToLower(strings.TrimSpace(order)),
	}
	if f.SortBy == "" {
		f.SortBy = SortByID
	}
	if f.Order == "" {
		f.Order = OrderAsc
	}

	switch f.SortBy {
	case SortByID, SortByName, SortBySurname:
	default:
		return AuthorFilter{}, ErrInvalidSort.WithMessage("sort_by must be one of id, name, surname")
	}
	if f.Order != OrderAsc && f.Order != OrderDesc {
		return AuthorFilter{}, ErrInvalidSort.WithMessage("order must be asc or desc")
	}
	return f, nil
}

func (f AuthorFilter) Desc() bool {
	return f.Order == OrderDesc
}
