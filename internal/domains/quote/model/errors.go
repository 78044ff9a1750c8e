package model

import (
	"net/http"

	"quotes-api/internal/shared/apperror"
)

const (
	CodeQuoteNotFound = "QUOTE_NOT_FOUND"
	CodeInvalidAuthor = "INVALID_AUTHOR"
	CodeInvalidSort   = "INVALID_SORT"
)

var (
	ErrQuoteNotFound       = apperror.New(http.StatusNotFound, CodeQuoteNotFound, "quote not found")
	ErrNoQuotes            = apperror.New(http.StatusNotFound, CodeQuoteNotFound, "no quotes available")
	ErrInvalidAuthor       = apperror.New(http.StatusBadRequest, CodeInvalidAuthor, "author does not exist")
	ErrInvalidSort         = apperror.New(http.StatusBadRequest, CodeInvalidSort, "invalid sort parameters")
	ErrMissingAuthorFilter = apperror.InvalidRequest("query parameter 'author' is required")
)

// NotFound returns ErrQuoteNotFound with the id in its message.
func NotFound(id int64) *apperror.Error {
	return ErrQuoteNotFound.WithMessage("Quote with id %d not found", id)
}

// InvalidAuthor returns ErrInvalidAuthor naming the missing author id.
func InvalidAuthor(authorID int64) *apperror.Error {
	return ErrInvalidAuthor.WithMessage("Author with id %d does not exist", authorID)
}
