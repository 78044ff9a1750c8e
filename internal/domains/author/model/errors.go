package model

import (
	"net/http"

	"quotes-api/internal/shared/apperror"
)

const (
	CodeAuthorNotFound      = "AUTHOR_NOT_FOUND"
	CodeAuthorNotDeleted    = "AUTHOR_NOT_DELETED"
	CodeDuplicateAuthorName = "DUPLICATE_AUTHOR_NAME"
	CodeInvalidSort         = "INVALID_SORT"
)

var (
	ErrAuthorNotFound      = apperror.New(http.StatusNotFound, CodeAuthorNotFound, "author not found")
	ErrAuthorNotDeleted    = apperror.New(http.StatusNotFound, CodeAuthorNotDeleted, "author is not deleted")
	ErrDuplicateAuthorName = apperror.New(http.StatusConflict, CodeDuplicateAuthorName, "author with this name already exists")
	ErrInvalidSort         = apperror.New(http.StatusBadRequest, CodeInvalidSort, "invalid sort parameters")
)

// NotFound returns ErrAuthorNotFound with the id in its message.
func NotFound(id int64) *apperror.Error {
	return ErrAuthorNotFound.WithMessage("Author with id %d not found", id)
}
