package service

import (
	"context"

	"quotes-api/internal/domains/author/model"
)

type ServiceInterface interface {
	List(ctx context.Context, filter model.AuthorFilter) ([]*model.Author, error)
	GetByID(ctx context.Context, id int64) (*model.Author, error)
	Create(ctx context.Context, req *model.CreateAuthorRequest) (*model.Author, error)
	Update(ctx context.Context, id int64, req *model.UpdateAuthorRequest) (*model.Author, error)
	// Delete soft-deletes the author; permanent removes it with its quotes.
	Delete(ctx context.Context, id int64, permanent bool) error
	Restore(ctx context.Context, id int64) (*model.Author, error)
}
