package service

import (
	"context"

	"github.com/xuri/excelize/v2"

	authormodel "quotes-api/internal/domains/author/model"
	"quotes-api/internal/domains/quote/model"
)

// AuthorLookup resolves visible authors; the author service satisfies it.
type AuthorLookup interface {
	GetByID(ctx context.Context, id int64) (*authormodel.Author, error)
}

type ServiceInterface interface {
	List(ctx context.Context, filter model.QuoteFilter) ([]*model.Quote, error)
	// ListByAuthor returns the author's quotes, or the author's NotFound.
	ListByAuthor(ctx context.Context, authorID int64, filter model.QuoteFilter) ([]*model.Quote, error)
	// FilterByAuthorName matches term case-insensitively against author full names.
	FilterByAuthorName(ctx context.Context, term string, filter model.QuoteFilter) ([]*model.Quote, error)
	GetByID(ctx context.Context, id int64) (*model.Quote, error)
	Count(ctx context.Context) (int64, error)
	Random(ctx context.Context) (*model.Quote, error)

	Create(ctx context.Context, req *model.CreateQuoteRequest) (*model.Quote, error)
	CreateForAuthor(ctx context.Context, authorID int64, req *model.CreateAuthorQuoteRequest) (*model.Quote, error)
	Update(ctx context.Context, id int64, req *model.UpdateQuoteRequest) (*model.Quote, error)
	Delete(ctx context.Context, id int64) error
	IncreaseRating(ctx context.Context, id int64) (*model.Quote, error)
	DecreaseRating(ctx context.Context, id int64) (*model.Quote, error)

	ExportToExcel(ctx context.Context, filter model.QuoteFilter) (*excelize.File, error)
}
