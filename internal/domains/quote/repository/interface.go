package repository

import (
	"context"

	"quotes-api/internal/domains/quote/model"
	"quotes-api/internal/shared/utils"
)

// RepositoryInterface is the quote data-access contract. Every read and
// write only sees quotes whose author exists and is not soft-deleted.
type RepositoryInterface interface {
	List(ctx context.Context, filter model.QuoteFilter) ([]*model.Quote, error)
	GetByID(ctx context.Context, id int64) (*model.Quote, error)
	Count(ctx context.Context) (int64, error)
	// Random returns model.ErrNoQuotes when nothing is visible.
	Random(ctx context.Context) (*model.Quote, error)

	// Create and Update fail with model.ErrInvalidAuthor when the referenced
	// author is missing or soft-deleted.
	Create(ctx context.Context, q *model.Quote) (*model.Quote, error)
	Update(ctx context.Context, id int64, patch model.QuotePatch) (*model.Quote, error)
	Delete(ctx context.Context, id int64) error
	// AdjustRating adds delta and saturates at the rating bounds.
	AdjustRating(ctx context.Context, id int64, delta int) (*model.Quote, error)
}

var orderColumns = map[string]string{
	model.SortByID:      "q.id",
	model.SortByRating:  "q.rating",
	model.SortByCreated: "q.created_at",
}

func orderClause(filter model.QuoteFilter) string {
	col, ok := orderColumns[filter.SortBy]
	if !ok {
		col = orderColumns[model.SortByID]
	}
	dir := utils.SortOrder(filter.Order)
	if col == "q.id" {
		return col + " " + dir
	}
	return col + " " + dir + ", q.id ASC"
}
