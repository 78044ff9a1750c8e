package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"quotes-api/internal/domains/quote/model"
	"quotes-api/internal/domains/quote/repository"
	"quotes-api/internal/shared/apperror"
)

type quoteService struct {
	repo    repository.RepositoryInterface
	authors AuthorLookup
}

func NewQuoteService(repo repository.RepositoryInterface, authors AuthorLookup) ServiceInterface {
	return &quoteService{repo: repo, authors: authors}
}

func (s *quoteService) List(ctx context.Context, filter model.QuoteFilter) ([]*model.Quote, error) {
	return s.repo.List(ctx, filter)
}

func (s *quoteService) ListByAuthor(ctx context.Context, authorID int64, filter model.QuoteFilter) ([]*model.Quote, error) {
	if _, err := s.authors.GetByID(ctx, authorID); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, filter.ByAuthor(authorID))
}

func (s *quoteService) FilterByAuthorName(ctx context.Context, term string, filter model.QuoteFilter) ([]*model.Quote, error) {
	if strings.TrimSpace(term) == "" {
		return nil, model.ErrMissingAuthorFilter
	}
	return s.repo.List(ctx, filter.SearchAuthor(term))
}

func (s *quoteService) GetByID(ctx context.Context, id int64) (*model.Quote, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *quoteService) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func (s *quoteService) Random(ctx context.Context) (*model.Quote, error) {
	return s.repo.Random(ctx)
}

func (s *quoteService) Create(ctx context.Context, req *model.CreateQuoteRequest) (*model.Quote, error) {
	if err := req.Validate(); err != nil {
		return nil, apperror.Validation(err)
	}
	return s.create(ctx, req.ToQuote())
}

// CreateForAuthor reports a missing path author as the author's NotFound,
// unlike Create, which treats a bad author_id in the body as INVALID_AUTHOR.
func (s *quoteService) CreateForAuthor(ctx context.Context, authorID int64, req *model.CreateAuthorQuoteRequest) (*model.Quote, error) {
	if _, err := s.authors.GetByID(ctx, authorID); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, apperror.Validation(err)
	}
	return s.create(ctx, req.ToQuote(authorID))
}

func (s *quoteService) create(ctx context.Context, q *model.Quote) (*model.Quote, error) {
	created, err := s.repo.Create(ctx, q)
	if err != nil {
		return nil, err
	}
	log.Info().
		Int64("quote_id", created.ID).
		Int64("author_id", created.AuthorID).
		Int("rating", created.Rating).
		Msg("quote created")
	return created, nil
}

func (s *quoteService) Update(ctx context.Context, id int64, req *model.UpdateQuoteRequest) (*model.Quote, error) {
	if err := req.Validate(); err != nil {
		return nil, apperror.Validation(err)
	}
	return s.repo.Update(ctx, id, req.ToPatch())
}

func (s *quoteService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *quoteService) IncreaseRating(ctx context.Context, id int64) (*model.Quote, error) {
	return s.repo.AdjustRating(ctx, id, 1)
}

func (s *quoteService) DecreaseRating(ctx context.Context, id int64) (*model.Quote, error) {
	return s.repo.AdjustRating(ctx, id, -1)
}
