package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"quotes-api/internal/domains/author/model"
	"quotes-api/internal/domains/author/repository"
	"quotes-api/internal/shared/apperror"
)

// authorService implements ServiceInterface
type authorService struct {
	repo repository.RepositoryInterface
}

func NewAuthorService(repo repository.RepositoryInterface) ServiceInterface {
	return &authorService{repo: repo}
}

func (s *authorService) List(ctx context.Context, filter model.AuthorFilter) ([]*model.Author, error) {
	return s.repo.List(ctx, filter)
}

func (s *authorService) GetByID(ctx context.Context, id int64) (*model.Author, error) {
	if id <= 0 {
		return nil, model.NotFound(id)
	}
	return s.repo.GetByID(ctx, id)
}

func (s *authorService) Create(ctx context.Context, req *model.CreateAuthorRequest) (*model.Author, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperror.Validation(err)
	}

	created, err := s.repo.Create(ctx, req.ToAuthor())
	if err != nil {
		return nil, err
	}

	log.Info().Int64("author_id", created.ID).Str("name", created.Name).Msg("author created")
	return created, nil
}

// Update applies only the fields present in req.
func (s *authorService) Update(ctx context.Context, id int64, req *model.UpdateAuthorRequest) (*model.Author, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperror.Validation(err)
	}
	return s.repo.Update(ctx, id, req.ToPatch())
}

func (s *authorService) Delete(ctx context.Context, id int64, permanent bool) error {
	if permanent {
		if err := s.repo.Purge(ctx, id); err != nil {
			return err
		}
		log.Info().Int64("author_id", id).Msg("author purged with quotes")
		return nil
	}
	return s.repo.SoftDelete(ctx, id)
}

// Restore tells a purged author (NotFound) from a live one (NotDeleted)
// before touching storage. The repository repeats the check atomically.
func (s *authorService) Restore(ctx context.Context, id int64) (*model.Author, error) {
	current, err := s.repo.GetAnyByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !current.IsDeleted {
		return nil, model.ErrAuthorNotDeleted.WithMessage("Author with id %d is not deleted", id)
	}

	restored, err := s.repo.Restore(ctx, id)
	if err != nil {
		return nil, err
	}
	log.Info().Int64("author_id", id).Msg("author restored")
	return restored, nil
}
