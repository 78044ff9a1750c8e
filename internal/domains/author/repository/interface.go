package repository

import (
	"context"

	"quotes-api/internal/domains/author/model"
)

// RepositoryInterface is the author data-access contract shared by the
// memory, SQLite and PostgreSQL backends.
//
// Reads through GetByID, List (default view) and Count only see authors
// that are not soft-deleted.
type RepositoryInterface interface {
	List(ctx context.Context, filter model.AuthorFilter) ([]*model.Author, error)
	GetByID(ctx context.Context, id int64) (*model.Author, error)
	// GetAnyByID also returns soft-deleted authors.
	GetAnyByID(ctx context.Context, id int64) (*model.Author, error)
	GetByName(ctx context.Context, name string) (*model.Author, error)
	Count(ctx context.Context) (int64, error)

	Create(ctx context.Context, a *model.Author) (*model.Author, error)
	Update(ctx context.Context, id int64, patch model.AuthorPatch) (*model.Author, error)
	SoftDelete(ctx context.Context, id int64) error
	Restore(ctx context.Context, id int64) (*model.Author, error)
	// Purge removes the author and, by cascade, its quotes.
	Purge(ctx context.Context, id int64) error
}

// orderColumns maps sort keys to SQL ORDER BY clauses. Surname sorts keep
// NULLs last in both directions.
var orderColumns = map[string]struct{ asc, desc string }{
	model.SortByID:      {"id ASC", "id DESC"},
	model.SortByName:    {"name ASC, id ASC", "name DESC, id ASC"},
	model.SortBySurname: {"(surname IS NULL) ASC, surname ASC, id ASC", "(surname IS NULL) ASC, surname DESC, id ASC"},
}

func orderClause(filter model.AuthorFilter) string {
	cols, ok := orderColumns[filter.SortBy]
	if !ok {
		cols = orderColumns[model.SortByID]
	}
	if filter.Desc() {
		return cols.desc
	}
	return cols.asc
}
