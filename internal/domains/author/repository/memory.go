package repository

import (
	"context"
	"sort"

	"quotes-api/internal/domains/author/model"
	"quotes-api/internal/infrastructure/database"
)

type memoryRepository struct {
	db *database.MemoryDB
}

// NewMemoryRepository keeps authors in the shared in-process tables.
func NewMemoryRepository(db *database.MemoryDB) RepositoryInterface {
	return &memoryRepository{db: db}
}

func (r *memoryRepository) List(ctx context.Context, filter model.AuthorFilter) ([]*model.Author, error) {
	var authors []*model.Author
	err := r.db.View(ctx, func(t *database.MemoryTables) error {
		for i := range t.Authors {
			if t.Authors[i].IsDeleted == filter.Deleted {
				authors = append(authors, fromRow(t.Authors[i]))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(authors, lessAuthor(authors, filter))
	if authors == nil {
		authors = []*model.Author{}
	}
	return authors, nil
}

func (r *memoryRepository) GetByID(ctx context.Context, id int64) (*model.Author, error) {
	var a *model.Author
	err := r.db.View(ctx, func(t *database.MemoryTables) error {
		row, ok := t.VisibleAuthor(id)
		if !ok {
			return model.NotFound(id)
		}
		a = fromRow(row)
		return nil
	})
	return a, err
}

func (r *memoryRepository) GetAnyByID(ctx context.Context, id int64) (*model.Author, error) {
	var a *model.Author
	err := r.db.View(ctx, func(t *database.MemoryTables) error {
		i := t.AuthorIndex(id)
		if i < 0 {
			return model.NotFound(id)
		}
		a = fromRow(t.Authors[i])
		return nil
	})
	return a, err
}

func (r *memoryRepository) GetByName(ctx context.Context, name string) (*model.Author, error) {
	var a *model.Author
	err := r.db.View(ctx, func(t *database.MemoryTables) error {
		for i := range t.Authors {
			if t.Authors[i].Name == name {
				a = fromRow(t.Authors[i])
				return nil
			}
		}
		return model.ErrAuthorNotFound
	})
	return a, err
}

func (r *memoryRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.View(ctx, func(t *database.MemoryTables) error {
		for i := range t.Authors {
			if !t.Authors[i].IsDeleted {
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r *memoryRepository) Create(ctx context.Context, a *model.Author) (*model.Author, error) {
	var created *model.Author
	err := r.db.Update(ctx, func(t *database.MemoryTables) error {
		if nameTaken(t, a.Name, 0) {
			return model.ErrDuplicateAuthorName
		}
		row := toRow(*a)
		row.ID = t.NextAuthorID()
		row.IsDeleted = false
		t.Authors = append(t.Authors, row)
		created = fromRow(row)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *memoryRepository) Update(ctx context.Context, id int64, patch model.AuthorPatch) (*model.Author, error) {
	var updated *model.Author
	err := r.db.Update(ctx, func(t *database.MemoryTables) error {
		i := t.AuthorIndex(id)
		if i < 0 || t.Authors[i].IsDeleted {
			return model.NotFound(id)
		}
		next := patch.Apply(*fromRow(t.Authors[i]))
		if nameTaken(t, next.Name, id) {
			return model.ErrDuplicateAuthorName
		}
		t.Authors[i] = toRow(next)
		updated = &next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *memoryRepository) SoftDelete(ctx context.Context, id int64) error {
	return r.db.Update(ctx, func(t *database.MemoryTables) error {
		i := t.AuthorIndex(id)
		if i < 0 || t.Authors[i].IsDeleted {
			return model.NotFound(id)
		}
		t.Authors[i].IsDeleted = true
		return nil
	})
}

func (r *memoryRepository) Restore(ctx context.Context, id int64) (*model.Author, error) {
	var restored *model.Author
	err := r.db.Update(ctx, func(t *database.MemoryTables) error {
		i := t.AuthorIndex(id)
		if i < 0 {
			return model.NotFound(id)
		}
		if !t.Authors[i].IsDeleted {
			return model.ErrAuthorNotDeleted.WithMessage("Author with id %d is not deleted", id)
		}
		t.Authors[i].IsDeleted = false
		restored = fromRow(t.Authors[i])
		return nil
	})
	if err != nil {
		return nil, err
	}
	return restored, nil
}

func (r *memoryRepository) Purge(ctx context.Context, id int64) error {
	return r.db.Update(ctx, func(t *database.MemoryTables) error {
		i := t.AuthorIndex(id)
		if i < 0 {
			return model.NotFound(id)
		}
		t.Authors = append(t.Authors[:i], t.Authors[i+1:]...)

		kept := t.Quotes[:0]
		for _, q := range t.Quotes {
			if q.AuthorID != id {
				kept = append(kept, q)
			}
		}
		t.Quotes = kept
		return nil
	})
}

func nameTaken(t *database.MemoryTables, name string, exceptID int64) bool {
	for i := range t.Authors {
		if t.Authors[i].Name == name && t.Authors[i].ID != exceptID {
			return true
		}
	}
	return false
}

// lessAuthor mirrors orderClause for the memory backend.
func lessAuthor(authors []*model.Author, filter model.AuthorFilter) func(i, j int) bool {
	desc := filter.Desc()
	return func(i, j int) bool {
		a, b := authors[i], authors[j]
		switch filter.SortBy {
		case model.SortByName:
			if a.Name != b.Name {
				return (a.Name < b.Name) != desc
			}
			return a.ID < b.ID
		case model.SortBySurname:
			if (a.Surname == nil) != (b.Surname == nil) {
				return b.Surname == nil
			}
			if a.Surname != nil && *a.Surname != *b.Surname {
				return (*a.Surname < *b.Surname) != desc
			}
			return a.ID < b.ID
		default:
			return (a.ID < b.ID) != desc
		}
	}
}

func fromRow(row database.AuthorRow) *model.Author {
	return &model.Author{
		ID:        row.ID,
		Name:      row.Name,
		Surname:   row.Surname,
		IsDeleted: row.IsDeleted,
	}
}

func toRow(a model.Author) database.AuthorRow {
	return database.AuthorRow{
		ID:         a.ID,
		Name:       a.Name,
		Surname:    a.Surname,
		SearchName: a.SearchName(),
		IsDeleted:  a.IsDeleted,
	}
}
