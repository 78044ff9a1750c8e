package repository

import (
	"context"
	"math/rand"
	"sort"
	"strings"
	"time"

	"quotes-api/internal/domains/quote/model"
	"quotes-api/internal/infrastructure/database"
	"quotes-api/internal/shared/utils"
)

type memoryRepository struct {
	db  *database.MemoryDB
	now func() time.Time
}

// NewMemoryRepository keeps quotes in the shared in-process tables.
func NewMemoryRepository(db *database.MemoryDB) RepositoryInterface {
	return &memoryRepository{db: db, now: time.Now}
}

func (r *memoryRepository) List(ctx context.Context, filter model.QuoteFilter) ([]*model.Quote, error) {
	quotes := []*model.Quote{}
	err := r.db.View(ctx, func(t *database.MemoryTables) error {
		for _, row := range t.Quotes {
			if filter.AuthorID != nil && row.AuthorID != *filter.AuthorID {
				continue
			}
			author, ok := t.VisibleAuthor(row.AuthorID)
			if !ok {
				continue
			}
			if filter.AuthorSearch != "" && !strings.Contains(author.SearchName, filter.AuthorSearch) {
				continue
			}
			quotes = append(quotes, fromRow(row, author))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(quotes, lessQuote(quotes, filter))
	return quotes, nil
}

func (r *memoryRepository) GetByID(ctx context.Context, id int64) (*model.Quote, error) {
	var q *model.Quote
	err := r.db.View(ctx, func(t *database.MemoryTables) error {
		var err error
		q, err = visibleQuote(t, id)
		return err
	})
	return q, err
}

func (r *memoryRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.View(ctx, func(t *database.MemoryTables) error {
		for _, row := range t.Quotes {
			if _, ok := t.VisibleAuthor(row.AuthorID); ok {
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r *memoryRepository) Random(ctx context.Context) (*model.Quote, error) {
	visible, err := r.List(ctx, model.QuoteFilter{})
	if err != nil {
		return nil, err
	}
	if len(visible) == 0 {
		return nil, model.ErrNoQuotes
	}
	return visible[rand.Intn(len(visible))], nil
}

func (r *memoryRepository) Create(ctx context.Context, q *model.Quote) (*model.Quote, error) {
	var created *model.Quote
	err := r.db.Update(ctx, func(t *database.MemoryTables) error {
		author, ok := t.VisibleAuthor(q.AuthorID)
		if !ok {
			return model.InvalidAuthor(q.AuthorID)
		}
		row := database.QuoteRow{
			ID:        t.NextQuoteID(),
			AuthorID:  q.AuthorID,
			Text:      q.Text,
			Rating:    model.ClampRating(q.Rating),
			CreatedAt: r.now().UTC(),
		}
		t.Quotes = append(t.Quotes, row)
		created = fromRow(row, author)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *memoryRepository) Update(ctx context.Context, id int64, patch model.QuotePatch) (*model.Quote, error) {
	var updated *model.Quote
	err := r.db.Update(ctx, func(t *database.MemoryTables) error {
		current, err := visibleQuote(t, id)
		if err != nil {
			return err
		}
		next := patch.Apply(*current)

		author, ok := t.VisibleAuthor(next.AuthorID)
		if !ok {
			return model.InvalidAuthor(next.AuthorID)
		}

		i := t.QuoteIndex(id)
		t.Quotes[i].AuthorID = next.AuthorID
		t.Quotes[i].Text = next.Text
		t.Quotes[i].Rating = next.Rating
		updated = fromRow(t.Quotes[i], author)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *memoryRepository) Delete(ctx context.Context, id int64) error {
	return r.db.Update(ctx, func(t *database.MemoryTables) error {
		if _, err := visibleQuote(t, id); err != nil {
			return err
		}
		i := t.QuoteIndex(id)
		t.Quotes = append(t.Quotes[:i], t.Quotes[i+1:]...)
		return nil
	})
}

func (r *memoryRepository) AdjustRating(ctx context.Context, id int64, delta int) (*model.Quote, error) {
	var adjusted *model.Quote
	err := r.db.Update(ctx, func(t *database.MemoryTables) error {
		current, err := visibleQuote(t, id)
		if err != nil {
			return err
		}
		i := t.QuoteIndex(id)
		t.Quotes[i].Rating = model.ClampRating(t.Quotes[i].Rating + delta)
		current.Rating = t.Quotes[i].Rating
		adjusted = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return adjusted, nil
}

func visibleQuote(t *database.MemoryTables, id int64) (*model.Quote, error) {
	i := t.QuoteIndex(id)
	if i < 0 {
		return nil, model.NotFound(id)
	}
	author, ok := t.VisibleAuthor(t.Quotes[i].AuthorID)
	if !ok {
		return nil, model.NotFound(id)
	}
	return fromRow(t.Quotes[i], author), nil
}

// lessQuote mirrors orderClause for the memory backend.
func lessQuote(quotes []*model.Quote, filter model.QuoteFilter) func(i, j int) bool {
	desc := filter.Desc()
	return func(i, j int) bool {
		a, b := quotes[i], quotes[j]
		switch filter.SortBy {
		case model.SortByRating:
			if a.Rating != b.Rating {
				return (a.Rating < b.Rating) != desc
			}
		case model.SortByCreated:
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.Before(b.CreatedAt) != desc
			}
		default:
			return (a.ID < b.ID) != desc
		}
		return a.ID < b.ID
	}
}

func fromRow(row database.QuoteRow, author database.AuthorRow) *model.Quote {
	return &model.Quote{
		ID:         row.ID,
		AuthorID:   row.AuthorID,
		AuthorName: utils.FullName(author.Name, author.Surname),
		Text:       row.Text,
		Rating:     row.Rating,
		CreatedAt:  row.CreatedAt,
	}
}
