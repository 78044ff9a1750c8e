// Package seed loads a small sample of authors and quotes into empty storage.
package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	authormodel "quotes-api/internal/domains/author/model"
	authorrepo "quotes-api/internal/domains/author/repository"
	quotemodel "quotes-api/internal/domains/quote/model"
	quoterepo "quotes-api/internal/domains/quote/repository"
)

type sampleQuote struct {
	Name    string
	Surname string
	Text    string
	Rating  int
}

var samples = []sampleQuote{
	{
		Name:    "Rick",
		Surname: "Cook",
		Text: "Программирование сегодня — это гонка разработчиков программ, стремящихся писать программы " +
			"с большей и лучшей идиотоустойчивостью, и вселенной, которая пытается создать больше " +
			"отборных идиотов. Пока вселенная побеждает.",
		Rating: 5,
	},
	{
		Name:    "Waldi",
		Surname: "Ravens",
		Text: "Программирование на С похоже на быстрые танцы на только что отполированном полу " +
			"людей с острыми бритвами в руках.",
		Rating: 4,
	},
	{
		Name:   "Mosher’s Law",
		Text:   "Не волнуйтесь, если что-то не работает. Если бы всё работало, вас бы уволили.",
		Rating: 3,
	},
	{
		Name:    "Yoggi",
		Surname: "Berra",
		Text:    "В теории, теория и практика неразделимы. На практике это не так.",
		Rating:  4,
	},
	{
		Name:   "IM",
		Text:   "И это работает? удивительно",
		Rating: 1,
	},
}

// Run inserts the sample data when storage holds no authors, live or
// soft-deleted, and no quotes. It reports whether anything was inserted.
func Run(ctx context.Context, authors authorrepo.RepositoryInterface, quotes quoterepo.RepositoryInterface) (bool, error) {
	nAuthors, err := authors.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("count authors: %w", err)
	}
	deleted, err := authors.List(ctx, authormodel.AuthorFilter{Deleted: true, SortBy: authormodel.SortByID})
	if err != nil {
		return false, fmt.Errorf("list deleted authors: %w", err)
	}
	nQuotes, err := quotes.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("count quotes: %w", err)
	}
	if nAuthors > 0 || len(deleted) > 0 || nQuotes > 0 {
		log.Info().
			Int64("authors", nAuthors).
			Int("deleted_authors", len(deleted)).
			Int64("quotes", nQuotes).
			Msg("[SEED] Storage not empty, skipping")
		return false, nil
	}

	for _, s := range samples {
		author, err := ensureAuthor(ctx, authors, s.Name, s.Surname)
		if err != nil {
			return false, err
		}
		q := &quotemodel.Quote{AuthorID: author.ID, Text: s.Text, Rating: s.Rating}
		if _, err := quotes.Create(ctx, q); err != nil {
			return false, fmt.Errorf("seed quote for %s: %w", author.FullName(), err)
		}
	}

	log.Info().Int("quotes", len(samples)).Msg("[SEED] Sample data inserted")
	return true, nil
}

func ensureAuthor(ctx context.Context, repo authorrepo.RepositoryInterface, name, surname string) (*authormodel.Author, error) {
	existing, err := repo.GetByName(ctx, name)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, authormodel.ErrAuthorNotFound) {
		return nil, fmt.Errorf("look up author %s: %w", name, err)
	}

	a := &authormodel.Author{Name: name}
	if surname != "" {
		a.Surname = &surname
	}
	created, err := repo.Create(ctx, a)
	if err != nil {
		return nil, fmt.Errorf("seed author %s: %w", name, err)
	}
	return created, nil
}
