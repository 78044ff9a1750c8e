package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authormodel "quotes-api/internal/domains/author/model"
	authorrepo "quotes-api/internal/domains/author/repository"
	"quotes-api/internal/domains/quote/model"
	"quotes-api/internal/infrastructure/database"
	"quotes-api/internal/infrastructure/database/dbtest"
)

type fixture struct {
	quotes  RepositoryInterface
	authors authorrepo.RepositoryInterface
}

type backend struct {
	name string
	open func(t *testing.T) fixture
}

func backends() []backend {
	return []backend{
		{"memory", func(t *testing.T) fixture {
			db := database.NewMemoryDB()
			return fixture{NewMemoryRepository(db), authorrepo.NewMemoryRepository(db)}
		}},
		{"sqlite", func(t *testing.T) fixture {
			db := dbtest.SQLite(t).DB
			return fixture{NewSQLiteRepository(db), authorrepo.NewSQLiteRepository(db)}
		}},
		{"postgres", func(t *testing.T) fixture {
			pool := dbtest.Postgres(t).Pool
			return fixture{NewPostgresRepository(pool), authorrepo.NewPostgresRepository(pool)}
		}},
	}
}

func TestQuoteRepositoryContract(t *testing.T) {
	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			runQuoteRepositoryTests(t, b.open)
		})
	}
}

func (f fixture) author(t *testing.T, name string, surname *string) *authormodel.Author {
	t.Helper()
	a, err := f.authors.Create(context.Background(), &authormodel.Author{Name: name, Surname: surname})
	require.NoError(t, err)
	return a
}

func (f fixture) quote(t *testing.T, authorID int64, text string, rating int) *model.Quote {
	t.Helper()
	q, err := f.quotes.Create(context.Background(), &model.Quote{AuthorID: authorID, Text: text, Rating: rating})
	require.NoError(t, err)
	return q
}

func runQuoteRepositoryTests(t *testing.T, open func(t *testing.T) fixture) {
	ctx := context.Background()

	t.Run("CreateClampsAndStamps", func(t *testing.T) {
		f := open(t)
		twain := f.author(t, "Mark", strPtr("Twain"))
		before := time.Now().Add(-time.Minute)

		high := f.quote(t, twain.ID, "high", 9)
		low := f.quote(t, twain.ID, "low", -3)
		assert.Equal(t, 5, high.Rating)
		assert.Equal(t, 1, low.Rating)
		assert.Equal(t, "Mark Twain", high.AuthorName)
		assert.True(t, high.CreatedAt.After(before))

		got, err := f.quotes.GetByID(ctx, high.ID)
		require.NoError(t, err)
		assert.Equal(t, 5, got.Rating)
		assert.Equal(t, high.CreatedAt.Format(model.DateLayout), got.CreatedAt.Format(model.DateLayout))
	})

	t.Run("CreateRequiresVisibleAuthor", func(t *testing.T) {
		f := open(t)
		_, err := f.quotes.Create(ctx, &model.Quote{AuthorID: 42, Text: "x", Rating: 1})
		assert.ErrorIs(t, err, model.ErrInvalidAuthor)

		a := f.author(t, "Gone", nil)
		require.NoError(t, f.authors.SoftDelete(ctx, a.ID))
		_, err = f.quotes.Create(ctx, &model.Quote{AuthorID: a.ID, Text: "x", Rating: 1})
		assert.ErrorIs(t, err, model.ErrInvalidAuthor)

		n, err := f.quotes.Count(ctx)
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("PartialUpdate", func(t *testing.T) {
		f := open(t)
		twain := f.author(t, "Mark", strPtr("Twain"))
		leo := f.author(t, "Лев", strPtr("Толстой"))
		q := f.quote(t, twain.ID, "original", 3)

		text := "edited"
		updated, err := f.quotes.Update(ctx, q.ID, model.QuotePatch{Text: &text})
		require.NoError(t, err)
		assert.Equal(t, "edited", updated.Text)
		assert.Equal(t, 3, updated.Rating)
		assert.Equal(t, twain.ID, updated.AuthorID)
		assert.Equal(t, q.CreatedAt.Unix(), updated.CreatedAt.Unix())

		rating := 9
		updated, err = f.quotes.Update(ctx, q.ID, model.QuotePatch{Rating: &rating, AuthorID: &leo.ID})
		require.NoError(t, err)
		assert.Equal(t, 5, updated.Rating)
		assert.Equal(t, leo.ID, updated.AuthorID)
		assert.Equal(t, "Лев Толстой", updated.AuthorName)
		assert.Equal(t, "edited", updated.Text)

		same, err := f.quotes.Update(ctx, q.ID, model.QuotePatch{})
		require.NoError(t, err)
		assert.Equal(t, updated.Text, same.Text)
	})

	t.Run("UpdateRejectsBadAuthorAtomically", func(t *testing.T) {
		f := open(t)
		a := f.author(t, "Mark", nil)
		q := f.quote(t, a.ID, "original", 2)

		text := "changed"
		missing := int64(999)
		_, err := f.quotes.Update(ctx, q.ID, model.QuotePatch{Text: &text, AuthorID: &missing})
		assert.ErrorIs(t, err, model.ErrInvalidAuthor)

		got, err := f.quotes.GetByID(ctx, q.ID)
		require.NoError(t, err)
		assert.Equal(t, "original", got.Text)
		assert.Equal(t, a.ID, got.AuthorID)

		_, err = f.quotes.Update(ctx, 12345, model.QuotePatch{Text: &text})
		assert.ErrorIs(t, err, model.ErrQuoteNotFound)
	})

	t.Run("RatingSaturates", func(t *testing.T) {
		f := open(t)
		a := f.author(t, "Mark", nil)
		top := f.quote(t, a.ID, "top", 5)
		bottom := f.quote(t, a.ID, "bottom", 1)

		for i := 0; i < 2; i++ {
			q, err := f.quotes.AdjustRating(ctx, top.ID, 1)
			require.NoError(t, err)
			assert.Equal(t, 5, q.Rating)

			q, err = f.quotes.AdjustRating(ctx, bottom.ID, -1)
			require.NoError(t, err)
			assert.Equal(t, 1, q.Rating)
		}

		q, err := f.quotes.AdjustRating(ctx, bottom.ID, 1)
		require.NoError(t, err)
		assert.Equal(t, 2, q.Rating)

		_, err = f.quotes.AdjustRating(ctx, 999, 1)
		assert.ErrorIs(t, err, model.ErrQuoteNotFound)
	})

	t.Run("DeleteMissingDoesNotMutate", func(t *testing.T) {
		f := open(t)
		a := f.author(t, "Mark", nil)
		q := f.quote(t, a.ID, "keep", 1)

		assert.ErrorIs(t, f.quotes.Delete(ctx, q.ID+100), model.ErrQuoteNotFound)
		n, err := f.quotes.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		require.NoError(t, f.quotes.Delete(ctx, q.ID))
		_, err = f.quotes.GetByID(ctx, q.ID)
		assert.ErrorIs(t, err, model.ErrQuoteNotFound)
	})

	t.Run("SoftDeletedAuthorHidesQuotes", func(t *testing.T) {
		f := open(t)
		a := f.author(t, "Mark", strPtr("Twain"))
		q := f.quote(t, a.ID, "hidden", 4)

		require.NoError(t, f.authors.SoftDelete(ctx, a.ID))

		_, err := f.quotes.GetByID(ctx, q.ID)
		assert.ErrorIs(t, err, model.ErrQuoteNotFound)
		list, err := f.quotes.List(ctx, model.QuoteFilter{SortBy: model.SortByID})
		require.NoError(t, err)
		assert.Empty(t, list)
		_, err = f.quotes.Random(ctx)
		assert.ErrorIs(t, err, model.ErrNoQuotes)
		assert.ErrorIs(t, f.quotes.Delete(ctx, q.ID), model.ErrQuoteNotFound)
		_, err = f.quotes.AdjustRating(ctx, q.ID, 1)
		assert.ErrorIs(t, err, model.ErrQuoteNotFound)

		_, err = f.authors.Restore(ctx, a.ID)
		require.NoError(t, err)

		got, err := f.quotes.GetByID(ctx, q.ID)
		require.NoError(t, err)
		assert.Equal(t, "hidden", got.Text)
		assert.Equal(t, 4, got.Rating)
	})

	t.Run("PurgeCascades", func(t *testing.T) {
		f := open(t)
		a := f.author(t, "Mark", nil)
		other := f.author(t, "Leo", nil)
		f.quote(t, a.ID, "one", 1)
		f.quote(t, a.ID, "two", 1)
		kept := f.quote(t, other.ID, "three", 1)

		require.NoError(t, f.authors.Purge(ctx, a.ID))

		list, err := f.quotes.List(ctx, model.QuoteFilter{SortBy: model.SortByID})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, kept.ID, list[0].ID)
	})

	t.Run("ListFilterAndSort", func(t *testing.T) {
		f := open(t)
		twain := f.author(t, "Mark", strPtr("Twain"))
		leo := f.author(t, "Лев", strPtr("Толстой"))
		odd := f.author(t, "100%_Real", nil)
		q1 := f.quote(t, twain.ID, "a", 2)
		q2 := f.quote(t, leo.ID, "b", 5)
		q3 := f.quote(t, twain.ID, "c", 4)
		q4 := f.quote(t, odd.ID, "d", 1)

		ids := func(filter model.QuoteFilter) []int64 {
			list, err := f.quotes.List(ctx, filter)
			require.NoError(t, err)
			out := make([]int64, 0, len(list))
			for _, q := range list {
				out = append(out, q.ID)
			}
			return out
		}

		base := model.QuoteFilter{SortBy: model.SortByID, Order: model.OrderAsc}
		assert.Equal(t, []int64{q1.ID, q2.ID, q3.ID, q4.ID}, ids(base))
		assert.Equal(t, []int64{q1.ID, q3.ID}, ids(base.ByAuthor(twain.ID)))
		assert.Equal(t, []int64{q1.ID, q3.ID}, ids(base.SearchAuthor("TWAIN")))
		assert.Equal(t, []int64{q1.ID, q3.ID}, ids(base.SearchAuthor("mark tw")))
		assert.Equal(t, []int64{q2.ID}, ids(base.SearchAuthor("ТОЛСТ")))
		assert.Equal(t, []int64{q4.ID}, ids(base.SearchAuthor("0%_r")))
		assert.Empty(t, ids(base.SearchAuthor("%%")))
		assert.Empty(t, ids(base.SearchAuthor("nobody")))

		byRating := model.QuoteFilter{SortBy: model.SortByRating, Order: model.OrderDesc}
		assert.Equal(t, []int64{q2.ID, q3.ID, q1.ID, q4.ID}, ids(byRating))

		desc := model.QuoteFilter{SortBy: model.SortByID, Order: model.OrderDesc}
		assert.Equal(t, []int64{q4.ID, q3.ID, q2.ID, q1.ID}, ids(desc))
	})

	t.Run("CountAndRandom", func(t *testing.T) {
		f := open(t)
		_, err := f.quotes.Random(ctx)
		assert.ErrorIs(t, err, model.ErrNoQuotes)

		a := f.author(t, "Mark", nil)
		q := f.quote(t, a.ID, "only", 3)

		n, err := f.quotes.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		got, err := f.quotes.Random(ctx)
		require.NoError(t, err)
		assert.Equal(t, q.ID, got.ID)
	})
}

func strPtr(s string) *string { return &s }
