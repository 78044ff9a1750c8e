package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authormodel "quotes-api/internal/domains/author/model"
	authorrepo "quotes-api/internal/domains/author/repository"
	quotemodel "quotes-api/internal/domains/quote/model"
	quoterepo "quotes-api/internal/domains/quote/repository"
	"quotes-api/internal/infrastructure/database"
	"quotes-api/internal/infrastructure/database/dbtest"
)

func TestRunSeedsEmptyStorageOnce(t *testing.T) {
	ctx := context.Background()
	db := dbtest.SQLite(t).DB
	authors := authorrepo.NewSQLiteRepository(db)
	quotes := quoterepo.NewSQLiteRepository(db)

	inserted, err := Run(ctx, authors, quotes)
	require.NoError(t, err)
	assert.True(t, inserted)

	n, err := quotes.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(len(samples)), n)

	inserted, err = Run(ctx, authors, quotes)
	require.NoError(t, err)
	assert.False(t, inserted)

	n, err = quotes.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(len(samples)), n)

	list, err := quotes.List(ctx, quotemodel.QuoteFilter{SortBy: quotemodel.SortByID}.SearchAuthor("COOK"))
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Rick Cook", list[0].AuthorName)
}

func TestRunSkipsStorageWithOnlyDeletedAuthors(t *testing.T) {
	ctx := context.Background()
	db := database.NewMemoryDB()
	authors := authorrepo.NewMemoryRepository(db)
	quotes := quoterepo.NewMemoryRepository(db)

	surname := "Cook"
	rick, err := authors.Create(ctx, &authormodel.Author{Name: "Rick", Surname: &surname})
	require.NoError(t, err)
	require.NoError(t, authors.SoftDelete(ctx, rick.ID))

	inserted, err := Run(ctx, authors, quotes)
	require.NoError(t, err)
	assert.False(t, inserted)

	n, err := quotes.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	stored, err := authors.GetAnyByID(ctx, rick.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsDeleted)
}

func TestSamplesFitLimits(t *testing.T) {
	for _, s := range samples {
		req := authormodel.CreateAuthorRequest{Name: s.Name}
		if s.Surname != "" {
			req.Surname = &s.Surname
		}
		assert.NoError(t, req.Validate(), s.Name)

		id := int64(1)
		assert.NoError(t, quotemodel.CreateQuoteRequest{AuthorID: &id, Text: s.Text}.Validate(), s.Name)
	}
}
