package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"quotes-api/internal/domains/quote/model"
	"quotes-api/internal/shared/apperror"
	"quotes-api/internal/shared/utils"
	pkgdb "quotes-api/pkg/database"
)

// postgresRepository implements RepositoryInterface on a pgx pool.
type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

const pgSelectVisible = `
        SELECT q.id, q.author_id, a.name, a.surname, q.text, q.rating, q.created_at
        FROM quotes q
        JOIN authors a ON a.id = q.author_id
        WHERE a.is_deleted = FALSE`

const pgVisibleAuthorIDs = `SELECT id FROM authors WHERE is_deleted = FALSE`

// pgQueryer is satisfied by both *pgxpool.Pool and pgx.Tx.
type pgQueryer interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (r *postgresRepository) List(ctx context.Context, filter model.QuoteFilter) ([]*model.Quote, error) {
	query := pgSelectVisible
	args := []any{}

	if filter.AuthorID != nil {
		args = append(args, *filter.AuthorID)
		query += ` AND q.author_id = $` + strconv.Itoa(len(args))
	}
	if filter.AuthorSearch != "" {
		args = append(args, utils.ContainsPattern(filter.AuthorSearch))
		query += ` AND a.search_name LIKE $` + strconv.Itoa(len(args)) + ` ESCAPE '\'`
	}
	query += ` ORDER BY ` + orderClause(filter)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list quotes: %w", err)
	}
	defer rows.Close()

	quotes := []*model.Quote{}
	for rows.Next() {
		q, err := scanPgQuote(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan quote: %w", err)
		}
		quotes = append(quotes, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate quotes: %w", err)
	}
	return quotes, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*model.Quote, error) {
	return getPgQuote(ctx, r.pool, id)
}

func (r *postgresRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `
        SELECT COUNT(*)
        FROM quotes q
        JOIN authors a ON a.id = q.author_id
        WHERE a.is_deleted = FALSE`).Scan(&n)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperror.ErrStorageUnavailable
		}
		return 0, fmt.Errorf("failed to count quotes: %w", err)
	}
	return n, nil
}

func (r *postgresRepository) Random(ctx context.Context) (*model.Quote, error) {
	q, err := scanPgQuote(r.pool.QueryRow(ctx, pgSelectVisible+` ORDER BY RANDOM() LIMIT 1`))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNoQuotes
		}
		return nil, fmt.Errorf("failed to pick random quote: %w", err)
	}
	return q, nil
}

func (r *postgresRepository) Create(ctx context.Context, q *model.Quote) (*model.Quote, error) {
	return pkgdb.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*model.Quote, error) {
		if err := checkPgAuthor(ctx, tx, q.AuthorID); err != nil {
			return nil, err
		}

		var id int64
		err := tx.QueryRow(ctx,
			`INSERT INTO quotes (author_id, text, rating) VALUES ($1, $2, $3) RETURNING id`,
			q.AuthorID, q.Text, model.ClampRating(q.Rating),
		).Scan(&id)
		if err != nil {
			return nil, fmt.Errorf("failed to create quote: %w", err)
		}
		return getPgQuote(ctx, tx, id)
	})
}

func (r *postgresRepository) Update(ctx context.Context, id int64, patch model.QuotePatch) (*model.Quote, error) {
	return pkgdb.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*model.Quote, error) {
		current, err := getPgQuote(ctx, tx, id)
		if err != nil {
			return nil, err
		}
		if patch.IsEmpty() {
			return current, nil
		}
		if patch.AuthorID != nil {
			if err := checkPgAuthor(ctx, tx, *patch.AuthorID); err != nil {
				return nil, err
			}
		}

		var rating *int
		if patch.Rating != nil {
			clamped := model.ClampRating(*patch.Rating)
			rating = &clamped
		}

		tag, err := tx.Exec(ctx, `
            UPDATE quotes
            SET author_id = COALESCE($1, author_id),
                text      = COALESCE($2, text),
                rating    = COALESCE($3, rating)
            WHERE id = $4 AND author_id IN (`+pgVisibleAuthorIDs+`)`,
			patch.AuthorID, patch.Text, rating, id,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to update quote: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return nil, model.NotFound(id)
		}
		return getPgQuote(ctx, tx, id)
	})
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM quotes WHERE id = $1 AND author_id IN (`+pgVisibleAuthorIDs+`)`, id)
	if err != nil {
		return fmt.Errorf("failed to delete quote: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.NotFound(id)
	}
	return nil
}

func (r *postgresRepository) AdjustRating(ctx context.Context, id int64, delta int) (*model.Quote, error) {
	return pkgdb.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*model.Quote, error) {
		tag, err := tx.Exec(ctx, `
            UPDATE quotes
            SET rating = LEAST(GREATEST(rating + $1, $2), $3)
            WHERE id = $4 AND author_id IN (`+pgVisibleAuthorIDs+`)`,
			delta, model.MinRating, model.MaxRating, id,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to adjust rating: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return nil, model.NotFound(id)
		}
		return getPgQuote(ctx, tx, id)
	})
}

func checkPgAuthor(ctx context.Context, q pgQueryer, authorID int64) error {
	var one int
	err := q.QueryRow(ctx, `SELECT 1 FROM authors WHERE id = $1 AND is_deleted = FALSE`, authorID).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.InvalidAuthor(authorID)
		}
		return fmt.Errorf("failed to check author: %w", err)
	}
	return nil
}

func scanPgQuote(row pgx.Row) (*model.Quote, error) {
	var (
		q         model.Quote
		name      string
		surname   *string
		createdAt time.Time
	)
	if err := row.Scan(&q.ID, &q.AuthorID, &name, &surname, &q.Text, &q.Rating, &createdAt); err != nil {
		return nil, err
	}
	q.AuthorName = utils.FullName(name, surname)
	q.CreatedAt = createdAt.UTC()
	return &q, nil
}

func getPgQuote(ctx context.Context, q pgQueryer, id int64) (*model.Quote, error) {
	quote, err := scanPgQuote(q.QueryRow(ctx, pgSelectVisible+` AND q.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NotFound(id)
		}
		return nil, fmt.Errorf("failed to get quote: %w", err)
	}
	return quote, nil
}
