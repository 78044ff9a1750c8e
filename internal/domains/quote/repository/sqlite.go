package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"quotes-api/internal/domains/quote/model"
	"quotes-api/internal/infrastructure/database"
	"quotes-api/internal/shared/apperror"
	"quotes-api/internal/shared/utils"
	pkgdb "quotes-api/pkg/database"
)

type sqliteRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteRepository stores quotes in the embedded SQLite database.
func NewSQLiteRepository(db *sql.DB) RepositoryInterface {
	return &sqliteRepository{db: db, now: time.Now}
}

const sqliteSelectVisible = `
        SELECT q.id, q.author_id, a.name, a.surname, q.text, q.rating, q.created_at
        FROM quotes q
        JOIN authors a ON a.id = q.author_id
        WHERE a.is_deleted = 0`

const sqliteVisibleAuthorIDs = `SELECT id FROM authors WHERE is_deleted = 0`

// rowQueryer is satisfied by both *sql.DB and *sql.Tx.
type rowQueryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (r *sqliteRepository) List(ctx context.Context, filter model.QuoteFilter) ([]*model.Quote, error) {
	query := sqliteSelectVisible
	args := []any{}

	if filter.AuthorID != nil {
		query += ` AND q.author_id = ?`
		args = append(args, *filter.AuthorID)
	}
	if filter.AuthorSearch != "" {
		query += ` AND a.search_name LIKE ? ESCAPE '\'`
		args = append(args, utils.ContainsPattern(filter.AuthorSearch))
	}
	query += ` ORDER BY ` + orderClause(filter)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list quotes: %w", err)
	}
	defer rows.Close()

	quotes := []*model.Quote{}
	for rows.Next() {
		q, err := scanSQLiteQuote(rows)
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

func (r *sqliteRepository) GetByID(ctx context.Context, id int64) (*model.Quote, error) {
	return getSQLiteQuote(ctx, r.db, id)
}

// Count reports StorageUnavailable when the aggregate yields no row, which
// is distinct from a zero count.
func (r *sqliteRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `
        SELECT COUNT(*)
        FROM quotes q
        JOIN authors a ON a.id = q.author_id
        WHERE a.is_deleted = 0`).Scan(&n)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, apperror.ErrStorageUnavailable
		}
		return 0, fmt.Errorf("failed to count quotes: %w", err)
	}
	return n, nil
}

func (r *sqliteRepository) Random(ctx context.Context) (*model.Quote, error) {
	row := r.db.QueryRowContext(ctx, sqliteSelectVisible+` ORDER BY RANDOM() LIMIT 1`)
	q, err := scanSQLiteQuote(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNoQuotes
		}
		return nil, fmt.Errorf("failed to pick random quote: %w", err)
	}
	return q, nil
}

func (r *sqliteRepository) Create(ctx context.Context, q *model.Quote) (*model.Quote, error) {
	return pkgdb.WithSQLTransactionResult(ctx, r.db, func(tx *sql.Tx) (*model.Quote, error) {
		if err := checkSQLiteAuthor(ctx, tx, q.AuthorID); err != nil {
			return nil, err
		}

		res, err := tx.ExecContext(ctx,
			`INSERT INTO quotes (author_id, text, rating, created_at) VALUES (?, ?, ?, ?)`,
			q.AuthorID, q.Text, model.ClampRating(q.Rating), database.ToMillis(r.now()),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create quote: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("failed to read quote id: %w", err)
		}
		return getSQLiteQuote(ctx, tx, id)
	})
}

// Update re-validates a changed author and writes only allow-listed columns.
func (r *sqliteRepository) Update(ctx context.Context, id int64, patch model.QuotePatch) (*model.Quote, error) {
	return pkgdb.WithSQLTransactionResult(ctx, r.db, func(tx *sql.Tx) (*model.Quote, error) {
		current, err := getSQLiteQuote(ctx, tx, id)
		if err != nil {
			return nil, err
		}
		if patch.IsEmpty() {
			return current, nil
		}
		if patch.AuthorID != nil {
			if err := checkSQLiteAuthor(ctx, tx, *patch.AuthorID); err != nil {
				return nil, err
			}
		}

		var rating *int
		if patch.Rating != nil {
			clamped := model.ClampRating(*patch.Rating)
			rating = &clamped
		}

		res, err := tx.ExecContext(ctx, `
            UPDATE quotes
            SET author_id = COALESCE(?, author_id),
                text      = COALESCE(?, text),
                rating    = COALESCE(?, rating)
            WHERE id = ? AND author_id IN (`+sqliteVisibleAuthorIDs+`)`,
			patch.AuthorID, patch.Text, rating, id,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to update quote: %w", err)
		}
		n, err := database.RowsAffected(res)
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, model.NotFound(id)
		}
		return getSQLiteQuote(ctx, tx, id)
	})
}

func (r *sqliteRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM quotes WHERE id = ? AND author_id IN (`+sqliteVisibleAuthorIDs+`)`, id)
	if err != nil {
		return fmt.Errorf("failed to delete quote: %w", err)
	}
	n, err := database.RowsAffected(res)
	if err != nil {
		return err
	}
	if n == 0 {
		return model.NotFound(id)
	}
	return nil
}

func (r *sqliteRepository) AdjustRating(ctx context.Context, id int64, delta int) (*model.Quote, error) {
	return pkgdb.WithSQLTransactionResult(ctx, r.db, func(tx *sql.Tx) (*model.Quote, error) {
		res, err := tx.ExecContext(ctx, `
            UPDATE quotes
            SET rating = MIN(MAX(rating + ?, ?), ?)
            WHERE id = ? AND author_id IN (`+sqliteVisibleAuthorIDs+`)`,
			delta, model.MinRating, model.MaxRating, id,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to adjust rating: %w", err)
		}
		n, err := database.RowsAffected(res)
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, model.NotFound(id)
		}
		return getSQLiteQuote(ctx, tx, id)
	})
}

func checkSQLiteAuthor(ctx context.Context, q rowQueryer, authorID int64) error {
	var one int
	err := q.QueryRowContext(ctx, `SELECT 1 FROM authors WHERE id = ? AND is_deleted = 0`, authorID).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.InvalidAuthor(authorID)
		}
		return fmt.Errorf("failed to check author: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteQuote(row rowScanner) (*model.Quote, error) {
	var (
		q         model.Quote
		name      string
		surname   sql.NullString
		createdAt int64
	)
	if err := row.Scan(&q.ID, &q.AuthorID, &name, &surname, &q.Text, &q.Rating, &createdAt); err != nil {
		return nil, err
	}
	var sn *string
	if surname.Valid {
		sn = &surname.String
	}
	q.AuthorName = utils.FullName(name, sn)
	q.CreatedAt = database.FromMillis(createdAt)
	return &q, nil
}

func getSQLiteQuote(ctx context.Context, db rowQueryer, id int64) (*model.Quote, error) {
	q, err := scanSQLiteQuote(db.QueryRowContext(ctx, sqliteSelectVisible+` AND q.id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.NotFound(id)
		}
		return nil, fmt.Errorf("failed to get quote: %w", err)
	}
	return q, nil
}
