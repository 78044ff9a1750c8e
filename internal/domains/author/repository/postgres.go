package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"quotes-api/internal/domains/author/model"
	"quotes-api/internal/infrastructure/database"
	pkgdb "quotes-api/pkg/database"
)

// postgresRepository implements RepositoryInterface on a pgx pool.
type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

const pgAuthorColumns = `id, name, surname, is_deleted`

// pgQueryer is satisfied by both *pgxpool.Pool and pgx.Tx.
type pgQueryer interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (r *postgresRepository) List(ctx context.Context, filter model.AuthorFilter) ([]*model.Author, error) {
	query := `SELECT ` + pgAuthorColumns + ` FROM authors WHERE is_deleted = $1 ORDER BY ` + orderClause(filter)

	rows, err := r.pool.Query(ctx, query, filter.Deleted)
	if err != nil {
		return nil, fmt.Errorf("failed to list authors: %w", err)
	}
	defer rows.Close()

	authors := []*model.Author{}
	for rows.Next() {
		var a model.Author
		if err := rows.Scan(&a.ID, &a.Name, &a.Surname, &a.IsDeleted); err != nil {
			return nil, fmt.Errorf("failed to scan author: %w", err)
		}
		authors = append(authors, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate authors: %w", err)
	}
	return authors, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*model.Author, error) {
	return getPgAuthor(ctx, r.pool, `WHERE id = $1 AND is_deleted = FALSE`, id)
}

func (r *postgresRepository) GetAnyByID(ctx context.Context, id int64) (*model.Author, error) {
	return getPgAuthor(ctx, r.pool, `WHERE id = $1`, id)
}

func (r *postgresRepository) GetByName(ctx context.Context, name string) (*model.Author, error) {
	return getPgAuthor(ctx, r.pool, `WHERE name = $1`, name)
}

func (r *postgresRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM authors WHERE is_deleted = FALSE`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count authors: %w", err)
	}
	return n, nil
}

func (r *postgresRepository) Create(ctx context.Context, a *model.Author) (*model.Author, error) {
	query := `
        INSERT INTO authors (name, surname, search_name)
        VALUES ($1, $2, $3)
        RETURNING ` + pgAuthorColumns

	var created model.Author
	err := r.pool.QueryRow(ctx, query, a.Name, a.Surname, a.SearchName()).Scan(
		&created.ID,
		&created.Name,
		&created.Surname,
		&created.IsDeleted,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, model.ErrDuplicateAuthorName
		}
		return nil, fmt.Errorf("failed to create author: %w", err)
	}
	return &created, nil
}

func (r *postgresRepository) Update(ctx context.Context, id int64, patch model.AuthorPatch) (*model.Author, error) {
	return pkgdb.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*model.Author, error) {
		current, err := getPgAuthor(ctx, tx, `WHERE id = $1 AND is_deleted = FALSE FOR UPDATE`, id)
		if err != nil {
			return nil, err
		}
		if patch.IsEmpty() {
			return current, nil
		}

		next := patch.Apply(*current)
		tag, err := tx.Exec(ctx,
			`UPDATE authors SET name = $1, surname = $2, search_name = $3 WHERE id = $4 AND is_deleted = FALSE`,
			next.Name, next.Surname, next.SearchName(), id,
		)
		if err != nil {
			if database.IsUniqueViolation(err) {
				return nil, model.ErrDuplicateAuthorName
			}
			return nil, fmt.Errorf("failed to update author: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return nil, model.NotFound(id)
		}
		return &next, nil
	})
}

func (r *postgresRepository) SoftDelete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `UPDATE authors SET is_deleted = TRUE WHERE id = $1 AND is_deleted = FALSE`, id)
	if err != nil {
		return fmt.Errorf("failed to delete author: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.NotFound(id)
	}
	return nil
}

func (r *postgresRepository) Restore(ctx context.Context, id int64) (*model.Author, error) {
	return pkgdb.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*model.Author, error) {
		current, err := getPgAuthor(ctx, tx, `WHERE id = $1 FOR UPDATE`, id)
		if err != nil {
			return nil, err
		}
		if !current.IsDeleted {
			return nil, model.ErrAuthorNotDeleted.WithMessage("Author with id %d is not deleted", id)
		}
		if _, err := tx.Exec(ctx, `UPDATE authors SET is_deleted = FALSE WHERE id = $1`, id); err != nil {
			return nil, fmt.Errorf("failed to restore author: %w", err)
		}
		current.IsDeleted = false
		return current, nil
	})
}

func (r *postgresRepository) Purge(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM authors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to purge author: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.NotFound(id)
	}
	return nil
}

func getPgAuthor(ctx context.Context, q pgQueryer, where string, arg any) (*model.Author, error) {
	var a model.Author
	err := q.QueryRow(ctx, `SELECT `+pgAuthorColumns+` FROM authors `+where, arg).Scan(
		&a.ID,
		&a.Name,
		&a.Surname,
		&a.IsDeleted,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			if id, ok := arg.(int64); ok {
				return nil, model.NotFound(id)
			}
			return nil, model.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to get author: %w", err)
	}
	return &a, nil
}
