package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"quotes-api/internal/domains/author/model"
	"quotes-api/internal/infrastructure/database"
	pkgdb "quotes-api/pkg/database"
)

type sqliteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository stores authors in the embedded SQLite database.
func NewSQLiteRepository(db *sql.DB) RepositoryInterface {
	return &sqliteRepository{db: db}
}

const sqliteAuthorColumns = `id, name, surname, is_deleted`

// rowQueryer is satisfied by both *sql.DB and *sql.Tx.
type rowQueryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (r *sqliteRepository) List(ctx context.Context, filter model.AuthorFilter) ([]*model.Author, error) {
	query := `SELECT ` + sqliteAuthorColumns + ` FROM authors WHERE is_deleted = ? ORDER BY ` + orderClause(filter)

	rows, err := r.db.QueryContext(ctx, query, filter.Deleted)
	if err != nil {
		return nil, fmt.Errorf("failed to list authors: %w", err)
	}
	defer rows.Close()

	authors := []*model.Author{}
	for rows.Next() {
		a, err := scanSQLiteAuthor(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan author: %w", err)
		}
		authors = append(authors, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate authors: %w", err)
	}
	return authors, nil
}

func (r *sqliteRepository) GetByID(ctx context.Context, id int64) (*model.Author, error) {
	return getSQLiteAuthor(ctx, r.db, `WHERE id = ? AND is_deleted = 0`, id)
}

func (r *sqliteRepository) GetAnyByID(ctx context.Context, id int64) (*model.Author, error) {
	return getSQLiteAuthor(ctx, r.db, `WHERE id = ?`, id)
}

func (r *sqliteRepository) GetByName(ctx context.Context, name string) (*model.Author, error) {
	return getSQLiteAuthor(ctx, r.db, `WHERE name = ?`, name)
}

func (r *sqliteRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM authors WHERE is_deleted = 0`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count authors: %w", err)
	}
	return n, nil
}

func (r *sqliteRepository) Create(ctx context.Context, a *model.Author) (*model.Author, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO authors (name, surname, search_name) VALUES (?, ?, ?)`,
		a.Name, a.Surname, a.SearchName(),
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, model.ErrDuplicateAuthorName
		}
		return nil, fmt.Errorf("failed to create author: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read author id: %w", err)
	}
	return &model.Author{ID: id, Name: a.Name, Surname: a.Surname}, nil
}

// Update loads the visible author, applies the patch and writes the
// allow-listed columns back in one transaction.
func (r *sqliteRepository) Update(ctx context.Context, id int64, patch model.AuthorPatch) (*model.Author, error) {
	return pkgdb.WithSQLTransactionResult(ctx, r.db, func(tx *sql.Tx) (*model.Author, error) {
		current, err := getSQLiteAuthor(ctx, tx, `WHERE id = ? AND is_deleted = 0`, id)
		if err != nil {
			return nil, err
		}
		if patch.IsEmpty() {
			return current, nil
		}

		next := patch.Apply(*current)
		res, err := tx.ExecContext(ctx,
			`UPDATE authors SET name = ?, surname = ?, search_name = ? WHERE id = ? AND is_deleted = 0`,
			next.Name, next.Surname, next.SearchName(), id,
		)
		if err != nil {
			if database.IsUniqueViolation(err) {
				return nil, model.ErrDuplicateAuthorName
			}
			return nil, fmt.Errorf("failed to update author: %w", err)
		}
		n, err := database.RowsAffected(res)
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, model.NotFound(id)
		}
		return &next, nil
	})
}

func (r *sqliteRepository) SoftDelete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `UPDATE authors SET is_deleted = 1 WHERE id = ? AND is_deleted = 0`, id)
	if err != nil {
		return fmt.Errorf("failed to delete author: %w", err)
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

func (r *sqliteRepository) Restore(ctx context.Context, id int64) (*model.Author, error) {
	return pkgdb.WithSQLTransactionResult(ctx, r.db, func(tx *sql.Tx) (*model.Author, error) {
		current, err := getSQLiteAuthor(ctx, tx, `WHERE id = ?`, id)
		if err != nil {
			return nil, err
		}
		if !current.IsDeleted {
			return nil, model.ErrAuthorNotDeleted.WithMessage("Author with id %d is not deleted", id)
		}
		if _, err := tx.ExecContext(ctx, `UPDATE authors SET is_deleted = 0 WHERE id = ?`, id); err != nil {
			return nil, fmt.Errorf("failed to restore author: %w", err)
		}
		current.IsDeleted = false
		return current, nil
	})
}

func (r *sqliteRepository) Purge(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM authors WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to purge author: %w", err)
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

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteAuthor(row rowScanner) (*model.Author, error) {
	var (
		a       model.Author
		surname sql.NullString
	)
	if err := row.Scan(&a.ID, &a.Name, &surname, &a.IsDeleted); err != nil {
		return nil, err
	}
	if surname.Valid {
		a.Surname = &surname.String
	}
	return &a, nil
}

func getSQLiteAuthor(ctx context.Context, q rowQueryer, where string, arg any) (*model.Author, error) {
	row := q.QueryRowContext(ctx, `SELECT `+sqliteAuthorColumns+` FROM authors `+where, arg)
	a, err := scanSQLiteAuthor(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			if id, ok := arg.(int64); ok {
				return nil, model.NotFound(id)
			}
			return nil, model.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to get author: %w", err)
	}
	return a, nil
}
