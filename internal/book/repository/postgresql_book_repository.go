// Package repository implements book persistence for PostgreSQL, MySQL and SQLite.
//
// Every method honors a transaction stored in the context by database.TxManager.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	bookDomain "github.com/allisson/gatekeeper/internal/book/domain"
	"github.com/allisson/gatekeeper/internal/database"
	apperrors "github.com/allisson/gatekeeper/internal/errors"
)

const bookColumns = `id, title, author, isbn, image_url, description, bookshelf, created_at, updated_at`

// PostgreSQLBookRepository implements Book persistence for PostgreSQL.
type PostgreSQLBookRepository struct {
	db *sql.DB
}

// Create inserts a new Book.
func (p *PostgreSQLBookRepository) Create(ctx context.Context, book *bookDomain.Book) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO books (` + bookColumns + `)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	if _, err := querier.ExecContext(ctx, query, bookArgs(book.ID, book)...); err != nil {
		return apperrors.Wrap(err, "failed to create book")
	}
	return nil
}

// Upsert inserts the Book or replaces every writable field of an existing one.
// The stored created_at of an existing row is kept.
func (p *PostgreSQLBookRepository) Upsert(ctx context.Context, book *bookDomain.Book) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO books (` + bookColumns + `)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			  ON CONFLICT (id) DO UPDATE SET
				title = EXCLUDED.title,
				author = EXCLUDED.author,
				isbn = EXCLUDED.isbn,
				image_url = EXCLUDED.image_url,
				description = EXCLUDED.description,
				bookshelf = EXCLUDED.bookshelf,
				updated_at = EXCLUDED.updated_at`

	if _, err := querier.ExecContext(ctx, query, bookArgs(book.ID, book)...); err != nil {
		return apperrors.Wrap(err, "failed to upsert book")
	}
	return nil
}

// GetByID retrieves a Book by ID.
func (p *PostgreSQLBookRepository) GetByID(ctx context.Context, bookID uuid.UUID) (*bookDomain.Book, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + bookColumns + ` FROM books WHERE id = $1`

	return scanBook(querier.QueryRowContext(ctx, query, bookID))
}

// List retrieves every Book ordered by creation time.
func (p *PostgreSQLBookRepository) List(ctx context.Context) ([]*bookDomain.Book, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + bookColumns + ` FROM books ORDER BY created_at ASC, id ASC`

	rows, err := querier.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list books")
	}
	defer func() {
		_ = rows.Close()
	}()

	return scanBooks(rows)
}

// Update overwrites the writable fields of an existing Book.
func (p *PostgreSQLBookRepository) Update(ctx context.Context, book *bookDomain.Book) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE books
			  SET title = $1, author = $2, isbn = $3, image_url = $4,
				  description = $5, bookshelf = $6, updated_at = $7
			  WHERE id = $8`

	result, err := querier.ExecContext(ctx, query, updateArgs(book.ID, book)...)
	if err != nil {
		return apperrors.Wrap(err, "failed to update book")
	}
	return requireAffected(result)
}

// Delete removes a Book by ID.
func (p *PostgreSQLBookRepository) Delete(ctx context.Context, bookID uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM books WHERE id = $1`, bookID)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete book")
	}
	return requireAffected(result)
}

// NewPostgreSQLBookRepository creates a new PostgreSQL Book repository.
func NewPostgreSQLBookRepository(db *sql.DB) *PostgreSQLBookRepository {
	return &PostgreSQLBookRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

// bookArgs returns the insert arguments in bookColumns order.
func bookArgs(id any, book *bookDomain.Book) []any {
	return []any{
		id,
		book.Title,
		book.Author,
		book.ISBN,
		book.ImageURL,
		book.Description,
		book.Bookshelf,
		book.CreatedAt,
		book.UpdatedAt,
	}
}

// updateArgs returns the update arguments with the id last.
func updateArgs(id any, book *bookDomain.Book) []any {
	return []any{
		book.Title,
		book.Author,
		book.ISBN,
		book.ImageURL,
		book.Description,
		book.Bookshelf,
		book.UpdatedAt,
		id,
	}
}

// scanBook reads a row in bookColumns order. uuid.UUID scans textual and
// 16-byte ids alike, so every driver shares it.
func scanBook(row rowScanner) (*bookDomain.Book, error) {
	var book bookDomain.Book

	err := row.Scan(
		&book.ID,
		&book.Title,
		&book.Author,
		&book.ISBN,
		&book.ImageURL,
		&book.Description,
		&book.Bookshelf,
		&book.CreatedAt,
		&book.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, bookDomain.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get book")
	}
	return &book, nil
}

func scanBooks(rows *sql.Rows) ([]*bookDomain.Book, error) {
	books := make([]*bookDomain.Book, 0)
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, book)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate books")
	}

	return books, nil
}

func requireAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read affected rows")
	}
	if affected == 0 {
		return bookDomain.ErrBookNotFound
	}
	return nil
}
