package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	bookDomain "github.com/allisson/gatekeeper/internal/book/domain"
	"github.com/allisson/gatekeeper/internal/database"
	apperrors "github.com/allisson/gatekeeper/internal/errors"
)

// SQLiteBookRepository implements Book persistence for SQLite.
// IDs are stored in their canonical textual form.
type SQLiteBookRepository struct {
	db *sql.DB
}

// Create inserts a new Book.
func (s *SQLiteBookRepository) Create(ctx context.Context, book *bookDomain.Book) error {
	querier := database.GetTx(ctx, s.db)

	query := `INSERT INTO books (` + bookColumns + `)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	if _, err := querier.ExecContext(ctx, query, bookArgs(book.ID.String(), book)...); err != nil {
		return apperrors.Wrap(err, "failed to create book")
	}
	return nil
}

// Upsert inserts the Book or replaces every writable field of an existing one.
func (s *SQLiteBookRepository) Upsert(ctx context.Context, book *bookDomain.Book) error {
	querier := database.GetTx(ctx, s.db)

	query := `INSERT INTO books (` + bookColumns + `)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			  ON CONFLICT (id) DO UPDATE SET
				title = excluded.title,
				author = excluded.author,
				isbn = excluded.isbn,
				image_url = excluded.image_url,
				description = excluded.description,
				bookshelf = excluded.bookshelf,
				updated_at = excluded.updated_at`

	if _, err := querier.ExecContext(ctx, query, bookArgs(book.ID.String(), book)...); err != nil {
		return apperrors.Wrap(err, "failed to upsert book")
	}
	return nil
}

// GetByID retrieves a Book by ID.
func (s *SQLiteBookRepository) GetByID(ctx context.Context, bookID uuid.UUID) (*bookDomain.Book, error) {
	querier := database.GetTx(ctx, s.db)

	query := `SELECT ` + bookColumns + ` FROM books WHERE id = ?`

	return scanBook(querier.QueryRowContext(ctx, query, bookID.String()))
}

// List retrieves every Book ordered by creation time.
func (s *SQLiteBookRepository) List(ctx context.Context) ([]*bookDomain.Book, error) {
	querier := database.GetTx(ctx, s.db)

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
func (s *SQLiteBookRepository) Update(ctx context.Context, book *bookDomain.Book) error {
	querier := database.GetTx(ctx, s.db)

	query := `UPDATE books
			  SET title = ?, author = ?, isbn = ?, image_url = ?,
				  description = ?, bookshelf = ?, updated_at = ?
			  WHERE id = ?`

	result, err := querier.ExecContext(ctx, query, updateArgs(book.ID.String(), book)...)
	if err != nil {
		return apperrors.Wrap(err, "failed to update book")
	}
	return requireAffected(result)
}

// Delete removes a Book by ID.
func (s *SQLiteBookRepository) Delete(ctx context.Context, bookID uuid.UUID) error {
	querier := database.GetTx(ctx, s.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM books WHERE id = ?`, bookID.String())
	if err != nil {
		return apperrors.Wrap(err, "failed to delete book")
	}
	return requireAffected(result)
}

// NewSQLiteBookRepository creates a new SQLite Book repository.
func NewSQLiteBookRepository(db *sql.DB) *SQLiteBookRepository {
	return &SQLiteBookRepository{db: db}
}
