package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	bookDomain "github.com/allisson/gatekeeper/internal/book/domain"
	"github.com/allisson/gatekeeper/internal/database"
	apperrors "github.com/allisson/gatekeeper/internal/errors"
)

// MySQLBookRepository implements Book persistence for MySQL.
// IDs are stored as BINARY(16).
type MySQLBookRepository struct {
	db *sql.DB
}

// Create inserts a new Book.
func (m *MySQLBookRepository) Create(ctx context.Context, book *bookDomain.Book) error {
	querier := database.GetTx(ctx, m.db)

	id, err := book.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal book id")
	}

	query := `INSERT INTO books (` + bookColumns + `)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	if _, err := querier.ExecContext(ctx, query, bookArgs(id, book)...); err != nil {
		return apperrors.Wrap(err, "failed to create book")
	}
	return nil
}

// Upsert inserts the Book or replaces every writable field of an existing one.
func (m *MySQLBookRepository) Upsert(ctx context.Context, book *bookDomain.Book) error {
	querier := database.GetTx(ctx, m.db)

	id, err := book.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal book id")
	}

	query := `INSERT INTO books (` + bookColumns + `)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			  ON DUPLICATE KEY UPDATE
				title = VALUES(title),
				author = VALUES(author),
				isbn = VALUES(isbn),
				image_url = VALUES(image_url),
				description = VALUES(description),
				bookshelf = VALUES(bookshelf),
				updated_at = VALUES(updated_at)`

	if _, err := querier.ExecContext(ctx, query, bookArgs(id, book)...); err != nil {
		return apperrors.Wrap(err, "failed to upsert book")
	}
	return nil
}

// GetByID retrieves a Book by ID.
func (m *MySQLBookRepository) GetByID(ctx context.Context, bookID uuid.UUID) (*bookDomain.Book, error) {
	querier := database.GetTx(ctx, m.db)

	id, err := bookID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal book id")
	}

	query := `SELECT ` + bookColumns + ` FROM books WHERE id = ?`

	return scanBook(querier.QueryRowContext(ctx, query, id))
}

// List retrieves every Book ordered by creation time.
func (m *MySQLBookRepository) List(ctx context.Context) ([]*bookDomain.Book, error) {
	querier := database.GetTx(ctx, m.db)

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

// Update overwrites the writable fields of an existing Book. MySQL reports
// changed rows, and updated_at always changes, so zero affected rows means
// the book is missing.
func (m *MySQLBookRepository) Update(ctx context.Context, book *bookDomain.Book) error {
	querier := database.GetTx(ctx, m.db)

	id, err := book.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal book id")
	}

	query := `UPDATE books
			  SET title = ?, author = ?, isbn = ?, image_url = ?,
				  description = ?, bookshelf = ?, updated_at = ?
			  WHERE id = ?`

	result, err := querier.ExecContext(ctx, query, updateArgs(id, book)...)
	if err != nil {
		return apperrors.Wrap(err, "failed to update book")
	}
	return requireAffected(result)
}

// Delete removes a Book by ID.
func (m *MySQLBookRepository) Delete(ctx context.Context, bookID uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	id, err := bookID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal book id")
	}

	result, err := querier.ExecContext(ctx, `DELETE FROM books WHERE id = ?`, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete book")
	}
	return requireAffected(result)
}

// NewMySQLBookRepository creates a new MySQL Book repository.
func NewMySQLBookRepository(db *sql.DB) *MySQLBookRepository {
	return &MySQLBookRepository{db: db}
}
