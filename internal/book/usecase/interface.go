// Package usecase implements the book catalog operations behind the books resource.
package usecase

import (
	"context"

	"github.com/google/uuid"

	bookDomain "github.com/allisson/gatekeeper/internal/book/domain"
)

// BookRepository defines persistence operations for books.
// Implementations must support transaction-aware operations via context propagation.
type BookRepository interface {
	Create(ctx context.Context, book *bookDomain.Book) error

	// Upsert inserts the book or replaces the writable fields of an existing one.
	Upsert(ctx context.Context, book *bookDomain.Book) error

	// GetByID returns ErrBookNotFound if the book does not exist.
	GetByID(ctx context.Context, bookID uuid.UUID) (*bookDomain.Book, error)

	List(ctx context.Context) ([]*bookDomain.Book, error)

	// Update returns ErrBookNotFound if the book does not exist.
	Update(ctx context.Context, book *bookDomain.Book) error

	// Delete returns ErrBookNotFound if the book does not exist.
	Delete(ctx context.Context, bookID uuid.UUID) error
}

// BookUseCase defines the book catalog operations.
type BookUseCase interface {
	// List returns every book ordered by creation time.
	List(ctx context.Context) ([]*bookDomain.Book, error)

	// Get returns a single book.
	Get(ctx context.Context, bookID uuid.UUID) (*bookDomain.Book, error)

	// Create validates input and stores a new book with a generated id.
	Create(ctx context.Context, input *bookDomain.Input) (*bookDomain.Book, error)

	// Replace validates input and stores it under bookID, creating the book
	// when it does not exist.
	Replace(ctx context.Context, bookID uuid.UUID, input *bookDomain.Input) (*bookDomain.Book, error)

	// Update merges patch into an existing book. It never creates a book.
	Update(ctx context.Context, bookID uuid.UUID, patch *bookDomain.Patch) (*bookDomain.Book, error)

	// Delete removes a book.
	Delete(ctx context.Context, bookID uuid.UUID) error

	// Random creates a book filled with generated values.
	Random(ctx context.Context) (*bookDomain.Book, error)
}
