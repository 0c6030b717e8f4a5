package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	bookDomain "github.com/allisson/gatekeeper/internal/book/domain"
	"github.com/allisson/gatekeeper/internal/database"
)

type bookUseCase struct {
	txManager database.TxManager
	bookRepo  BookRepository
}

// List returns every book ordered by creation time.
func (b *bookUseCase) List(ctx context.Context) ([]*bookDomain.Book, error) {
	return b.bookRepo.List(ctx)
}

// Get returns a single book.
func (b *bookUseCase) Get(ctx context.Context, bookID uuid.UUID) (*bookDomain.Book, error) {
	return b.bookRepo.GetByID(ctx, bookID)
}

// Create validates input and stores a new book.
func (b *bookUseCase) Create(ctx context.Context, input *bookDomain.Input) (*bookDomain.Book, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	book := &bookDomain.Book{
		ID:        uuid.Must(uuid.NewV7()),
		CreatedAt: now,
	}
	book.Set(input, now)

	if err := b.bookRepo.Create(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

// Replace upserts the book and returns the stored row, whose created_at
// survives from the original insert.
func (b *bookUseCase) Replace(
	ctx context.Context,
	bookID uuid.UUID,
	input *bookDomain.Input,
) (*bookDomain.Book, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var stored *bookDomain.Book
	err := b.txManager.WithTx(ctx, func(ctx context.Context) error {
		now := time.Now().UTC()
		book := &bookDomain.Book{ID: bookID, CreatedAt: now}
		book.Set(input, now)

		if err := b.bookRepo.Upsert(ctx, book); err != nil {
			return err
		}

		var err error
		stored, err = b.bookRepo.GetByID(ctx, bookID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return stored, nil
}

// Update loads the book, merges patch and writes it back in one transaction.
func (b *bookUseCase) Update(
	ctx context.Context,
	bookID uuid.UUID,
	patch *bookDomain.Patch,
) (*bookDomain.Book, error) {
	var book *bookDomain.Book
	err := b.txManager.WithTx(ctx, func(ctx context.Context) error {
		var err error
		book, err = b.bookRepo.GetByID(ctx, bookID)
		if err != nil {
			return err
		}

		input := patch.Apply(book)
		if err := input.Validate(); err != nil {
			return err
		}

		book.Set(input, time.Now().UTC())
		return b.bookRepo.Update(ctx, book)
	})
	if err != nil {
		return nil, err
	}
	return book, nil
}

// Delete removes a book.
func (b *bookUseCase) Delete(ctx context.Context, bookID uuid.UUID) error {
	return b.bookRepo.Delete(ctx, bookID)
}

// Random creates a book filled with generated values.
func (b *bookUseCase) Random(ctx context.Context) (*bookDomain.Book, error) {
	return b.Create(ctx, randomInput())
}

// NewBookUseCase creates a new BookUseCase.
func NewBookUseCase(txManager database.TxManager, bookRepo BookRepository) BookUseCase {
	return &bookUseCase{
		txManager: txManager,
		bookRepo:  bookRepo,
	}
}
