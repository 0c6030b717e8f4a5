package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	bookDomain "github.com/allisson/gatekeeper/internal/book/domain"
	"github.com/allisson/gatekeeper/internal/metrics"
)

// bookUseCaseWithMetrics decorates BookUseCase with metrics instrumentation.
type bookUseCaseWithMetrics struct {
	next    BookUseCase
	metrics metrics.BusinessMetrics
}

// NewBookUseCaseWithMetrics wraps a BookUseCase with metrics recording.
func NewBookUseCaseWithMetrics(useCase BookUseCase, m metrics.BusinessMetrics) BookUseCase {
	return &bookUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (b *bookUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	b.metrics.RecordOperation(ctx, "book", operation, status)
	b.metrics.RecordDuration(ctx, "book", operation, time.Since(start), status)
}

// List records metrics for book listing.
func (b *bookUseCaseWithMetrics) List(ctx context.Context) ([]*bookDomain.Book, error) {
	start := time.Now()
	books, err := b.next.List(ctx)
	b.record(ctx, "book_list", start, err)
	return books, err
}

// Get records metrics for book retrieval.
func (b *bookUseCaseWithMetrics) Get(ctx context.Context, bookID uuid.UUID) (*bookDomain.Book, error) {
	start := time.Now()
	book, err := b.next.Get(ctx, bookID)
	b.record(ctx, "book_get", start, err)
	return book, err
}

// Create records metrics for book creation.
func (b *bookUseCaseWithMetrics) Create(
	ctx context.Context,
	input *bookDomain.Input,
) (*bookDomain.Book, error) {
	start := time.Now()
	book, err := b.next.Create(ctx, input)
	b.record(ctx, "book_create", start, err)
	return book, err
}

// Replace records metrics for book replacement.
func (b *bookUseCaseWithMetrics) Replace(
	ctx context.Context,
	bookID uuid.UUID,
	input *bookDomain.Input,
) (*bookDomain.Book, error) {
	start := time.Now()
	book, err := b.next.Replace(ctx, bookID, input)
	b.record(ctx, "book_replace", start, err)
	return book, err
}

// Update records metrics for partial book updates.
func (b *bookUseCaseWithMetrics) Update(
	ctx context.Context,
	bookID uuid.UUID,
	patch *bookDomain.Patch,
) (*bookDomain.Book, error) {
	start := time.Now()
	book, err := b.next.Update(ctx, bookID, patch)
	b.record(ctx, "book_update", start, err)
	return book, err
}

// Delete records metrics for book deletion.
func (b *bookUseCaseWithMetrics) Delete(ctx context.Context, bookID uuid.UUID) error {
	start := time.Now()
	err := b.next.Delete(ctx, bookID)
	b.record(ctx, "book_delete", start, err)
	return err
}

// Random records metrics for random book generation.
func (b *bookUseCaseWithMetrics) Random(ctx context.Context) (*bookDomain.Book, error) {
	start := time.Now()
	book, err := b.next.Random(ctx)
	b.record(ctx, "book_random", start, err)
	return book, err
}
