// Package mocks provides mock implementations of the book use case interfaces.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	bookDomain "github.com/allisson/gatekeeper/internal/book/domain"
)

// MockBookUseCase is a mock implementation of BookUseCase.
type MockBookUseCase struct {
	mock.Mock
}

func book(args mock.Arguments) (*bookDomain.Book, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bookDomain.Book), args.Error(1)
}

// List mocks the List method.
func (m *MockBookUseCase) List(ctx context.Context) ([]*bookDomain.Book, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*bookDomain.Book), args.Error(1)
}

// Get mocks the Get method.
func (m *MockBookUseCase) Get(ctx context.Context, bookID uuid.UUID) (*bookDomain.Book, error) {
	return book(m.Called(ctx, bookID))
}

// Create mocks the Create method.
func (m *MockBookUseCase) Create(ctx context.Context, input *bookDomain.Input) (*bookDomain.Book, error) {
	return book(m.Called(ctx, input))
}

// Replace mocks the Replace method.
func (m *MockBookUseCase) Replace(
	ctx context.Context,
	bookID uuid.UUID,
	input *bookDomain.Input,
) (*bookDomain.Book, error) {
	return book(m.Called(ctx, bookID, input))
}

// Update mocks the Update method.
func (m *MockBookUseCase) Update(
	ctx context.Context,
	bookID uuid.UUID,
	patch *bookDomain.Patch,
) (*bookDomain.Book, error) {
	return book(m.Called(ctx, bookID, patch))
}

// Delete mocks the Delete method.
func (m *MockBookUseCase) Delete(ctx context.Context, bookID uuid.UUID) error {
	args := m.Called(ctx, bookID)
	return args.Error(0)
}

// Random mocks the Random method.
func (m *MockBookUseCase) Random(ctx context.Context) (*bookDomain.Book, error) {
	return book(m.Called(ctx))
}
