package http

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	bookDomain "github.com/allisson/gatekeeper/internal/book/domain"
	"github.com/allisson/gatekeeper/internal/book/http/dto"
	"github.com/allisson/gatekeeper/internal/book/usecase/mocks"
	apperrors "github.com/allisson/gatekeeper/internal/errors"
)

func newTestBook() *bookDomain.Book {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return &bookDomain.Book{
		ID:          uuid.Must(uuid.NewV7()),
		Title:       "Dune",
		Author:      "Frank Herbert",
		ISBN:        "9780306406157",
		ImageURL:    "https://covers.openlibrary.org/b/isbn/9780306406157-L.jpg",
		Description: "Desert planet.",
		Bookshelf:   "fiction",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func decodeBook(t *testing.T, raw json.RawMessage) dto.BookResponse {
	t.Helper()

	var response dto.BookResponse
	require.NoError(t, json.Unmarshal(raw, &response))
	return response
}

func TestResourceHandle_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("Collection", func(t *testing.T) {
		useCase := &mocks.MockBookUseCase{}
		handle := NewResourceHandle(useCase)
		book := newTestBook()
		useCase.On("List", ctx).Return([]*bookDomain.Book{book}, nil).Once()

		raw, err := handle.Get(ctx, "")
		require.NoError(t, err)

		var books []dto.BookResponse
		require.NoError(t, json.Unmarshal(raw, &books))
		require.Len(t, books, 1)
		assert.Equal(t, book.ID.String(), books[0].ID)
	})

	t.Run("EmptyCollection", func(t *testing.T) {
		useCase := &mocks.MockBookUseCase{}
		handle := NewResourceHandle(useCase)
		useCase.On("List", ctx).Return([]*bookDomain.Book{}, nil).Once()

		raw, err := handle.Get(ctx, "")
		require.NoError(t, err)
		assert.JSONEq(t, `[]`, string(raw))
	})

	t.Run("Single", func(t *testing.T) {
		useCase := &mocks.MockBookUseCase{}
		handle := NewResourceHandle(useCase)
		book := newTestBook()
		useCase.On("Get", ctx, book.ID).Return(book, nil).Once()

		raw, err := handle.Get(ctx, book.ID.String())
		require.NoError(t, err)

		response := decodeBook(t, raw)
		assert.Equal(t, "Dune", response.Title)
		assert.Equal(t, "fiction", response.Bookshelf)
	})

	t.Run("MalformedID", func(t *testing.T) {
		useCase := &mocks.MockBookUseCase{}
		handle := NewResourceHandle(useCase)

		_, err := handle.Get(ctx, "42")
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		useCase.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})
}

func TestResourceHandle_Post(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		useCase := &mocks.MockBookUseCase{}
		handle := NewResourceHandle(useCase)
		book := newTestBook()
		useCase.On("Create", ctx, mock.MatchedBy(func(input *bookDomain.Input) bool {
			return input.Title == "Dune" && input.ImageURL == book.ImageURL
		})).Return(book, nil).Once()

		raw, err := handle.Post(ctx, json.RawMessage(
			`{"id":"ignored","title":"Dune","image_url":"`+book.ImageURL+`"}`,
		))
		require.NoError(t, err)
		assert.Equal(t, book.ID.String(), decodeBook(t, raw).ID)
		useCase.AssertExpectations(t)
	})

	t.Run("WrongFieldType", func(t *testing.T) {
		handle := NewResourceHandle(&mocks.MockBookUseCase{})

		_, err := handle.Post(ctx, json.RawMessage(`{"title":42}`))
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})
}

func TestResourceHandle_Put(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		useCase := &mocks.MockBookUseCase{}
		handle := NewResourceHandle(useCase)
		book := newTestBook()
		useCase.On("Replace", ctx, book.ID, mock.AnythingOfType("*domain.Input")).Return(book, nil).Once()

		raw, err := handle.Put(ctx, book.ID.String(), json.RawMessage(`{"title":"Dune"}`))
		require.NoError(t, err)
		assert.Equal(t, book.ID.String(), decodeBook(t, raw).ID)
	})

	t.Run("MalformedID", func(t *testing.T) {
		handle := NewResourceHandle(&mocks.MockBookUseCase{})

		_, err := handle.Put(ctx, "abc", json.RawMessage(`{}`))
		assert.ErrorIs(t, err, bookDomain.ErrInvalidBookID)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})
}

func TestResourceHandle_Patch(t *testing.T) {
	ctx := context.Background()

	t.Run("OnlyPresentFields", func(t *testing.T) {
		useCase := &mocks.MockBookUseCase{}
		handle := NewResourceHandle(useCase)
		book := newTestBook()
		useCase.On("Update", ctx, book.ID, mock.MatchedBy(func(patch *bookDomain.Patch) bool {
			return patch.Bookshelf != nil && *patch.Bookshelf == "classics" &&
				patch.Title == nil && patch.Author == nil
		})).Return(book, nil).Once()

		_, err := handle.Patch(ctx, book.ID.String(), json.RawMessage(`{"bookshelf":"classics"}`))
		require.NoError(t, err)
		useCase.AssertExpectations(t)
	})

	t.Run("Missing", func(t *testing.T) {
		useCase := &mocks.MockBookUseCase{}
		handle := NewResourceHandle(useCase)
		bookID := uuid.Must(uuid.NewV7())
		useCase.On("Update", ctx, bookID, mock.Anything).Return(nil, bookDomain.ErrBookNotFound).Once()

		_, err := handle.Patch(ctx, bookID.String(), json.RawMessage(`{"title":"x"}`))
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestResourceHandle_Delete(t *testing.T) {
	ctx := context.Background()
	useCase := &mocks.MockBookUseCase{}
	handle := NewResourceHandle(useCase)
	bookID := uuid.Must(uuid.NewV7())
	useCase.On("Delete", ctx, bookID).Return(nil).Once()

	require.NoError(t, handle.Delete(ctx, bookID.String()))
	assert.ErrorIs(t, handle.Delete(ctx, "nope"), bookDomain.ErrBookNotFound)
	useCase.AssertExpectations(t)
}

func TestResourceHandle_Random(t *testing.T) {
	ctx := context.Background()
	useCase := &mocks.MockBookUseCase{}
	handle := NewResourceHandle(useCase)
	book := newTestBook()

	useCase.On("Random", ctx).Return(book, nil).Once()
	raw, err := handle.Random(ctx)
	require.NoError(t, err)
	assert.Equal(t, book.ID.String(), decodeBook(t, raw).ID)

	useCase.On("Random", ctx).Return(nil, assert.AnError).Once()
	_, err = handle.Random(ctx)
	assert.ErrorIs(t, err, assert.AnError)
}
