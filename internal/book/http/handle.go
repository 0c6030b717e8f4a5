// Package http exposes the book catalog as a resource handle served by the
// generic CRUD dispatcher.
package http

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	bookDomain "github.com/allisson/gatekeeper/internal/book/domain"
	"github.com/allisson/gatekeeper/internal/book/http/dto"
	bookUseCase "github.com/allisson/gatekeeper/internal/book/usecase"
	apperrors "github.com/allisson/gatekeeper/internal/errors"
	resourceDomain "github.com/allisson/gatekeeper/internal/resource/domain"
)

// ResourceName is the name books are registered under.
const ResourceName = "books"

// ResourceHandle adapts BookUseCase to the resource.Handle contract.
type ResourceHandle struct {
	useCase bookUseCase.BookUseCase
}

var (
	_ resourceDomain.Handle  = (*ResourceHandle)(nil)
	_ resourceDomain.Sampler = (*ResourceHandle)(nil)
)

// NewResourceHandle creates a handle serving books.
func NewResourceHandle(useCase bookUseCase.BookUseCase) *ResourceHandle {
	return &ResourceHandle{useCase: useCase}
}

// Get returns every book, or the book identified by id.
func (h *ResourceHandle) Get(ctx context.Context, id string) (json.RawMessage, error) {
	if id == "" {
		books, err := h.useCase.List(ctx)
		if err != nil {
			return nil, err
		}
		return json.Marshal(dto.MapBooksToResponse(books))
	}

	bookID, err := existingID(id)
	if err != nil {
		return nil, err
	}

	book, err := h.useCase.Get(ctx, bookID)
	if err != nil {
		return nil, err
	}
	return json.Marshal(dto.MapBookToResponse(book))
}

// Post creates a book.
func (h *ResourceHandle) Post(ctx context.Context, body json.RawMessage) (json.RawMessage, error) {
	var req dto.BookRequest
	if err := decode(body, &req); err != nil {
		return nil, err
	}

	book, err := h.useCase.Create(ctx, req.ToInput())
	if err != nil {
		return nil, err
	}
	return json.Marshal(dto.MapBookToResponse(book))
}

// Put replaces the book identified by id, creating it when missing.
func (h *ResourceHandle) Put(ctx context.Context, id string, body json.RawMessage) (json.RawMessage, error) {
	bookID, err := uuid.Parse(id)
	if err != nil {
		return nil, bookDomain.ErrInvalidBookID
	}

	var req dto.BookRequest
	if err := decode(body, &req); err != nil {
		return nil, err
	}

	book, err := h.useCase.Replace(ctx, bookID, req.ToInput())
	if err != nil {
		return nil, err
	}
	return json.Marshal(dto.MapBookToResponse(book))
}

// Patch merges body into the book identified by id.
func (h *ResourceHandle) Patch(ctx context.Context, id string, body json.RawMessage) (json.RawMessage, error) {
	bookID, err := existingID(id)
	if err != nil {
		return nil, err
	}

	var req dto.PatchBookRequest
	if err := decode(body, &req); err != nil {
		return nil, err
	}

	book, err := h.useCase.Update(ctx, bookID, req.ToPatch())
	if err != nil {
		return nil, err
	}
	return json.Marshal(dto.MapBookToResponse(book))
}

// Delete removes the book identified by id.
func (h *ResourceHandle) Delete(ctx context.Context, id string) error {
	bookID, err := existingID(id)
	if err != nil {
		return err
	}
	return h.useCase.Delete(ctx, bookID)
}

// Random creates a book filled with generated values.
func (h *ResourceHandle) Random(ctx context.Context) (json.RawMessage, error) {
	book, err := h.useCase.Random(ctx)
	if err != nil {
		return nil, err
	}
	return json.Marshal(dto.MapBookToResponse(book))
}

// existingID parses the id of a book that must already exist. A malformed id
// cannot name a stored book, so it is reported as not found.
func existingID(id string) (uuid.UUID, error) {
	bookID, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, bookDomain.ErrBookNotFound
	}
	return bookID, nil
}

func decode(body json.RawMessage, v any) error {
	if err := json.Unmarshal(body, v); err != nil {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "invalid book body")
	}
	return nil
}
