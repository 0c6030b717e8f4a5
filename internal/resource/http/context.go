// Package http provides the resource resolver middleware and the generic CRUD
// dispatcher serving every registered resource under /api/v1/:model.
package http

import (
	"context"

	"github.com/allisson/gatekeeper/internal/resource/domain"
)

// handleKey is a context key type for storing the resolved resource handle.
type handleKey struct{}

// WithHandle stores the resolved resource handle in the context.
func WithHandle(ctx context.Context, handle domain.Handle) context.Context {
	return context.WithValue(ctx, handleKey{}, handle)
}

// GetHandle retrieves the resolved resource handle from the context.
func GetHandle(ctx context.Context) (domain.Handle, bool) {
	handle, ok := ctx.Value(handleKey{}).(domain.Handle)
	return handle, ok && handle != nil
}
