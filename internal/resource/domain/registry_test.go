package domain

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/gatekeeper/internal/errors"
)

type stubHandle struct{}

func (stubHandle) Get(context.Context, string) (json.RawMessage, error) { return json.RawMessage(`[]`), nil }
func (stubHandle) Post(context.Context, json.RawMessage) (json.RawMessage, error) {
	return json.RawMessage(`{}`), nil
}
func (stubHandle) Put(context.Context, string, json.RawMessage) (json.RawMessage, error) {
	return json.RawMessage(`{}`), nil
}
func (stubHandle) Patch(context.Context, string, json.RawMessage) (json.RawMessage, error) {
	return json.RawMessage(`{}`), nil
}
func (stubHandle) Delete(context.Context, string) error { return nil }

func TestSanitize(t *testing.T) {
	tests := []struct {
		segment string
		want    string
	}{
		{segment: "books", want: "books"},
		{segment: "Book_Shelf-2", want: "Book_Shelf-2"},
		{segment: "../books", want: "books"},
		{segment: "bo oks;", want: "books"},
		{segment: "bøøks", want: "bks"},
		{segment: "%2e%2e", want: "2e2e"},
		{segment: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.segment, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.segment))
		})
	}
}

func TestRegistry_Register(t *testing.T) {
	registry := NewRegistry()

	require.NoError(t, registry.Register("books", stubHandle{}))

	assert.Error(t, registry.Register("books", stubHandle{}), "duplicate")
	assert.Error(t, registry.Register("", stubHandle{}), "empty")
	assert.Error(t, registry.Register("../etc", stubHandle{}), "unsanitized")
	assert.Error(t, registry.Register("authors", nil), "nil handle")
	assert.Panics(t, func() { registry.MustRegister("books", stubHandle{}) })

	assert.Equal(t, []string{"books"}, registry.Names())
}

func TestRegistry_Resolve(t *testing.T) {
	registry := NewRegistry()
	registry.MustRegister("books", stubHandle{})

	t.Run("Registered", func(t *testing.T) {
		name, handle, err := registry.Resolve("books")
		require.NoError(t, err)
		assert.Equal(t, "books", name)
		assert.NotNil(t, handle)
	})

	t.Run("SanitizedToRegistered", func(t *testing.T) {
		name, handle, err := registry.Resolve("bo<o>ks")
		require.NoError(t, err)
		assert.Equal(t, "books", name)
		assert.NotNil(t, handle)
	})

	t.Run("CaseSensitive", func(t *testing.T) {
		name, handle, err := registry.Resolve("Books")
		assert.Equal(t, "Books", name)
		assert.Nil(t, handle)
		assert.ErrorIs(t, err, ErrUnknownResource)
	})

	t.Run("Unknown", func(t *testing.T) {
		name, handle, err := registry.Resolve("../../authors")
		assert.Equal(t, "authors", name)
		assert.Nil(t, handle)
		assert.ErrorIs(t, err, ErrUnknownResource)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}
