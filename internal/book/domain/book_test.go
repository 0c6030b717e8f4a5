package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	apperrors "github.com/allisson/gatekeeper/internal/errors"
)

func validInput() *Input {
	return &Input{
		Title:       "The Pragmatic Programmer",
		Author:      "David Thomas",
		ISBN:        "978-0-306-40615-7",
		ImageURL:    "https://covers.openlibrary.org/b/isbn/9780306406157-L.jpg",
		Description: "From journeyman to master.",
		Bookshelf:   "engineering",
	}
}

func TestInput_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Input)
		wantErr string
	}{
		{name: "Valid", mutate: func(*Input) {}},
		{name: "MissingTitle", mutate: func(i *Input) { i.Title = "" }, wantErr: "title"},
		{name: "BlankAuthor", mutate: func(i *Input) { i.Author = "   " }, wantErr: "author"},
		{name: "InvalidISBN", mutate: func(i *Input) { i.ISBN = "12345" }, wantErr: "isbn"},
		{name: "InvalidImageURL", mutate: func(i *Input) { i.ImageURL = "cover.jpg" }, wantErr: "image"},
		{name: "MissingDescription", mutate: func(i *Input) { i.Description = "" }, wantErr: "description"},
		{name: "MissingBookshelf", mutate: func(i *Input) { i.Bookshelf = "" }, wantErr: "bookshelf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(input)

			err := input.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestPatch_Apply(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	book := &Book{ID: uuid.Must(uuid.NewV7()), CreatedAt: now}
	book.Set(validInput(), now)

	title := "Second Edition"
	shelf := ""
	input := (&Patch{Title: &title, Bookshelf: &shelf}).Apply(book)

	assert.Equal(t, "Second Edition", input.Title)
	assert.Equal(t, "", input.Bookshelf)
	assert.Equal(t, book.Author, input.Author)
	assert.Equal(t, book.ISBN, input.ISBN)
	assert.Equal(t, "The Pragmatic Programmer", book.Title, "book is left untouched")
}

func TestBook_Set(t *testing.T) {
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	updated := created.Add(time.Hour)
	book := &Book{CreatedAt: created, UpdatedAt: created}

	book.Set(validInput(), updated)

	assert.Equal(t, validInput(), book.Input())
	assert.Equal(t, created, book.CreatedAt)
	assert.Equal(t, updated, book.UpdatedAt)
}
