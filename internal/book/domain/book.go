// Package domain defines the book resource served under /api/v1/books.
package domain

import (
	"time"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	appValidation "github.com/allisson/gatekeeper/internal/validation"
)

// Book is a catalogued book. Every descriptive field is required.
type Book struct {
	ID          uuid.UUID
	Title       string
	Author      string
	ISBN        string
	ImageURL    string
	Description string
	Bookshelf   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Input holds the writable fields of a book. The json tags name the fields
// in validation errors.
type Input struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	ISBN        string `json:"isbn"`
	ImageURL    string `json:"image_url"`
	Description string `json:"description"`
	Bookshelf   string `json:"bookshelf"`
}

// Validate checks that every field is present and well formed.
func (i *Input) Validate() error {
	err := validation.ValidateStruct(i,
		validation.Field(&i.Title, validation.Required, appValidation.NotBlank, validation.Length(1, 512)),
		validation.Field(&i.Author, validation.Required, appValidation.NotBlank, validation.Length(1, 255)),
		validation.Field(&i.ISBN, validation.Required, appValidation.ISBN),
		validation.Field(&i.ImageURL, validation.Required, appValidation.HTTPURL, validation.Length(1, 2048)),
		validation.Field(&i.Description, validation.Required, appValidation.NotBlank),
		validation.Field(&i.Bookshelf, validation.Required, appValidation.NotBlank, validation.Length(1, 255)),
	)
	return appValidation.WrapValidationError(err)
}

// Patch carries the fields of a partial update. Nil fields are left unchanged.
type Patch struct {
	Title       *string
	Author      *string
	ISBN        *string
	ImageURL    *string
	Description *string
	Bookshelf   *string
}

// Apply returns the input obtained by merging the patch into book.
func (p *Patch) Apply(book *Book) *Input {
	input := book.Input()
	if p.Title != nil {
		input.Title = *p.Title
	}
	if p.Author != nil {
		input.Author = *p.Author
	}
	if p.ISBN != nil {
		input.ISBN = *p.ISBN
	}
	if p.ImageURL != nil {
		input.ImageURL = *p.ImageURL
	}
	if p.Description != nil {
		input.Description = *p.Description
	}
	if p.Bookshelf != nil {
		input.Bookshelf = *p.Bookshelf
	}
	return input
}

// Input returns the writable fields of the book.
func (b *Book) Input() *Input {
	return &Input{
		Title:       b.Title,
		Author:      b.Author,
		ISBN:        b.ISBN,
		ImageURL:    b.ImageURL,
		Description: b.Description,
		Bookshelf:   b.Bookshelf,
	}
}

// Set copies input into the book and bumps UpdatedAt.
func (b *Book) Set(input *Input, now time.Time) {
	b.Title = input.Title
	b.Author = input.Author
	b.ISBN = input.ISBN
	b.ImageURL = input.ImageURL
	b.Description = input.Description
	b.Bookshelf = input.Bookshelf
	b.UpdatedAt = now
}
