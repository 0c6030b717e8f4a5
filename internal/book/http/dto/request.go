// Package dto provides the JSON shapes of the books resource.
package dto

import (
	bookDomain "github.com/allisson/gatekeeper/internal/book/domain"
)

// BookRequest is the body of POST and PUT. Unknown fields, including id and
// timestamps, are ignored.
type BookRequest struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	ISBN        string `json:"isbn"`
	ImageURL    string `json:"image_url"`
	Description string `json:"description"`
	Bookshelf   string `json:"bookshelf"`
}

// ToInput converts the request to a domain input.
func (r *BookRequest) ToInput() *bookDomain.Input {
	return &bookDomain.Input{
		Title:       r.Title,
		Author:      r.Author,
		ISBN:        r.ISBN,
		ImageURL:    r.ImageURL,
		Description: r.Description,
		Bookshelf:   r.Bookshelf,
	}
}

// PatchBookRequest is the body of PATCH. Absent fields stay unchanged.
type PatchBookRequest struct {
	Title       *string `json:"title"`
	Author      *string `json:"author"`
	ISBN        *string `json:"isbn"`
	ImageURL    *string `json:"image_url"`
	Description *string `json:"description"`
	Bookshelf   *string `json:"bookshelf"`
}

// ToPatch converts the request to a domain patch.
func (r *PatchBookRequest) ToPatch() *bookDomain.Patch {
	return &bookDomain.Patch{
		Title:       r.Title,
		Author:      r.Author,
		ISBN:        r.ISBN,
		ImageURL:    r.ImageURL,
		Description: r.Description,
		Bookshelf:   r.Bookshelf,
	}
}
