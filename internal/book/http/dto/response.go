package dto

import (
	"time"

	bookDomain "github.com/allisson/gatekeeper/internal/book/domain"
)

// BookResponse is the JSON representation of a book.
type BookResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	ISBN        string    `json:"isbn"`
	ImageURL    string    `json:"image_url"`
	Description string    `json:"description"`
	Bookshelf   string    `json:"bookshelf"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// MapBookToResponse converts a domain book to its response.
func MapBookToResponse(book *bookDomain.Book) BookResponse {
	return BookResponse{
		ID:          book.ID.String(),
		Title:       book.Title,
		Author:      book.Author,
		ISBN:        book.ISBN,
		ImageURL:    book.ImageURL,
		Description: book.Description,
		Bookshelf:   book.Bookshelf,
		CreatedAt:   book.CreatedAt,
		UpdatedAt:   book.UpdatedAt,
	}
}

// MapBooksToResponse converts domain books to a JSON array body. The
// collection is a bare array, never null.
func MapBooksToResponse(books []*bookDomain.Book) []BookResponse {
	responses := make([]BookResponse, 0, len(books))
	for _, book := range books {
		responses = append(responses, MapBookToResponse(book))
	}
	return responses
}
