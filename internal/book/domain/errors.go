package domain

import (
	apperrors "github.com/allisson/gatekeeper/internal/errors"
)

// Book errors.
var (
	// ErrBookNotFound indicates the book does not exist.
	ErrBookNotFound = apperrors.Wrap(apperrors.ErrNotFound, "book not found")

	// ErrInvalidBookID indicates a book id that is not a UUID.
	ErrInvalidBookID = apperrors.Wrap(apperrors.ErrInvalidInput, "book id must be a UUID")
)
