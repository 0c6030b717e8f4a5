package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookDomain "github.com/allisson/gatekeeper/internal/book/domain"
)

var bookRowColumns = []string{
	"id", "title", "author", "isbn", "image_url", "description", "bookshelf", "created_at", "updated_at",
}

func TestPostgreSQLBookRepository(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	repo := NewPostgreSQLBookRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()
	book := newTestBook("Kindred", now)

	t.Run("Create", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO books")).
			WithArgs(book.ID, "Kindred", book.Author, book.ISBN, book.ImageURL, book.Description,
				book.Bookshelf, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Create(ctx, book))
	})

	t.Run("Upsert", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (id) DO UPDATE SET")).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Upsert(ctx, book))
	})

	t.Run("GetByID", func(t *testing.T) {
		rows := sqlmock.NewRows(bookRowColumns).
			AddRow(book.ID.String(), "Kindred", book.Author, book.ISBN, book.ImageURL,
				book.Description, book.Bookshelf, now, now)
		mock.ExpectQuery(regexp.QuoteMeta("FROM books WHERE id = $1")).
			WithArgs(book.ID).
			WillReturnRows(rows)

		retrieved, err := repo.GetByID(ctx, book.ID)
		require.NoError(t, err)
		assert.Equal(t, book.ID, retrieved.ID)
		assert.Equal(t, "Kindred", retrieved.Title)
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("FROM books WHERE id = $1")).
			WillReturnRows(sqlmock.NewRows(bookRowColumns))

		_, err := repo.GetByID(ctx, book.ID)
		assert.ErrorIs(t, err, bookDomain.ErrBookNotFound)
	})

	t.Run("List_Error", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("FROM books ORDER BY")).
			WillReturnError(assert.AnError)

		_, err := repo.List(ctx)
		assert.ErrorIs(t, err, assert.AnError)
	})

	t.Run("Update_Missing", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta("UPDATE books")).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Update(ctx, book), bookDomain.ErrBookNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM books WHERE id = $1")).
			WithArgs(book.ID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Delete(ctx, book.ID))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLBookRepository(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	repo := NewMySQLBookRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()
	book := newTestBook("Parable of the Sower", now)
	binaryID, err := book.ID.MarshalBinary()
	require.NoError(t, err)

	t.Run("Create", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO books")).
			WithArgs(binaryID, book.Title, book.Author, book.ISBN, book.ImageURL, book.Description,
				book.Bookshelf, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Create(ctx, book))
	})

	t.Run("Upsert", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta("ON DUPLICATE KEY UPDATE")).
			WithArgs(binaryID, book.Title, book.Author, book.ISBN, book.ImageURL, book.Description,
				book.Bookshelf, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 2))

		require.NoError(t, repo.Upsert(ctx, book))
	})

	t.Run("GetByID", func(t *testing.T) {
		rows := sqlmock.NewRows(bookRowColumns).
			AddRow(binaryID, book.Title, book.Author, book.ISBN, book.ImageURL,
				book.Description, book.Bookshelf, now, now)
		mock.ExpectQuery(regexp.QuoteMeta("FROM books WHERE id = ?")).
			WithArgs(binaryID).
			WillReturnRows(rows)

		retrieved, err := repo.GetByID(ctx, book.ID)
		require.NoError(t, err)
		assert.Equal(t, book.ID, retrieved.ID)
	})

	t.Run("List", func(t *testing.T) {
		rows := sqlmock.NewRows(bookRowColumns).
			AddRow(binaryID, book.Title, book.Author, book.ISBN, book.ImageURL,
				book.Description, book.Bookshelf, now, now)
		mock.ExpectQuery(regexp.QuoteMeta("FROM books ORDER BY")).WillReturnRows(rows)

		books, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, books, 1)
		assert.Equal(t, book.ID, books[0].ID)
	})

	t.Run("Update", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta("UPDATE books")).
			WithArgs(book.Title, book.Author, book.ISBN, book.ImageURL, book.Description,
				book.Bookshelf, sqlmock.AnyArg(), binaryID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Update(ctx, book))
	})

	t.Run("Delete_Missing", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM books WHERE id = ?")).
			WithArgs(binaryID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Delete(ctx, book.ID), bookDomain.ErrBookNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
