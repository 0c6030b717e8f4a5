package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/gatekeeper/internal/auth/domain"
)

func TestMySQLUserRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	repo := NewMySQLUserRepository(db)
	user := newTestUser("john", time.Now().UTC())
	id, err := user.ID.MarshalBinary()
	require.NoError(t, err)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs(id, "john", user.Password, nil, "user", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	require.NoError(t, repo.Create(context.Background(), user))
	assert.ErrorIs(t, repo.Create(context.Background(), user), authDomain.ErrUserAlreadyExists)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLUserRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	repo := NewMySQLUserRepository(db)
	userID := uuid.Must(uuid.NewV7())
	id, err := userID.MarshalBinary()
	require.NoError(t, err)
	now := time.Now().UTC()
	query := regexp.QuoteMeta("FROM users WHERE id = ?")

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "username", "password", "email", "role", "created_at", "updated_at"}).
			AddRow(id, "john", "hash", nil, "user", now, now)
		mock.ExpectQuery(query).WithArgs(id).WillReturnRows(rows)

		user, err := repo.GetByID(context.Background(), userID)
		require.NoError(t, err)
		assert.Equal(t, userID, user.ID)
		assert.Equal(t, "john", user.Username)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs(id).WillReturnRows(sqlmock.NewRows([]string{"id"}))

		user, err := repo.GetByID(context.Background(), userID)
		assert.Nil(t, user)
		assert.ErrorIs(t, err, authDomain.ErrUserNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLRoleRepository(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	repo := NewMySQLRoleRepository(db)
	role := newTestRole("admin", authDomain.AllCapabilities()...)
	id, err := role.ID.MarshalBinary()
	require.NoError(t, err)

	t.Run("Create", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO roles")).
			WithArgs(id, "admin", `["create","read","update","delete"]`, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Create(context.Background(), role))
	})

	t.Run("Create_Duplicate", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO roles")).
			WillReturnError(&mysql.MySQLError{Number: 1062})

		assert.ErrorIs(t, repo.Create(context.Background(), role), authDomain.ErrRoleAlreadyExists)
	})

	t.Run("List", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "name", "capabilities", "created_at"}).
			AddRow(id, "admin", []byte(`["create","read","update","delete"]`), role.CreatedAt).
			AddRow(id, "user", []byte(`["read"]`), role.CreatedAt)
		mock.ExpectQuery(regexp.QuoteMeta("FROM roles ORDER BY name ASC")).WillReturnRows(rows)

		roles, err := repo.List(context.Background())
		require.NoError(t, err)
		require.Len(t, roles, 2)
		assert.Equal(t, authDomain.AllCapabilities(), roles[0].Capabilities)
		assert.Equal(t, []authDomain.Capability{authDomain.ReadCapability}, roles[1].Capabilities)
	})

	t.Run("GetByName_CorruptCapabilities", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "name", "capabilities", "created_at"}).
			AddRow(id, "admin", []byte(`not-json`), role.CreatedAt)
		mock.ExpectQuery(regexp.QuoteMeta("FROM roles WHERE name = ?")).WithArgs("admin").WillReturnRows(rows)

		got, err := repo.GetByName(context.Background(), "admin")
		assert.Nil(t, got)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, authDomain.ErrRoleNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
