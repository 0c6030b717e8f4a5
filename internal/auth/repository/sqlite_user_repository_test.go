package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/gatekeeper/internal/auth/domain"
	"github.com/allisson/gatekeeper/internal/testutil"
)

func newTestUser(username string, createdAt time.Time) *authDomain.User {
	return &authDomain.User{
		ID:        uuid.Must(uuid.NewV7()),
		Username:  username,
		Password:  "hashed-password",
		Role:      authDomain.DefaultRoleName,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

func TestNewSQLiteUserRepository(t *testing.T) {
	db := testutil.SetupSQLiteDB(t)

	repo := NewSQLiteUserRepository(db)
	assert.NotNil(t, repo)
	assert.IsType(t, &SQLiteUserRepository{}, repo)
}

func TestSQLiteUserRepository_Create(t *testing.T) {
	db := testutil.SetupSQLiteDB(t)
	repo := NewSQLiteUserRepository(db)
	ctx := context.Background()

	email := "john@example.com"
	user := newTestUser("john", time.Now().UTC())
	user.Email = &email

	err := repo.Create(ctx, user)
	require.NoError(t, err)

	retrieved, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)

	assert.Equal(t, user.ID, retrieved.ID)
	assert.Equal(t, user.Username, retrieved.Username)
	assert.Equal(t, user.Password, retrieved.Password)
	require.NotNil(t, retrieved.Email)
	assert.Equal(t, email, *retrieved.Email)
	assert.Equal(t, user.Role, retrieved.Role)
	assert.WithinDuration(t, user.CreatedAt, retrieved.CreatedAt, time.Second)
}

func TestSQLiteUserRepository_Create_DuplicateUsername(t *testing.T) {
	db := testutil.SetupSQLiteDB(t)
	repo := NewSQLiteUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newTestUser("john", time.Now().UTC())))

	err := repo.Create(ctx, newTestUser("john", time.Now().UTC()))
	assert.ErrorIs(t, err, authDomain.ErrUserAlreadyExists)
}

func TestSQLiteUserRepository_GetByUsername(t *testing.T) {
	db := testutil.SetupSQLiteDB(t)
	repo := NewSQLiteUserRepository(db)
	ctx := context.Background()

	user := newTestUser("jane", time.Now().UTC())
	require.NoError(t, repo.Create(ctx, user))

	t.Run("Success", func(t *testing.T) {
		retrieved, err := repo.GetByUsername(ctx, "jane")
		require.NoError(t, err)
		assert.Equal(t, user.ID, retrieved.ID)
		assert.Nil(t, retrieved.Email)
	})

	t.Run("NotFound", func(t *testing.T) {
		retrieved, err := repo.GetByUsername(ctx, "nobody")
		assert.Nil(t, retrieved)
		assert.ErrorIs(t, err, authDomain.ErrUserNotFound)
	})
}

func TestSQLiteUserRepository_GetByID_NotFound(t *testing.T) {
	db := testutil.SetupSQLiteDB(t)
	repo := NewSQLiteUserRepository(db)

	retrieved, err := repo.GetByID(context.Background(), uuid.Must(uuid.NewV7()))
	assert.Nil(t, retrieved)
	assert.ErrorIs(t, err, authDomain.ErrUserNotFound)
}

func TestSQLiteUserRepository_List(t *testing.T) {
	db := testutil.SetupSQLiteDB(t)
	repo := NewSQLiteUserRepository(db)
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	for i, name := range []string{"alice", "bob", "carol"} {
		require.NoError(t, repo.Create(ctx, newTestUser(name, base.Add(time.Duration(i)*time.Second))))
	}

	t.Run("AllUsers", func(t *testing.T) {
		users, err := repo.List(ctx, 0, 10)
		require.NoError(t, err)
		require.Len(t, users, 3)
		assert.Equal(t, "alice", users[0].Username)
		assert.Equal(t, "carol", users[2].Username)
	})

	t.Run("Paginated", func(t *testing.T) {
		users, err := repo.List(ctx, 1, 1)
		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, "bob", users[0].Username)
	})

	t.Run("PastTheEnd", func(t *testing.T) {
		users, err := repo.List(ctx, 10, 10)
		require.NoError(t, err)
		assert.Empty(t, users)
		assert.NotNil(t, users)
	})
}
