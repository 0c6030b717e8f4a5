package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	authDomain "github.com/allisson/gatekeeper/internal/auth/domain"
	"github.com/allisson/gatekeeper/internal/database"
	apperrors "github.com/allisson/gatekeeper/internal/errors"
)

// SQLiteUserRepository implements User persistence for SQLite.
// IDs are stored in their canonical textual form.
type SQLiteUserRepository struct {
	db *sql.DB
}

// Create inserts a new User into the SQLite database.
func (s *SQLiteUserRepository) Create(ctx context.Context, user *authDomain.User) error {
	querier := database.GetTx(ctx, s.db)

	query := `INSERT INTO users (id, username, password, email, role, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := querier.ExecContext(
		ctx,
		query,
		user.ID.String(),
		user.Username,
		user.Password,
		user.Email,
		user.Role,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return authDomain.ErrUserAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create user")
	}
	return nil
}

// GetByID retrieves a User by ID from the SQLite database.
func (s *SQLiteUserRepository) GetByID(ctx context.Context, userID uuid.UUID) (*authDomain.User, error) {
	querier := database.GetTx(ctx, s.db)

	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`

	return scanUser(querier.QueryRowContext(ctx, query, userID.String()))
}

// GetByUsername retrieves a User by username from the SQLite database.
func (s *SQLiteUserRepository) GetByUsername(
	ctx context.Context,
	username string,
) (*authDomain.User, error) {
	querier := database.GetTx(ctx, s.db)

	query := `SELECT ` + userColumns + ` FROM users WHERE username = ?`

	return scanUser(querier.QueryRowContext(ctx, query, username))
}

// List retrieves users ordered by creation time with pagination.
func (s *SQLiteUserRepository) List(ctx context.Context, offset, limit int) ([]*authDomain.User, error) {
	querier := database.GetTx(ctx, s.db)

	query := `SELECT ` + userColumns + ` FROM users
			  ORDER BY created_at ASC, id ASC
			  LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list users")
	}
	defer func() {
		_ = rows.Close()
	}()

	return scanUsers(rows)
}

// NewSQLiteUserRepository creates a new SQLite User repository.
func NewSQLiteUserRepository(db *sql.DB) *SQLiteUserRepository {
	return &SQLiteUserRepository{db: db}
}
