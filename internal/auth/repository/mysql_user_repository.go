package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	authDomain "github.com/allisson/gatekeeper/internal/auth/domain"
	"github.com/allisson/gatekeeper/internal/database"
	apperrors "github.com/allisson/gatekeeper/internal/errors"
)

// MySQLUserRepository implements User persistence for MySQL.
// IDs are stored as BINARY(16).
type MySQLUserRepository struct {
	db *sql.DB
}

// Create inserts a new User into the MySQL database.
func (m *MySQLUserRepository) Create(ctx context.Context, user *authDomain.User) error {
	querier := database.GetTx(ctx, m.db)

	id, err := user.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal user id")
	}

	query := `INSERT INTO users (id, username, password, email, role, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
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

// GetByID retrieves a User by ID from the MySQL database.
func (m *MySQLUserRepository) GetByID(ctx context.Context, userID uuid.UUID) (*authDomain.User, error) {
	querier := database.GetTx(ctx, m.db)

	id, err := userID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal user id")
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`

	return scanUser(querier.QueryRowContext(ctx, query, id))
}

// GetByUsername retrieves a User by username from the MySQL database.
func (m *MySQLUserRepository) GetByUsername(
	ctx context.Context,
	username string,
) (*authDomain.User, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + userColumns + ` FROM users WHERE username = ?`

	return scanUser(querier.QueryRowContext(ctx, query, username))
}

// List retrieves users ordered by creation time with pagination.
func (m *MySQLUserRepository) List(ctx context.Context, offset, limit int) ([]*authDomain.User, error) {
	querier := database.GetTx(ctx, m.db)

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

// NewMySQLUserRepository creates a new MySQL User repository.
func NewMySQLUserRepository(db *sql.DB) *MySQLUserRepository {
	return &MySQLUserRepository{db: db}
}
