// Package repository implements data persistence for users and roles.
//
// Provides PostgreSQL, MySQL and SQLite implementations with transaction support via
// database.GetTx(). PostgreSQL uses native UUID and TEXT[] types, MySQL uses BINARY(16)
// ids and JSON capabilities, SQLite stores both as TEXT.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	authDomain "github.com/allisson/gatekeeper/internal/auth/domain"
	"github.com/allisson/gatekeeper/internal/database"
	apperrors "github.com/allisson/gatekeeper/internal/errors"
)

const userColumns = `id, username, password, email, role, created_at, updated_at`

// PostgreSQLUserRepository implements User persistence for PostgreSQL.
type PostgreSQLUserRepository struct {
	db *sql.DB
}

// Create inserts a new User into the PostgreSQL database.
func (p *PostgreSQLUserRepository) Create(ctx context.Context, user *authDomain.User) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO users (id, username, password, email, role, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := querier.ExecContext(
		ctx,
		query,
		user.ID,
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

// GetByID retrieves a User by ID from the PostgreSQL database.
func (p *PostgreSQLUserRepository) GetByID(ctx context.Context, userID uuid.UUID) (*authDomain.User, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	return scanUser(querier.QueryRowContext(ctx, query, userID))
}

// GetByUsername retrieves a User by username from the PostgreSQL database.
func (p *PostgreSQLUserRepository) GetByUsername(
	ctx context.Context,
	username string,
) (*authDomain.User, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`

	return scanUser(querier.QueryRowContext(ctx, query, username))
}

// List retrieves users ordered by creation time with pagination.
func (p *PostgreSQLUserRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*authDomain.User, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + userColumns + ` FROM users
			  ORDER BY created_at ASC, id ASC
			  LIMIT $1 OFFSET $2`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list users")
	}
	defer func() {
		_ = rows.Close()
	}()

	return scanUsers(rows)
}

// NewPostgreSQLUserRepository creates a new PostgreSQL User repository.
func NewPostgreSQLUserRepository(db *sql.DB) *PostgreSQLUserRepository {
	return &PostgreSQLUserRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanUser reads a single user row. uuid.UUID scans both the textual and the
// 16-byte representations, so every driver shares it.
func scanUser(row rowScanner) (*authDomain.User, error) {
	var user authDomain.User

	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Password,
		&user.Email,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, authDomain.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get user")
	}

	return &user, nil
}

func scanUsers(rows *sql.Rows) ([]*authDomain.User, error) {
	users := make([]*authDomain.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate users")
	}

	return users, nil
}
