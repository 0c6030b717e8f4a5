package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	authDomain "github.com/allisson/gatekeeper/internal/auth/domain"
	"github.com/allisson/gatekeeper/internal/database"
	apperrors "github.com/allisson/gatekeeper/internal/errors"
)

// jsonRoleRepository stores capabilities as a JSON array and serves both MySQL
// and SQLite, which differ only in how ids are encoded.
type jsonRoleRepository struct {
	db       *sql.DB
	encodeID func(role *authDomain.Role) (any, error)
}

func (j *jsonRoleRepository) Create(ctx context.Context, role *authDomain.Role) error {
	querier := database.GetTx(ctx, j.db)

	id, err := j.encodeID(role)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal role id")
	}

	capabilities, err := json.Marshal(capabilityStrings(role.Capabilities))
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal capabilities")
	}

	query := `INSERT INTO roles (id, name, capabilities, created_at) VALUES (?, ?, ?, ?)`

	_, err = querier.ExecContext(ctx, query, id, role.Name, string(capabilities), role.CreatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return authDomain.ErrRoleAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create role")
	}
	return nil
}

func (j *jsonRoleRepository) GetByName(ctx context.Context, name string) (*authDomain.Role, error) {
	querier := database.GetTx(ctx, j.db)

	query := `SELECT ` + roleColumns + ` FROM roles WHERE name = ?`

	role, err := j.scan(querier.QueryRowContext(ctx, query, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, authDomain.ErrRoleNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get role")
	}
	return role, nil
}

func (j *jsonRoleRepository) List(ctx context.Context) ([]*authDomain.Role, error) {
	querier := database.GetTx(ctx, j.db)

	query := `SELECT ` + roleColumns + ` FROM roles ORDER BY name ASC`

	rows, err := querier.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list roles")
	}
	defer func() {
		_ = rows.Close()
	}()

	roles := make([]*authDomain.Role, 0)
	for rows.Next() {
		role, err := j.scan(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan role")
		}
		roles = append(roles, role)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate roles")
	}

	return roles, nil
}

func (j *jsonRoleRepository) scan(row rowScanner) (*authDomain.Role, error) {
	var role authDomain.Role
	var raw []byte

	if err := row.Scan(&role.ID, &role.Name, &raw, &role.CreatedAt); err != nil {
		return nil, err
	}

	var values []string
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &values); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal capabilities")
		}
	}

	role.Capabilities = storedCapabilities(values)
	return &role, nil
}

// MySQLRoleRepository implements Role persistence for MySQL.
// IDs are stored as BINARY(16) and capabilities in a JSON column.
type MySQLRoleRepository struct {
	jsonRoleRepository
}

// NewMySQLRoleRepository creates a new MySQL Role repository.
func NewMySQLRoleRepository(db *sql.DB) *MySQLRoleRepository {
	return &MySQLRoleRepository{
		jsonRoleRepository: jsonRoleRepository{
			db: db,
			encodeID: func(role *authDomain.Role) (any, error) {
				return role.ID.MarshalBinary()
			},
		},
	}
}

// SQLiteRoleRepository implements Role persistence for SQLite.
// IDs and capabilities are both stored as TEXT.
type SQLiteRoleRepository struct {
	jsonRoleRepository
}

// NewSQLiteRoleRepository creates a new SQLite Role repository.
func NewSQLiteRoleRepository(db *sql.DB) *SQLiteRoleRepository {
	return &SQLiteRoleRepository{
		jsonRoleRepository: jsonRoleRepository{
			db: db,
			encodeID: func(role *authDomain.Role) (any, error) {
				return role.ID.String(), nil
			},
		},
	}
}
