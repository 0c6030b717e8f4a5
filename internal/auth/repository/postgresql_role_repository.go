package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	authDomain "github.com/allisson/gatekeeper/internal/auth/domain"
	"github.com/allisson/gatekeeper/internal/database"
	apperrors "github.com/allisson/gatekeeper/internal/errors"
)

const roleColumns = `id, name, capabilities, created_at`

// PostgreSQLRoleRepository implements Role persistence for PostgreSQL.
// Capabilities are stored in a TEXT[] column.
type PostgreSQLRoleRepository struct {
	db *sql.DB
}

// Create inserts a new Role into the PostgreSQL database.
func (p *PostgreSQLRoleRepository) Create(ctx context.Context, role *authDomain.Role) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO roles (id, name, capabilities, created_at) VALUES ($1, $2, $3, $4)`

	_, err := querier.ExecContext(
		ctx,
		query,
		role.ID,
		role.Name,
		pq.Array(capabilityStrings(role.Capabilities)),
		role.CreatedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return authDomain.ErrRoleAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create role")
	}
	return nil
}

// GetByName retrieves a Role by name from the PostgreSQL database.
func (p *PostgreSQLRoleRepository) GetByName(ctx context.Context, name string) (*authDomain.Role, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + roleColumns + ` FROM roles WHERE name = $1`

	role, err := p.scan(querier.QueryRowContext(ctx, query, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, authDomain.ErrRoleNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get role")
	}
	return role, nil
}

// List retrieves every Role ordered by name.
func (p *PostgreSQLRoleRepository) List(ctx context.Context) ([]*authDomain.Role, error) {
	querier := database.GetTx(ctx, p.db)

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
		role, err := p.scan(rows)
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

func (p *PostgreSQLRoleRepository) scan(row rowScanner) (*authDomain.Role, error) {
	var role authDomain.Role
	var capabilities pq.StringArray

	if err := row.Scan(&role.ID, &role.Name, &capabilities, &role.CreatedAt); err != nil {
		return nil, err
	}

	role.Capabilities = storedCapabilities(capabilities)
	return &role, nil
}

// NewPostgreSQLRoleRepository creates a new PostgreSQL Role repository.
func NewPostgreSQLRoleRepository(db *sql.DB) *PostgreSQLRoleRepository {
	return &PostgreSQLRoleRepository{db: db}
}

func capabilityStrings(capabilities []authDomain.Capability) []string {
	values := make([]string, 0, len(capabilities))
	for _, capability := range capabilities {
		values = append(values, string(capability))
	}
	return values
}

// storedCapabilities converts persisted values back, skipping anything that is
// no longer a known capability so a stale row can never widen access.
func storedCapabilities(values []string) []authDomain.Capability {
	capabilities := make([]authDomain.Capability, 0, len(values))
	for _, value := range values {
		capability := authDomain.Capability(value)
		if capability.IsValid() {
			capabilities = append(capabilities, capability)
		}
	}
	return capabilities
}
