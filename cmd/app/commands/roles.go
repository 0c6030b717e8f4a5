package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	authDomain "github.com/allisson/gatekeeper/internal/auth/domain"
	authUseCase "github.com/allisson/gatekeeper/internal/auth/usecase"
)

// RunSeedRoles creates the built-in roles that are missing. Running it again
// changes nothing.
func RunSeedRoles(
	ctx context.Context,
	roleUseCase authUseCase.RoleUseCase,
	logger *slog.Logger,
	format string,
	io IOTuple,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	created, err := roleUseCase.SeedDefaults(ctx)
	if err != nil {
		return fmt.Errorf("failed to seed roles: %w", err)
	}
	if created == nil {
		created = []string{}
	}

	logger.Info("roles seeded", slog.Any("created", created))

	if format == formatJSON {
		return writeJSON(io.Writer, map[string][]string{"created": created})
	}

	if len(created) == 0 {
		_, _ = fmt.Fprintln(io.Writer, "All built-in roles already exist.")
		return nil
	}
	_, _ = fmt.Fprintf(io.Writer, "Created roles: %s\n", strings.Join(created, ", "))
	return nil
}

// RunCreateRole creates a role granting the comma-separated capabilities.
func RunCreateRole(
	ctx context.Context,
	roleUseCase authUseCase.RoleUseCase,
	logger *slog.Logger,
	name string,
	capabilities string,
	format string,
	io IOTuple,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	role, err := roleUseCase.Create(ctx, &authDomain.CreateRoleInput{
		Name:         name,
		Capabilities: splitList(capabilities),
	})
	if err != nil {
		return fmt.Errorf("failed to create role: %w", err)
	}

	logger.Info("role created", slog.String("name", role.Name))

	granted := make([]string, 0, len(role.Capabilities))
	for _, capability := range role.Capabilities {
		granted = append(granted, string(capability))
	}

	if format == formatJSON {
		return writeJSON(io.Writer, map[string]any{
			"id":           role.ID.String(),
			"name":         role.Name,
			"capabilities": granted,
		})
	}

	_, _ = fmt.Fprintf(io.Writer, "Role %q created with capabilities: %s\n", role.Name, strings.Join(granted, ", "))
	return nil
}

// splitList splits a comma-separated flag value, dropping blanks.
func splitList(value string) []string {
	items := []string{}
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
