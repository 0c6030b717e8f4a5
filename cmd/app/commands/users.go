package commands

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"strings"

	authDomain "github.com/allisson/gatekeeper/internal/auth/domain"
	authUseCase "github.com/allisson/gatekeeper/internal/auth/usecase"
)

// RunCreateUser creates a user with the given role. When password is empty it
// is read from the first line of io.Reader.
func RunCreateUser(
	ctx context.Context,
	userUseCase authUseCase.UserUseCase,
	logger *slog.Logger,
	username string,
	password string,
	email string,
	role string,
	format string,
	io IOTuple,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	if password == "" {
		_, _ = fmt.Fprint(io.Writer, "Password: ")
		line, err := bufio.NewReader(io.Reader).ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("failed to read password: %w", err)
		}
		password = strings.TrimRight(line, "\r\n")
		_, _ = fmt.Fprintln(io.Writer)
	}

	user, err := userUseCase.Create(ctx, &authDomain.CreateUserInput{
		Username: username,
		Password: password,
		Email:    email,
		Role:     role,
	})
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	logger.Info("user created",
		slog.String("user_id", user.ID.String()),
		slog.String("username", user.Username),
		slog.String("role", user.Role))

	if format == formatJSON {
		return writeJSON(io.Writer, map[string]string{
			"id":       user.ID.String(),
			"username": user.Username,
			"role":     user.Role,
		})
	}

	_, _ = fmt.Fprintf(io.Writer, "User %q created with role %q (id %s)\n", user.Username, user.Role, user.ID)
	return nil
}
