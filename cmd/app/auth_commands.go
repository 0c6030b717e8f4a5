package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/gatekeeper/cmd/app/commands"
	"github.com/allisson/gatekeeper/internal/app"
	authDomain "github.com/allisson/gatekeeper/internal/auth/domain"
	"github.com/allisson/gatekeeper/internal/config"
)

func getAuthCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "seed-roles",
			Usage: "Create the built-in admin, editor and user roles",
			Flags: []cli.Flag{formatFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(func(_ *config.Config, container *app.Container) error {
					roleUseCase, err := container.RoleUseCase()
					if err != nil {
						return err
					}
					return commands.RunSeedRoles(
						ctx,
						roleUseCase,
						container.Logger(),
						cmd.String("format"),
						commands.DefaultIO(),
					)
				})
			},
		},
		{
			Name:  "create-role",
			Usage: "Create a role granting a set of capabilities",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "name",
					Aliases:  []string{"n"},
					Required: true,
					Usage:    "Role name",
				},
				&cli.StringFlag{
					Name:    "capabilities",
					Aliases: []string{"c"},
					Usage:   "Comma-separated capabilities (create, read, update, delete)",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(func(_ *config.Config, container *app.Container) error {
					roleUseCase, err := container.RoleUseCase()
					if err != nil {
						return err
					}
					return commands.RunCreateRole(
						ctx,
						roleUseCase,
						container.Logger(),
						cmd.String("name"),
						cmd.String("capabilities"),
						cmd.String("format"),
						commands.DefaultIO(),
					)
				})
			},
		},
		{
			Name:  "create-user",
			Usage: "Create a user with a role",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "username",
					Aliases:  []string{"u"},
					Required: true,
					Usage:    "Login name",
				},
				&cli.StringFlag{
					Name:    "password",
					Aliases: []string{"p"},
					Usage:   "Password (omit to read it from stdin)",
				},
				&cli.StringFlag{
					Name:    "email",
					Aliases: []string{"e"},
					Usage:   "Optional email address",
				},
				&cli.StringFlag{
					Name:    "role",
					Aliases: []string{"r"},
					Value:   authDomain.DefaultRoleName,
					Usage:   "Role name",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(func(_ *config.Config, container *app.Container) error {
					userUseCase, err := container.UserUseCase()
					if err != nil {
						return err
					}
					return commands.RunCreateUser(
						ctx,
						userUseCase,
						container.Logger(),
						cmd.String("username"),
						cmd.String("password"),
						cmd.String("email"),
						cmd.String("role"),
						cmd.String("format"),
						commands.DefaultIO(),
					)
				})
			},
		},
	}
}
