package auth

import (
	"context"
	"fmt"

	"github.com/martinsuchenak/lictrack/internal/api"
	"github.com/martinsuchenak/lictrack/internal/app"
	"github.com/martinsuchenak/lictrack/internal/config"
	"github.com/martinsuchenak/lictrack/internal/log"
	"github.com/martinsuchenak/lictrack/internal/model"
	"github.com/paularlott/cli"
)

func SignupCommand() *cli.Command {
	return &cli.Command{
		Name:        "signup",
		Usage:       "Register a new account",
		Description: "Register a new account with the backend",
		Flags: append(config.GetFlags(),
			&cli.StringFlag{Name: "username", Usage: "Account username", Required: true},
			&cli.StringFlag{Name: "email", Usage: "Account email", Required: true},
			&cli.StringFlag{Name: "password", Usage: "Account password", EnvVars: []string{"LICTRACK_PASSWORD"}, Required: true},
			&cli.StringFlag{Name: "role", Usage: "Requested role (ADMIN, ENGINEER, AUDITOR)", DefaultValue: model.RoleEngineer},
		),
		Run: func(ctx context.Context, cmd *cli.Command) error {
			role := cmd.GetString("role")
			switch role {
			case model.RoleAdmin, model.RoleEngineer, model.RoleAuditor:
			default:
				return fmt.Errorf("invalid role: %s", role)
			}

			a, err := app.Open()
			if err != nil {
				return err
			}
			defer a.Close()

			req := api.SignupRequest{
				Username: cmd.GetString("username"),
				Email:    cmd.GetString("email"),
				Password: cmd.GetString("password"),
				Role:     role,
			}
			if err := a.Client.Signup(ctx, req); err != nil {
				log.Error("Signup failed", "error", err, "username", req.Username)
				return fmt.Errorf("signup failed: %w", err)
			}
			fmt.Printf("Account created: %s\n", req.Username)
			return nil
		},
	}
}
