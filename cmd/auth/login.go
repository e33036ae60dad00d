package auth

import (
	"context"
	"fmt"

	"github.com/martinsuchenak/lictrack/internal/app"
	"github.com/martinsuchenak/lictrack/internal/config"
	"github.com/martinsuchenak/lictrack/internal/log"
	"github.com/martinsuchenak/lictrack/internal/session"
	"github.com/paularlott/cli"
)

func LoginCommand() *cli.Command {
	return &cli.Command{
		Name:        "login",
		Usage:       "Log in to the backend",
		Description: "Authenticate against the backend and store the session token locally",
		Flags: append(config.GetFlags(),
			&cli.StringFlag{Name: "username", Usage: "Account username", Required: true},
			&cli.StringFlag{Name: "password", Usage: "Account password", EnvVars: []string{"LICTRACK_PASSWORD"}, Required: true},
		),
		Run: func(ctx context.Context, cmd *cli.Command) error {
			a, err := app.Open()
			if err != nil {
				return err
			}
			defer a.Close()

			username := cmd.GetString("username")
			log.Debug("Logging in", "username", username)

			token, err := a.Client.Login(ctx, username, cmd.GetString("password"))
			if err != nil {
				log.Error("Login failed", "error", err, "username", username)
				return fmt.Errorf("login failed: %w", err)
			}
			if err := a.Store.SaveToken(token); err != nil {
				return err
			}

			ident, err := session.DecodeIdentity(token)
			if err != nil {
				log.Error("Failed to decode session token", "error", err)
				return err
			}
			log.Info("Logged in", "username", ident.Username, "role", ident.Role)
			fmt.Printf("Logged in as %s (%s)\n", ident.Username, ident.Role)
			return nil
		},
	}
}
