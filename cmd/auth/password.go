package auth

import (
	"context"
	"fmt"

	"github.com/martinsuchenak/lictrack/internal/app"
	"github.com/martinsuchenak/lictrack/internal/config"
	"github.com/paularlott/cli"
)

func ForgotPasswordCommand() *cli.Command {
	return &cli.Command{
		Name:        "forgot-password",
		Usage:       "Request a password reset",
		Description: "Request a password reset mail for the given address",
		Flags: append(config.GetFlags(),
			&cli.StringFlag{Name: "email", Usage: "Account email", Required: true},
		),
		Run: func(ctx context.Context, cmd *cli.Command) error {
			a, err := app.Open()
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.Client.ForgotPassword(ctx, cmd.GetString("email")); err != nil {
				return fmt.Errorf("request failed: %w", err)
			}
			fmt.Println("If the address is registered, a reset mail is on its way")
			return nil
		},
	}
}

func ResetPasswordCommand() *cli.Command {
	return &cli.Command{
		Name:        "reset-password",
		Usage:       "Reset a password",
		Description: "Set a new password using a reset token from the mail",
		Flags: append(config.GetFlags(),
			&cli.StringFlag{Name: "token", Usage: "Reset token", Required: true},
			&cli.StringFlag{Name: "new-password", Usage: "New password", Required: true},
		),
		Run: func(ctx context.Context, cmd *cli.Command) error {
			a, err := app.Open()
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.Client.ResetPassword(ctx, cmd.GetString("token"), cmd.GetString("new-password")); err != nil {
				return fmt.Errorf("reset failed: %w", err)
			}
			fmt.Println("Password updated, log in with the new password")
			return nil
		},
	}
}
