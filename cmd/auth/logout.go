package auth

import (
	"context"
	"fmt"

	"github.com/martinsuchenak/lictrack/internal/app"
	"github.com/martinsuchenak/lictrack/internal/config"
	"github.com/martinsuchenak/lictrack/internal/log"
	"github.com/paularlott/cli"
)

func LogoutCommand() *cli.Command {
	return &cli.Command{
		Name:        "logout",
		Usage:       "Log out",
		Description: "Discard the locally stored session token",
		Flags:       config.GetFlags(),
		Run: func(ctx context.Context, cmd *cli.Command) error {
			a, err := app.Open()
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.Store.Clear(); err != nil {
				return err
			}
			log.Info("Session cleared")
			fmt.Println("Logged out")
			return nil
		},
	}
}
