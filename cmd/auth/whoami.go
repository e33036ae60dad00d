package auth

import (
	"context"
	"fmt"

	"github.com/martinsuchenak/lictrack/internal/app"
	"github.com/martinsuchenak/lictrack/internal/config"
	"github.com/martinsuchenak/lictrack/internal/rbac"
	"github.com/paularlott/cli"
)

func WhoamiCommand() *cli.Command {
	return &cli.Command{
		Name:        "whoami",
		Usage:       "Show the logged-in identity",
		Description: "Show the username, role and screen permissions of the current session",
		Flags:       config.GetFlags(),
		Run: func(ctx context.Context, cmd *cli.Command) error {
			a, err := app.Open()
			if err != nil {
				return err
			}
			defer a.Close()

			ident, err := a.Identity()
			if err != nil {
				return err
			}
			fmt.Printf("Username: %s\n", ident.Username)
			fmt.Printf("Role:     %s\n", ident.Role)
			fmt.Println("Screens:")
			for _, screen := range []string{rbac.ScreenDevices, rbac.ScreenLicenses, rbac.ScreenAssignments, rbac.ScreenAuditLogs} {
				caps := rbac.For(ident.Role, screen)
				if !caps.CanView {
					continue
				}
				fmt.Printf("  %-12s view", screen)
				if caps.CanCreate {
					fmt.Print(", create")
				}
				if caps.CanEdit {
					fmt.Print(", edit")
				}
				if caps.CanDelete {
					fmt.Print(", delete")
				}
				if caps.CanAssign {
					fmt.Print(", assign")
				}
				fmt.Println()
			}
			return nil
		},
	}
}
