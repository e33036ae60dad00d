package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/martinsuchenak/lictrack/cmd/alerts"
	"github.com/martinsuchenak/lictrack/cmd/assignment"
	"github.com/martinsuchenak/lictrack/cmd/audit"
	"github.com/martinsuchenak/lictrack/cmd/auth"
	"github.com/martinsuchenak/lictrack/cmd/dashboard"
	"github.com/martinsuchenak/lictrack/cmd/device"
	"github.com/martinsuchenak/lictrack/cmd/license"
	"github.com/martinsuchenak/lictrack/cmd/report"
	"github.com/paularlott/cli"
)

func main() {
	// A missing .env is fine, flags and real env vars still apply.
	_ = godotenv.Load()

	root := &cli.Command{
		Name:        "lictrack",
		Usage:       "License and device inventory client",
		Description: "Manage the device inventory, license repository, assignments and audit trail of a lictrack backend",
		Commands:    buildCommands(),
	}

	if err := root.Execute(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func buildCommands() []*cli.Command {
	var commands []*cli.Command
	commands = append(commands, auth.Commands()...)
	commands = append(commands,
		&cli.Command{
			Name:        "device",
			Usage:       "Manage devices",
			Description: "Manage the device inventory",
			Commands:    device.Commands(),
		},
		&cli.Command{
			Name:        "license",
			Usage:       "Manage licenses",
			Description: "Manage the license repository",
			Commands:    license.Commands(),
		},
		&cli.Command{
			Name:        "assignment",
			Usage:       "Manage assignments",
			Description: "Manage license assignments",
			Commands:    assignment.Commands(),
		},
		&cli.Command{
			Name:        "audit",
			Usage:       "Inspect the audit trail",
			Description: "Inspect the backend audit trail",
			Commands:    audit.Commands(),
		},
		dashboard.Command(),
		alerts.Command(),
		report.Command(),
	)
	return commands
}
