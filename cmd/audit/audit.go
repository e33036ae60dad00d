// Package audit holds the audit trail command, available to ADMIN and
// AUDITOR roles only.
package audit

import (
	"context"
	"fmt"

	"github.com/martinsuchenak/lictrack/internal/app"
	"github.com/martinsuchenak/lictrack/internal/config"
	"github.com/martinsuchenak/lictrack/internal/log"
	"github.com/martinsuchenak/lictrack/internal/view"
	"github.com/paularlott/cli"
)

func Commands() []*cli.Command {
	return []*cli.Command{
		ListCommand(),
	}
}

func ListCommand() *cli.Command {
	return &cli.Command{
		Name:        "list",
		Usage:       "List audit log entries",
		Description: "List one page of the audit trail, filtered server-side",
		Flags: append(config.GetFlags(),
			&cli.IntFlag{Name: "page", Usage: "Page number", DefaultValue: 1},
			&cli.StringFlag{Name: "entity-type", Usage: "Entity type filter (DEVICE, LICENSE, ASSIGNMENT)"},
			&cli.StringFlag{Name: "entity-id", Usage: "Entity ID filter"},
			&cli.StringFlag{Name: "action", Usage: "Action filter (CREATE, UPDATE, DELETE, ASSIGN)"},
			&cli.StringFlag{Name: "user", Usage: "Username filter"},
			&cli.BoolFlag{Name: "full", Usage: "Print full details instead of the truncated preview"},
		),
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
			v, err := view.NewAuditView(a.Client, ident, a.Config.PageSize)
			if err != nil {
				return err
			}

			v.SetFilters(cmd.GetString("entity-type"), cmd.GetString("entity-id"),
				cmd.GetString("action"), cmd.GetString("user"))
			v.SetPage(cmd.GetInt("page"))
			if err := v.Load(ctx); err != nil {
				log.Error("Failed to list audit logs", "error", err)
				return err
			}

			if len(v.Logs) == 0 {
				fmt.Println("No audit log entries found")
				return nil
			}
			full := cmd.GetBool("full")
			fmt.Printf("%-6s %-20s %-12s %-12s %-14s %-8s %s\n",
				"LOG", "TIMESTAMP", "USER", "ENTITY", "ENTITY ID", "ACTION", "DETAILS")
			for _, entry := range v.Logs {
				details := entry.Details
				if !full {
					details = view.TruncateDetails(details)
				}
				fmt.Printf("%-6d %-20s %-12s %-12s %-14s %-8s %s\n",
					entry.LogID, entry.Timestamp, entry.Username,
					entry.EntityType, entry.EntityID, entry.Action, details)
			}
			fmt.Printf("Page %d of %d\n", v.CurrentPage, v.TotalPages)
			return nil
		},
	}
}
