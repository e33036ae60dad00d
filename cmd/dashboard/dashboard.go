// Package dashboard holds the overview command.
package dashboard

import (
	"context"
	"fmt"

	"github.com/martinsuchenak/lictrack/internal/app"
	"github.com/martinsuchenak/lictrack/internal/config"
	"github.com/martinsuchenak/lictrack/internal/log"
	"github.com/martinsuchenak/lictrack/internal/view"
	"github.com/paularlott/cli"
)

func Command() *cli.Command {
	return &cli.Command{
		Name:        "dashboard",
		Usage:       "Show the overview",
		Description: "Show the inventory totals and the licenses expiring this month",
		Flags:       config.GetFlags(),
		Run: func(ctx context.Context, cmd *cli.Command) error {
			a, err := app.Open()
			if err != nil {
				return err
			}
			defer a.Close()

			if _, err := a.Identity(); err != nil {
				return err
			}

			v := view.NewDashboardView(a.Client)
			if err := v.Load(ctx); err != nil {
				log.Error("Failed to load dashboard overview", "error", err)
				return err
			}

			o := v.Overview
			fmt.Printf("Devices:           %d\n", o.TotalDevices)
			fmt.Printf("Licenses:          %d\n", o.TotalLicenses)
			fmt.Printf("Devices at risk:   %d\n", o.DevicesAtRisk)
			fmt.Printf("Licenses expiring: %d\n", o.LicensesExpiring)

			if len(o.ExpiringLicenses) == 0 {
				return nil
			}
			fmt.Println()
			fmt.Printf("%-20s %-16s %-8s %s\n", "SOFTWARE", "VENDOR", "DEVICES", "EXPIRES")
			for _, e := range o.ExpiringLicenses {
				fmt.Printf("%-20s %-16s %-8d %s\n", e.Software, e.Vendor, e.DevicesUsed, e.ExpiryDate)
			}
			return nil
		},
	}
}
