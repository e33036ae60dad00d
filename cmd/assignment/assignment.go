// Package assignment holds the license assignment commands.
package assignment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/martinsuchenak/lictrack/internal/app"
	"github.com/martinsuchenak/lictrack/internal/config"
	"github.com/martinsuchenak/lictrack/internal/forms"
	"github.com/martinsuchenak/lictrack/internal/log"
	"github.com/martinsuchenak/lictrack/internal/rbac"
	"github.com/martinsuchenak/lictrack/internal/view"
	"github.com/paularlott/cli"
)

func Commands() []*cli.Command {
	return []*cli.Command{
		ListCommand(),
		AddCommand(),
	}
}

func ListCommand() *cli.Command {
	return &cli.Command{
		Name:        "list",
		Usage:       "List assignments",
		Description: "List every assignment with the validity state derived from its license window",
		Flags: append(config.GetFlags(),
			&cli.StringFlag{Name: "device", Usage: "Show only one device's assignments"},
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
			v, err := view.NewAssignmentView(a.Client, ident)
			if err != nil {
				return err
			}
			if err := v.Load(ctx); err != nil {
				log.Error("Failed to list assignments", "error", err)
				return err
			}

			deviceFilter := cmd.GetString("device")
			rows := v.Rows(time.Now())
			printed := 0
			for _, row := range rows {
				if deviceFilter != "" && row.DeviceID != deviceFilter {
					continue
				}
				if printed == 0 {
					fmt.Printf("%-12s %-14s %-12s %-10s %-8s %s\n",
						"DEVICE", "LICENSE", "ASSIGNED", "VALIDITY", "BAR", "STATUS")
				}
				fmt.Printf("%-12s %-14s %-12s %-10s %-8s %s\n",
					row.DeviceID, row.LicenseKey, row.AssignedOn,
					fmt.Sprintf("%d%%", row.ValidityPercent), row.BarTier, row.StatusTier)
				printed++
			}
			if printed == 0 {
				fmt.Println("No assignments found")
			}
			return nil
		},
	}
}

func AddCommand() *cli.Command {
	return &cli.Command{
		Name:        "add",
		Usage:       "Create an assignment",
		Description: "Bind a license to a device, stamped with today's date",
		Flags: append(config.GetFlags(),
			&cli.StringFlag{Name: "device", Usage: "Device ID", Required: true},
			&cli.StringFlag{Name: "license", Usage: "License key", Required: true},
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
			if !rbac.For(ident.Role, rbac.ScreenAssignments).CanAssign {
				return fmt.Errorf("role %s may not assign licenses", ident.Role)
			}

			deviceID := cmd.GetString("device")
			form := forms.NewAssignmentForm(a.Client, deviceID)
			if err := form.Load(ctx); err != nil {
				log.Error("Failed to load assignment form data", "error", err, "device_id", deviceID)
				return err
			}
			form.LicenseKey = cmd.GetString("license")

			err = form.Submit(ctx)
			if errors.Is(err, forms.ErrAlreadyAssigned) {
				return fmt.Errorf("license %s is already assigned to %s", form.LicenseKey, deviceID)
			}
			if err != nil {
				log.Error("Failed to create assignment", "error", err, "device_id", deviceID, "license_key", form.LicenseKey)
				return err
			}
			log.Info("License assigned", "device_id", deviceID, "license_key", form.LicenseKey)
			fmt.Printf("Assigned %s to %s\n", form.LicenseKey, deviceID)
			return nil
		},
	}
}
