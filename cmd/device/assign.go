package device

import (
	"context"
	"errors"
	"fmt"

	"github.com/martinsuchenak/lictrack/internal/app"
	"github.com/martinsuchenak/lictrack/internal/config"
	"github.com/martinsuchenak/lictrack/internal/forms"
	"github.com/martinsuchenak/lictrack/internal/log"
	"github.com/martinsuchenak/lictrack/internal/rbac"
	"github.com/paularlott/cli"
)

func AssignCommand() *cli.Command {
	return &cli.Command{
		Name:        "assign",
		Usage:       "Assign a license to a device",
		Description: "Bind a license to a device, rejecting duplicates before the backend is involved",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "device-id", Required: true},
		},
		Flags: append(config.GetFlags(),
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

			deviceID := cmd.GetStringArg("device-id")
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
