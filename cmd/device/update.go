package device

import (
	"context"
	"fmt"

	"github.com/martinsuchenak/lictrack/internal/app"
	"github.com/martinsuchenak/lictrack/internal/config"
	"github.com/martinsuchenak/lictrack/internal/forms"
	"github.com/martinsuchenak/lictrack/internal/log"
	"github.com/martinsuchenak/lictrack/internal/rbac"
	"github.com/paularlott/cli"
)

func UpdateCommand() *cli.Command {
	return &cli.Command{
		Name:        "update",
		Usage:       "Update a device",
		Description: "Update fields of an existing device; omitted flags keep their current value",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "device-id", Required: true},
		},
		Flags: append(config.GetFlags(),
			&cli.StringFlag{Name: "type", Usage: "Device type"},
			&cli.StringFlag{Name: "ip", Usage: "IP address"},
			&cli.StringFlag{Name: "location", Usage: "Device location"},
			&cli.StringFlag{Name: "model", Usage: "Device model"},
			&cli.StringFlag{Name: "status", Usage: "Device status"},
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
			if !rbac.For(ident.Role, rbac.ScreenDevices).CanEdit {
				return fmt.Errorf("role %s may not edit devices", ident.Role)
			}

			id := cmd.GetStringArg("device-id")
			existing, err := a.Client.Device(ctx, id)
			if err != nil {
				return err
			}

			form := forms.NewDeviceForm(a.Client, existing)
			if v := cmd.GetString("type"); v != "" {
				form.Input.Type = v
			}
			if v := cmd.GetString("ip"); v != "" {
				form.Input.IPAddress = v
			}
			if v := cmd.GetString("location"); v != "" {
				form.Input.Location = v
			}
			if v := cmd.GetString("model"); v != "" {
				form.Input.Model = v
			}
			if v := cmd.GetString("status"); v != "" {
				form.Input.Status = v
			}

			if err := form.Submit(ctx); err != nil {
				log.Error("Failed to update device", "error", err, "device_id", id)
				return err
			}
			log.Info("Device updated", "device_id", id)
			fmt.Printf("Device updated: %s\n", id)
			return nil
		},
	}
}
