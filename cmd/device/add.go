package device

import (
	"context"
	"fmt"

	"github.com/martinsuchenak/lictrack/internal/app"
	"github.com/martinsuchenak/lictrack/internal/config"
	"github.com/martinsuchenak/lictrack/internal/forms"
	"github.com/martinsuchenak/lictrack/internal/log"
	"github.com/martinsuchenak/lictrack/internal/model"
	"github.com/martinsuchenak/lictrack/internal/rbac"
	"github.com/paularlott/cli"
)

func AddCommand() *cli.Command {
	return &cli.Command{
		Name:        "add",
		Usage:       "Add a new device",
		Description: "Add a new device to the inventory",
		Flags: append(config.GetFlags(),
			&cli.StringFlag{Name: "id", Usage: "Device ID (e.g. RTR-BLR-001)", Required: true},
			&cli.StringFlag{Name: "type", Usage: "Device type", Required: true},
			&cli.StringFlag{Name: "ip", Usage: "IP address", Required: true},
			&cli.StringFlag{Name: "location", Usage: "Device location", Required: true},
			&cli.StringFlag{Name: "model", Usage: "Device model", Required: true},
			&cli.StringFlag{Name: "status", Usage: "Device status", DefaultValue: model.StatusActive},
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
			if !rbac.For(ident.Role, rbac.ScreenDevices).CanCreate {
				return fmt.Errorf("role %s may not create devices", ident.Role)
			}

			form := forms.NewDeviceForm(a.Client, nil)
			form.Input = model.Device{
				DeviceID:  cmd.GetString("id"),
				Type:      cmd.GetString("type"),
				IPAddress: cmd.GetString("ip"),
				Location:  cmd.GetString("location"),
				Model:     cmd.GetString("model"),
				Status:    cmd.GetString("status"),
			}
			if err := form.Submit(ctx); err != nil {
				log.Error("Failed to create device", "error", err, "device_id", form.Input.DeviceID)
				return err
			}
			log.Info("Device created", "device_id", form.Input.DeviceID)
			fmt.Printf("Device created: %s\n", form.Input.DeviceID)
			return nil
		},
	}
}
