package device

import (
	"context"
	"fmt"

	"github.com/martinsuchenak/lictrack/internal/app"
	"github.com/martinsuchenak/lictrack/internal/config"
	"github.com/martinsuchenak/lictrack/internal/log"
	"github.com/martinsuchenak/lictrack/internal/view"
	"github.com/paularlott/cli"
)

func DeleteCommand() *cli.Command {
	return &cli.Command{
		Name:        "delete",
		Usage:       "Delete a device",
		Description: "Delete a device from the inventory after confirmation",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "device-id", Required: true},
		},
		Flags: append(config.GetFlags(),
			&cli.BoolFlag{Name: "yes", Usage: "Skip the confirmation prompt"},
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
			v, err := view.NewDeviceView(a.Client, ident, a.Config.PageSize)
			if err != nil {
				return err
			}

			id := cmd.GetStringArg("device-id")
			if !app.Confirm(fmt.Sprintf("Delete device %s?", id), cmd.GetBool("yes")) {
				fmt.Println("Aborted")
				return nil
			}

			if err := v.Delete(ctx, id); err != nil {
				log.Error("Failed to delete device", "error", err, "device_id", id)
				return err
			}
			log.Info("Device deleted", "device_id", id)
			fmt.Printf("Device deleted: %s\n", id)
			return nil
		},
	}
}
