package device

import (
	"context"
	"fmt"
	"net/http"

	"github.com/martinsuchenak/lictrack/internal/api"
	"github.com/martinsuchenak/lictrack/internal/app"
	"github.com/martinsuchenak/lictrack/internal/config"
	"github.com/paularlott/cli"
)

func GetCommand() *cli.Command {
	return &cli.Command{
		Name:        "get",
		Usage:       "Show a device",
		Description: "Show the full record of a single device",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "device-id", Required: true},
		},
		Flags: config.GetFlags(),
		Run: func(ctx context.Context, cmd *cli.Command) error {
			a, err := app.Open()
			if err != nil {
				return err
			}
			defer a.Close()

			if _, err := a.Identity(); err != nil {
				return err
			}

			id := cmd.GetStringArg("device-id")
			d, err := a.Client.Device(ctx, id)
			if api.IsStatus(err, http.StatusNotFound) {
				return fmt.Errorf("device not found: %s", id)
			}
			if err != nil {
				return err
			}
			printDevice(d)
			return nil
		},
	}
}
