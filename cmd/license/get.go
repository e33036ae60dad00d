package license

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
		Usage:       "Show a license",
		Description: "Show the full record of a single license",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "license-key", Required: true},
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

			key := cmd.GetStringArg("license-key")
			l, err := a.Client.License(ctx, key)
			if api.IsStatus(err, http.StatusNotFound) {
				return fmt.Errorf("license not found: %s", key)
			}
			if err != nil {
				return err
			}
			printLicense(l)
			return nil
		},
	}
}
