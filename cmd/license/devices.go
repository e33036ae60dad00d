package license

import (
	"context"
	"fmt"

	"github.com/martinsuchenak/lictrack/internal/app"
	"github.com/martinsuchenak/lictrack/internal/config"
	"github.com/martinsuchenak/lictrack/internal/log"
	"github.com/martinsuchenak/lictrack/internal/view"
	"github.com/paularlott/cli"
)

func DevicesCommand() *cli.Command {
	return &cli.Command{
		Name:        "devices",
		Usage:       "List devices using a license",
		Description: "List the assignments of a single license, fetched on demand",
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

			ident, err := a.Identity()
			if err != nil {
				return err
			}
			v, err := view.NewLicenseView(a.Client, ident, a.Config.PageSize)
			if err != nil {
				return err
			}

			key := cmd.GetStringArg("license-key")
			if err := v.ToggleExpand(ctx, key); err != nil {
				log.Error("Failed to fetch license assignments", "error", err, "license_key", key)
				return err
			}
			if len(v.ExpandedAssignments) == 0 {
				fmt.Printf("No devices use %s\n", key)
				return nil
			}
			fmt.Printf("%-12s %-12s %s\n", "DEVICE", "ASSIGNED", "LOCATION")
			for _, as := range v.ExpandedAssignments {
				fmt.Printf("%-12s %-12s %s\n", as.DeviceID, as.AssignedOn, as.DeviceLocation)
			}
			return nil
		},
	}
}
