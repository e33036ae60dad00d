package device

import (
	"context"
	"fmt"
	"strings"

	"github.com/martinsuchenak/lictrack/internal/app"
	"github.com/martinsuchenak/lictrack/internal/config"
	"github.com/martinsuchenak/lictrack/internal/log"
	"github.com/martinsuchenak/lictrack/internal/view"
	"github.com/paularlott/cli"
)

func ListCommand() *cli.Command {
	return &cli.Command{
		Name:        "list",
		Usage:       "List devices",
		Description: "List one page of the device inventory, filtered locally by location, IP or device ID",
		Flags: append(config.GetFlags(),
			&cli.IntFlag{Name: "page", Usage: "Page number", DefaultValue: 1},
			&cli.StringFlag{Name: "location", Usage: "Exact location filter"},
			&cli.StringFlag{Name: "ip", Usage: "IP address substring filter"},
			&cli.StringFlag{Name: "id", Usage: "Device ID substring filter"},
			&cli.BoolFlag{Name: "locations", Usage: "List the known locations instead of devices"},
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

			v.SetLocationFilter(cmd.GetString("location"))
			v.SetIPFilter(cmd.GetString("ip"))
			v.SetIDFilter(cmd.GetString("id"))
			v.SetPage(cmd.GetInt("page"))

			if err := v.Load(ctx); err != nil {
				log.Error("Failed to list devices", "error", err)
				return err
			}

			if cmd.GetBool("locations") {
				fmt.Println(strings.Join(v.Locations, "\n"))
				return nil
			}

			printDevices(v.Filtered())
			fmt.Printf("Page %d of %d\n", v.CurrentPage, v.TotalPages)
			return nil
		},
	}
}
