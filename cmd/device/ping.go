package device

import (
	"context"
	"fmt"
	"time"

	"github.com/martinsuchenak/lictrack/internal/app"
	"github.com/martinsuchenak/lictrack/internal/config"
	"github.com/martinsuchenak/lictrack/internal/log"
	"github.com/martinsuchenak/lictrack/internal/probe"
	"github.com/paularlott/cli"
)

func PingCommand() *cli.Command {
	return &cli.Command{
		Name:        "ping",
		Usage:       "Ping a device",
		Description: "Send an ICMP echo to the device's recorded IP address",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "device-id", Required: true},
		},
		Flags: append(config.GetFlags(),
			&cli.IntFlag{Name: "timeout", Usage: "Timeout in seconds", DefaultValue: 3},
		),
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
			if err != nil {
				return err
			}

			timeout := time.Duration(cmd.GetInt("timeout")) * time.Second
			log.Debug("Pinging device", "device_id", id, "ip", d.IPAddress, "timeout", timeout)

			alive, err := probe.NewPinger().Ping(ctx, d.IPAddress, timeout)
			if err != nil {
				return fmt.Errorf("ping %s: %w", d.IPAddress, err)
			}
			if alive {
				fmt.Printf("%s (%s) is reachable\n", id, d.IPAddress)
			} else {
				fmt.Printf("%s (%s) is not responding\n", id, d.IPAddress)
			}
			return nil
		},
	}
}
