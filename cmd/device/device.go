// Package device holds the device inventory commands.
package device

import (
	"fmt"

	"github.com/martinsuchenak/lictrack/internal/model"
	"github.com/paularlott/cli"
)

func Commands() []*cli.Command {
	return []*cli.Command{
		AddCommand(),
		ListCommand(),
		GetCommand(),
		UpdateCommand(),
		DeleteCommand(),
		AssignCommand(),
		PingCommand(),
	}
}

func printDevices(devices []model.Device) {
	if len(devices) == 0 {
		fmt.Println("No devices found")
		return
	}
	fmt.Printf("%-12s %-10s %-16s %-12s %-16s %s\n", "DEVICE", "TYPE", "IP", "LOCATION", "MODEL", "STATUS")
	for _, d := range devices {
		fmt.Printf("%-12s %-10s %-16s %-12s %-16s %s\n", d.DeviceID, d.Type, d.IPAddress, d.Location, d.Model, d.Status)
	}
}

func printDevice(d *model.Device) {
	fmt.Printf("Device:   %s\n", d.DeviceID)
	fmt.Printf("Type:     %s\n", d.Type)
	fmt.Printf("IP:       %s\n", d.IPAddress)
	fmt.Printf("Location: %s\n", d.Location)
	fmt.Printf("Model:    %s\n", d.Model)
	fmt.Printf("Status:   %s\n", d.Status)
}
