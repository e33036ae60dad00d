// Package license holds the license repository commands.
package license

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
		DevicesCommand(),
	}
}

func printLicense(l *model.License) {
	fmt.Printf("License:  %s\n", l.LicenseKey)
	fmt.Printf("Software: %s\n", l.SoftwareName)
	fmt.Printf("Vendor:   %s\n", l.VendorID)
	fmt.Printf("Valid:    %s to %s\n", l.ValidFrom, l.ValidTo)
	fmt.Printf("Type:     %s\n", l.LicenseType)
	fmt.Printf("Max use:  %d\n", l.MaxUsage)
}
