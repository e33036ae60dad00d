package license

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
		Usage:       "Add a new license",
		Description: "Add a new license to the repository",
		Flags: append(config.GetFlags(),
			&cli.StringFlag{Name: "key", Usage: "License key", Required: true},
			&cli.StringFlag{Name: "software", Usage: "Software name", Required: true},
			&cli.StringFlag{Name: "vendor", Usage: "Vendor ID", Required: true},
			&cli.StringFlag{Name: "valid-from", Usage: "Validity start (YYYY-MM-DD)", Required: true},
			&cli.StringFlag{Name: "valid-to", Usage: "Validity end (YYYY-MM-DD)", Required: true},
			&cli.StringFlag{Name: "type", Usage: "License type", DefaultValue: model.TypePerDevice},
			&cli.IntFlag{Name: "max-usage", Usage: "Maximum concurrent use", DefaultValue: 1},
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
			if !rbac.For(ident.Role, rbac.ScreenLicenses).CanCreate {
				return fmt.Errorf("role %s may not create licenses", ident.Role)
			}

			form := forms.NewLicenseForm(a.Client, nil)
			form.LoadVendors(ctx)
			form.Input = model.License{
				LicenseKey:   cmd.GetString("key"),
				SoftwareName: cmd.GetString("software"),
				VendorID:     cmd.GetString("vendor"),
				ValidFrom:    cmd.GetString("valid-from"),
				ValidTo:      cmd.GetString("valid-to"),
				LicenseType:  cmd.GetString("type"),
				MaxUsage:     cmd.GetInt("max-usage"),
			}
			if err := form.Submit(ctx); err != nil {
				log.Error("Failed to create license", "error", err, "license_key", form.Input.LicenseKey)
				return err
			}
			log.Info("License created", "license_key", form.Input.LicenseKey)
			fmt.Printf("License created: %s\n", form.Input.LicenseKey)
			return nil
		},
	}
}
