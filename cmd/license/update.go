package license

import (
	"context"
	"fmt"

	"github.com/martinsuchenak/lictrack/internal/app"
	"github.com/martinsuchenak/lictrack/internal/config"
	"github.com/martinsuchenak/lictrack/internal/forms"
	"github.com/martinsuchenak/lictrack/internal/log"
	"github.com/martinsuchenak/lictrack/internal/rbac"
	"github.com/paularlott/cli"
)

func UpdateCommand() *cli.Command {
	return &cli.Command{
		Name:        "update",
		Usage:       "Update a license",
		Description: "Update fields of an existing license; omitted flags keep their current value",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "license-key", Required: true},
		},
		Flags: append(config.GetFlags(),
			&cli.StringFlag{Name: "software", Usage: "Software name"},
			&cli.StringFlag{Name: "vendor", Usage: "Vendor ID"},
			&cli.StringFlag{Name: "valid-from", Usage: "Validity start (YYYY-MM-DD)"},
			&cli.StringFlag{Name: "valid-to", Usage: "Validity end (YYYY-MM-DD)"},
			&cli.StringFlag{Name: "type", Usage: "License type"},
			&cli.IntFlag{Name: "max-usage", Usage: "Maximum concurrent use"},
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
			if !rbac.For(ident.Role, rbac.ScreenLicenses).CanEdit {
				return fmt.Errorf("role %s may not edit licenses", ident.Role)
			}

			key := cmd.GetStringArg("license-key")
			existing, err := a.Client.License(ctx, key)
			if err != nil {
				return err
			}

			form := forms.NewLicenseForm(a.Client, existing)
			form.LoadVendors(ctx)
			if v := cmd.GetString("software"); v != "" {
				form.Input.SoftwareName = v
			}
			if v := cmd.GetString("vendor"); v != "" {
				form.Input.VendorID = v
			}
			if v := cmd.GetString("valid-from"); v != "" {
				form.Input.ValidFrom = v
			}
			if v := cmd.GetString("valid-to"); v != "" {
				form.Input.ValidTo = v
			}
			if v := cmd.GetString("type"); v != "" {
				form.Input.LicenseType = v
			}
			if v := cmd.GetInt("max-usage"); v > 0 {
				form.Input.MaxUsage = v
			}

			if err := form.Submit(ctx); err != nil {
				log.Error("Failed to update license", "error", err, "license_key", key)
				return err
			}
			log.Info("License updated", "license_key", key)
			fmt.Printf("License updated: %s\n", key)
			return nil
		},
	}
}
