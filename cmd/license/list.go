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

func ListCommand() *cli.Command {
	return &cli.Command{
		Name:        "list",
		Usage:       "List licenses",
		Description: "List one page of the license repository with vendor names and usage percentages",
		Flags: append(config.GetFlags(),
			&cli.IntFlag{Name: "page", Usage: "Page number", DefaultValue: 1},
			&cli.StringFlag{Name: "vendor", Usage: "Vendor ID filter"},
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
			v, err := view.NewLicenseView(a.Client, ident, a.Config.PageSize)
			if err != nil {
				return err
			}

			v.LoadReferences(ctx)
			if len(v.Vendors) > 0 {
				if err := a.Store.CacheVendors(v.Vendors); err != nil {
					log.Warn("Failed to cache vendors", "error", err)
				}
			} else if cached, err := a.Store.CachedVendors(); err == nil && len(cached) > 0 {
				log.Debug("Using cached vendor list", "count", len(cached))
				v.Vendors = cached
			}

			v.SetVendorFilter(cmd.GetString("vendor"))
			v.SetPage(cmd.GetInt("page"))
			if err := v.Load(ctx); err != nil {
				log.Error("Failed to list licenses", "error", err)
				return err
			}

			if len(v.Licenses) == 0 {
				fmt.Println("No licenses found")
				return nil
			}
			fmt.Printf("%-14s %-20s %-16s %-12s %-12s %-12s %s\n",
				"LICENSE", "SOFTWARE", "VENDOR", "VALID FROM", "VALID TO", "TYPE", "USAGE")
			for _, l := range v.Licenses {
				fmt.Printf("%-14s %-20s %-16s %-12s %-12s %-12s %d%%\n",
					l.LicenseKey, l.SoftwareName, v.VendorName(l.VendorID),
					l.ValidFrom, l.ValidTo, l.LicenseType, v.UsagePercent(l))
			}
			fmt.Printf("Page %d of %d\n", v.CurrentPage, v.TotalPages)
			return nil
		},
	}
}
