// Package report holds the export commands. The PDF and CSV reports are
// rendered by the backend and saved to disk; the spreadsheet is computed
// locally from the license and assignment collections.
package report

import (
	"context"
	"fmt"
	"io"

	"github.com/martinsuchenak/lictrack/internal/app"
	"github.com/martinsuchenak/lictrack/internal/config"
	"github.com/martinsuchenak/lictrack/internal/export"
	"github.com/martinsuchenak/lictrack/internal/log"
	"github.com/martinsuchenak/lictrack/internal/metrics"
	"github.com/paularlott/cli"
)

func Command() *cli.Command {
	return &cli.Command{
		Name:        "report",
		Usage:       "Export reports",
		Description: "Export compliance and usage reports",
		Commands: []*cli.Command{
			NonCompliantPDFCommand(),
			UsageCSVCommand(),
			UsageXLSXCommand(),
		},
	}
}

func NonCompliantPDFCommand() *cli.Command {
	return &cli.Command{
		Name:        "non-compliant-pdf",
		Usage:       "Export the non-compliant devices PDF",
		Description: "Save the backend's non-compliant devices report as a PDF file",
		Flags: append(config.GetFlags(),
			&cli.StringFlag{Name: "out", Usage: "Output file path", DefaultValue: "non_compliant_devices.pdf"},
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

			out := cmd.GetString("out")
			err = export.SaveReport(out, func(w io.Writer) error {
				return a.Client.NonCompliantDevicesPDF(ctx, w)
			})
			if err != nil {
				log.Error("Failed to export PDF report", "error", err, "path", out)
				return err
			}
			fmt.Printf("Report written to %s\n", out)
			return nil
		},
	}
}

func UsageCSVCommand() *cli.Command {
	return &cli.Command{
		Name:        "usage-csv",
		Usage:       "Export the license usage CSV",
		Description: "Save the backend's license usage report as a CSV file",
		Flags: append(config.GetFlags(),
			&cli.StringFlag{Name: "vendor", Usage: "Vendor ID filter"},
			&cli.StringFlag{Name: "out", Usage: "Output file path", DefaultValue: "license_usage.csv"},
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

			out := cmd.GetString("out")
			err = export.SaveReport(out, func(w io.Writer) error {
				return a.Client.LicenseUsageCSV(ctx, cmd.GetString("vendor"), w)
			})
			if err != nil {
				log.Error("Failed to export CSV report", "error", err, "path", out)
				return err
			}
			fmt.Printf("Report written to %s\n", out)
			return nil
		},
	}
}

func UsageXLSXCommand() *cli.Command {
	return &cli.Command{
		Name:        "usage-xlsx",
		Usage:       "Export the license usage spreadsheet",
		Description: "Build a license usage spreadsheet locally and save it as an xlsx file",
		Flags: append(config.GetFlags(),
			&cli.StringFlag{Name: "vendor", Usage: "Vendor ID filter"},
			&cli.StringFlag{Name: "out", Usage: "Output file path", DefaultValue: "license_usage.xlsx"},
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

			rows, err := usageRows(ctx, a, cmd.GetString("vendor"))
			if err != nil {
				return err
			}

			out := cmd.GetString("out")
			err = export.SaveReport(out, func(w io.Writer) error {
				return export.LicenseUsageXLSX(w, rows)
			})
			if err != nil {
				log.Error("Failed to export spreadsheet", "error", err, "path", out)
				return err
			}
			fmt.Printf("Report written to %s\n", out)
			return nil
		},
	}
}

// usageRows joins licenses, assignments and vendor names into the usage
// summary rows.
func usageRows(ctx context.Context, a *app.App, vendorID string) ([]export.UsageRow, error) {
	page, err := a.Client.Licenses(ctx, 0, 100, vendorID)
	if err != nil {
		return nil, err
	}
	assignments, err := a.Client.Assignments(ctx)
	if err != nil {
		return nil, err
	}

	vendorNames := map[string]string{}
	vendors, err := a.Client.Vendors(ctx)
	if err != nil {
		log.Warn("Failed to fetch vendors, using raw vendor IDs", "error", err)
	}
	for _, ven := range vendors {
		vendorNames[ven.VendorID] = ven.VendorName
	}

	assigned := map[string]int{}
	for _, as := range assignments {
		assigned[as.LicenseKey]++
	}

	rows := make([]export.UsageRow, 0, len(page.Content))
	for _, lic := range page.Content {
		name := vendorNames[lic.VendorID]
		if name == "" {
			name = lic.VendorID
		}
		rows = append(rows, export.UsageRow{
			SoftwareName: lic.SoftwareName,
			LicenseKey:   lic.LicenseKey,
			VendorName:   name,
			MaxUsage:     lic.MaxUsage,
			Assigned:     assigned[lic.LicenseKey],
			UsagePercent: metrics.UsagePercent(assigned[lic.LicenseKey], lic.MaxUsage),
		})
	}
	return rows, nil
}
