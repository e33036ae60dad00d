// Package alerts holds the expiry alerts command.
package alerts

import (
	"context"
	"fmt"
	"time"

	"github.com/martinsuchenak/lictrack/internal/app"
	"github.com/martinsuchenak/lictrack/internal/config"
	"github.com/martinsuchenak/lictrack/internal/log"
	"github.com/martinsuchenak/lictrack/internal/metrics"
	"github.com/martinsuchenak/lictrack/internal/view"
	"github.com/paularlott/cli"
)

// iconMarker maps an alert icon class to its terminal marker. Expired
// entries carry no icon even though they count as critical in the badge.
func iconMarker(icon string) string {
	switch icon {
	case metrics.LevelCritical:
		return "!!"
	case metrics.LevelWarning:
		return "!"
	}
	return ""
}

func Command() *cli.Command {
	return &cli.Command{
		Name:        "alerts",
		Usage:       "Show expiry alerts",
		Description: "Show licenses expiring within the alert window, with countdown badges",
		Flags: append(config.GetFlags(),
			&cli.IntFlag{Name: "days", Usage: "Override the alert window in days"},
			&cli.IntFlag{Name: "top", Usage: "Show only the first N alerts"},
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

			days := a.Config.AlertDays
			if d := cmd.GetInt("days"); d > 0 {
				days = d
			}
			v := view.NewAlertsView(a.Client, days)
			if err := v.Load(ctx); err != nil {
				log.Error("Failed to load expiry alerts", "error", err)
				return err
			}

			rows := v.Rows(time.Now())
			if top := cmd.GetInt("top"); top > 0 && top < len(rows) {
				rows = rows[:top]
			}
			if len(rows) == 0 {
				fmt.Printf("No licenses expire within %d days\n", days)
				return nil
			}

			critical, warning := 0, 0
			for _, row := range rows {
				switch row.Level {
				case metrics.LevelCritical:
					critical++
				case metrics.LevelWarning:
					warning++
				}
			}
			fmt.Printf("%d alerts (%d critical, %d warning)\n\n", len(rows), critical, warning)

			fmt.Printf("%-3s %-14s %-20s %-12s %s\n", "", "LICENSE", "SOFTWARE", "EXPIRES", "DAYS")
			for _, row := range rows {
				fmt.Printf("%-3s %-14s %-20s %-12s %d\n",
					iconMarker(row.Icon), row.LicenseKey, row.SoftwareName, row.ValidTo, row.Days)
			}
			return nil
		},
	}
}
