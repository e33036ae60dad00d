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

func DeleteCommand() *cli.Command {
	return &cli.Command{
		Name:        "delete",
		Usage:       "Delete a license",
		Description: "Delete a license from the repository after confirmation",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "license-key", Required: true},
		},
		Flags: append(config.GetFlags(),
			&cli.BoolFlag{Name: "yes", Usage: "Skip the confirmation prompt"},
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

			key := cmd.GetStringArg("license-key")
			if !app.Confirm(fmt.Sprintf("Delete license %s?", key), cmd.GetBool("yes")) {
				fmt.Println("Aborted")
				return nil
			}

			if err := v.Delete(ctx, key); err != nil {
				log.Error("Failed to delete license", "error", err, "license_key", key)
				return err
			}
			log.Info("License deleted", "license_key", key)
			fmt.Printf("License deleted: %s\n", key)
			return nil
		},
	}
}
