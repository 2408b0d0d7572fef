package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/poncheo/poncheo-backend-go/internal/app"
	"github.com/poncheo/poncheo-backend-go/internal/pkg/database"
	"github.com/spf13/cobra"
)

func NewMigrateCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending PostgreSQL migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(ctx context.Context, a *app.App) error {
				if a.DB() == nil {
					return WrapExitError(ExitCommandError, "migrate requires DB_DRIVER=postgres", nil)
				}
				applied, err := database.Migrate(ctx, a.DB())
				if err != nil {
					return WrapExitError(ExitFailure, "migration failed", err)
				}
				return printResult(cmd.OutOrStdout(), opts.Format, applied, func(w io.Writer) {
					if len(applied) == 0 {
						fmt.Fprintln(w, "Database is up to date")
						return
					}
					for _, name := range applied {
						fmt.Fprintf(w, "applied %s\n", name)
					}
				})
			})
		},
	}
}
