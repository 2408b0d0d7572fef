package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/poncheo/poncheo-backend-go/internal/app"
	"github.com/spf13/cobra"
)

func NewSeedCommand(opts *RootOptions) *cobra.Command {
	var year int

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load shift templates, overtime rules, national holidays and demo staff",
		Long: `Load the default reference data. Existing rows are kept, so the command
can run on every deploy.

Example:
  poncheoctl seed --year 2026`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(ctx context.Context, a *app.App) error {
				if year == 0 {
					year = a.Clock.Now().Year()
				}
				report, err := a.Seed(ctx, year)
				if err != nil {
					return WrapExitError(ExitFailure, "seed failed", err)
				}
				return printResult(cmd.OutOrStdout(), opts.Format, report, func(w io.Writer) {
					fmt.Fprintf(w, "templates: %d\nrules: %d\nholidays created: %d of %d\nemployees created: %d\nassignments: %d\n",
						report.Templates, report.Rules, report.Holidays.Created, report.Holidays.Total,
						report.Employees, report.Assignments)
				})
			})
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "holiday year (defaults to the current year)")
	return cmd
}
