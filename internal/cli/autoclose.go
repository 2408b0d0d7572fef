package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/poncheo/poncheo-backend-go/internal/app"
	"github.com/spf13/cobra"
)

func NewAutoCloseCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "autoclose",
		Short: "Stale punch reconciliation",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "run",
		Short: "Close every punch left open past the threshold",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(ctx context.Context, a *app.App) error {
				report, err := a.PunchJobs.RunAutoCloseOnce(ctx)
				if err != nil {
					return WrapExitError(ExitFailure, "auto-close failed", err)
				}
				if err := printResult(cmd.OutOrStdout(), opts.Format, report, func(w io.Writer) {
					fmt.Fprintf(w, "closed: %d\nskipped: %d\nfailed: %d\n", report.Closed, report.Skipped, len(report.Failures))
					for _, f := range report.Failures {
						fmt.Fprintf(w, "  %s (%s): %s\n", f.PunchID, f.EmployeeID, f.Error)
					}
				}); err != nil {
					return err
				}
				if len(report.Failures) > 0 {
					return WrapExitError(ExitFailure, fmt.Sprintf("%d punches could not be closed", len(report.Failures)), nil)
				}
				return nil
			})
		},
	})

	return cmd
}
