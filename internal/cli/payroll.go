package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/poncheo/poncheo-backend-go/internal/app"
	"github.com/poncheo/poncheo-backend-go/internal/domain/payroll"
	"github.com/spf13/cobra"
)

func NewPayrollCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payroll",
		Short: "Generate, export and close payroll summaries",
	}

	cmd.AddCommand(newPayrollGenerateCommand(opts))
	cmd.AddCommand(newPayrollExportCommand(opts))
	cmd.AddCommand(newPayrollStatusCommand(opts, "finalize", "Lock a DRAFT summary",
		func(ctx context.Context, svc payroll.Service, id string) (payroll.Response, error) {
			return svc.Finalize(ctx, id)
		}))
	cmd.AddCommand(newPayrollStatusCommand(opts, "revert", "Return a FINALIZED summary to DRAFT",
		func(ctx context.Context, svc payroll.Service, id string) (payroll.Response, error) {
			return svc.Revert(ctx, id)
		}))

	return cmd
}

func newPayrollGenerateCommand(opts *RootOptions) *cobra.Command {
	req := payroll.GenerateRequest{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Compute DRAFT summaries for a period",
		Long: `Compute DRAFT payroll summaries from the daily timesheets in a period.
Rerunning a period replaces its summaries with fresh DRAFT rows.

Example:
  poncheoctl payroll generate --start 2026-02-16 --end 2026-02-22
  poncheoctl payroll generate --start 2026-02-09 --end 2026-02-22 --type BIWEEKLY --employee <id>`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(ctx context.Context, a *app.App) error {
				result, err := a.Services.Payroll.Generate(ctx, req)
				var empErr *payroll.EmployeeError
				if err != nil && !errors.As(err, &empErr) {
					return WrapExitError(ExitFailure, "payroll generation failed", err)
				}

				if perr := printResult(cmd.OutOrStdout(), opts.Format, result, func(w io.Writer) {
					writeSummaries(w, result)
				}); perr != nil {
					return perr
				}
				if err != nil {
					return WrapExitError(ExitFailure, "some employees failed", err)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&req.PeriodStart, "start", "", "period start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&req.PeriodEnd, "end", "", "period end, inclusive (YYYY-MM-DD)")
	cmd.Flags().StringVar(&req.PeriodType, "type", string(payroll.PeriodTypeWeekly), "WEEKLY or BIWEEKLY")
	cmd.Flags().StringSliceVar(&req.EmployeeIDs, "employee", nil, "restrict to employee ids (repeatable)")
	cmd.Flags().StringVar(&req.GeneratedBy, "by", "poncheoctl", "recorded as the generator")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func newPayrollExportCommand(opts *RootOptions) *cobra.Command {
	var (
		start, end, status, employeeID string
		out                            string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write summaries as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := payroll.Filter{
				PeriodStart: optional(start),
				PeriodEnd:   optional(end),
				Status:      optional(status),
				EmployeeID:  optional(employeeID),
			}
			return withApp(cmd, opts, func(ctx context.Context, a *app.App) error {
				data, err := a.Services.Payroll.ExportCSV(ctx, filter)
				if err != nil {
					return WrapExitError(ExitFailure, "export failed", err)
				}
				if out == "" || out == "-" {
					_, err = cmd.OutOrStdout().Write(data)
					return err
				}
				if err := os.WriteFile(out, data, 0o644); err != nil {
					return WrapExitError(ExitCommandError, "failed to write export", err)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", out)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "period start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "period end (YYYY-MM-DD)")
	cmd.Flags().StringVar(&status, "status", "", "DRAFT or FINALIZED")
	cmd.Flags().StringVar(&employeeID, "employee", "", "single employee id")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")

	return cmd
}

func newPayrollStatusCommand(opts *RootOptions, use, short string,
	apply func(ctx context.Context, svc payroll.Service, id string) (payroll.Response, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <summary-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(ctx context.Context, a *app.App) error {
				result, err := apply(ctx, a.Services.Payroll, args[0])
				if err != nil {
					return WrapExitError(ExitFailure, use+" failed", err)
				}
				return printResult(cmd.OutOrStdout(), opts.Format, result, func(w io.Writer) {
					fmt.Fprintf(w, "%s %s\n", result.ID, result.Status)
				})
			})
		},
	}
}

func writeSummaries(w io.Writer, summaries []payroll.Response) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tEMPLOYEE\tWORKED\tOVERTIME\tGROSS\tSTATUS")
	for _, s := range summaries {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\t%s\n",
			s.ID, s.EmployeeCode, s.TotalWorkedMinutes, s.OvertimeMinutes, s.GrossPay, s.Status)
	}
	_ = tw.Flush()
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
