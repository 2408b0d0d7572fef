package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/poncheo/poncheo-backend-go/internal/app"
	"github.com/poncheo/poncheo-backend-go/internal/domain/auth"
	"github.com/poncheo/poncheo-backend-go/internal/domain/employee"
	"github.com/spf13/cobra"
)

func NewTokenCommand(opts *RootOptions) *cobra.Command {
	req := auth.TokenRequest{}

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an access token for local testing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := req.Validate(); err != nil {
				return WrapExitError(ExitCommandError, "invalid token request", err)
			}
			return withApp(cmd, opts, func(ctx context.Context, a *app.App) error {
				emp, err := a.Repos.Employees.GetByID(ctx, req.EmployeeID)
				if err != nil {
					return WrapExitError(ExitFailure, "unknown employee", err)
				}
				if !emp.IsActive {
					return WrapExitError(ExitFailure, "unknown employee", employee.ErrEmployeeInactive)
				}

				token, expiresAt, err := a.JWT.GenerateAccessToken(emp.ID, employee.Role(req.Role))
				if err != nil {
					return WrapExitError(ExitFailure, "failed to sign token", err)
				}
				resp := auth.TokenResponse{AccessToken: token, ExpiresAt: expiresAt}
				return printResult(cmd.OutOrStdout(), opts.Format, resp, func(w io.Writer) {
					fmt.Fprintln(w, token)
					fmt.Fprintf(cmd.ErrOrStderr(), "expires %s\n", time.Unix(expiresAt, 0).UTC().Format(time.RFC3339))
				})
			})
		},
	}

	cmd.Flags().StringVar(&req.EmployeeID, "employee", "", "employee id")
	cmd.Flags().StringVar(&req.Role, "role", string(employee.RoleEmployee), "EMPLOYEE, SUPERVISOR or ADMIN")
	_ = cmd.MarkFlagRequired("employee")

	return cmd
}
