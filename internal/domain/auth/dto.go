package auth

import (
	"github.com/poncheo/poncheo-backend-go/internal/domain/employee"
	"github.com/poncheo/poncheo-backend-go/internal/pkg/validator"
)

// TokenRequest asks for an access token on behalf of an employee. Used by the dev CLI.
type TokenRequest struct {
	EmployeeID string `json:"employee_id"`
	Role       string `json:"role"`
}

func (r *TokenRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if !validator.IsInSlice(r.Role, employee.RoleValues) {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "role must be one of: EMPLOYEE, SUPERVISOR, ADMIN"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresAt   int64  `json:"expires_at"`
}
