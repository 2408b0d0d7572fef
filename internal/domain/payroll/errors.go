package payroll

import (
	"errors"
	"fmt"
)

var (
	ErrOvertimeRuleMissing = errors.New("overtime rule missing")
	ErrSummaryNotFound     = errors.New("payroll summary not found")
	ErrInvalidPeriod       = errors.New("invalid payroll period")
)

// RuleMissingError names the overtime rule a payroll run could not find.
type RuleMissingError struct {
	Name string
}

func (e *RuleMissingError) Error() string {
	return fmt.Sprintf("overtime rule %q not found", e.Name)
}

func (e *RuleMissingError) Unwrap() error {
	return ErrOvertimeRuleMissing
}

// EmployeeError reports a single employee's failure inside a payroll run.
type EmployeeError struct {
	EmployeeID string
	Err        error
}

func (e *EmployeeError) Error() string {
	return fmt.Sprintf("employee %s: %v", e.EmployeeID, e.Err)
}

func (e *EmployeeError) Unwrap() error {
	return e.Err
}
