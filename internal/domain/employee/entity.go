package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Role string

const (
	RoleEmployee   Role = "EMPLOYEE"
	RoleSupervisor Role = "SUPERVISOR"
	RoleAdmin      Role = "ADMIN"
)

var RoleValues = []string{
	string(RoleEmployee),
	string(RoleSupervisor),
	string(RoleAdmin),
}

// CanReview reports whether the role may approve corrections and run payroll.
func (r Role) CanReview() bool {
	switch r {
	case RoleSupervisor, RoleAdmin:
		return true
	case RoleEmployee:
		return false
	default:
		return false
	}
}

type Employee struct {
	ID             string
	EmployeeCode   string
	FirstName      string
	LastName       string
	DepartmentName *string
	HourlyRate     decimal.Decimal
	Role           Role
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// Requester identifies the authenticated caller of a service operation.
type Requester struct {
	EmployeeID string
	Role       Role
}
