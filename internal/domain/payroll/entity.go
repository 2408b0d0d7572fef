package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusFinalized Status = "FINALIZED"
)

var StatusValues = []string{
	string(StatusDraft),
	string(StatusFinalized),
}

type PeriodType string

const (
	PeriodTypeWeekly   PeriodType = "WEEKLY"
	PeriodTypeBiweekly PeriodType = "BIWEEKLY"
)

var PeriodTypeValues = []string{
	string(PeriodTypeWeekly),
	string(PeriodTypeBiweekly),
}

// Summary is one employee's payroll for one period, keyed by (EmployeeID, PeriodStart, PeriodEnd).
type Summary struct {
	ID                    string
	EmployeeID            string
	PeriodStart           time.Time
	PeriodEnd             time.Time
	PeriodType            PeriodType
	TotalWorkedMinutes    int
	RegularMinutes        int
	OvertimeMinutes       int // standard + excessive
	NightMinutes          int
	HolidayMinutes        int // holiday + rest day
	TotalTardinessMinutes int
	RegularPay            decimal.Decimal
	OvertimePay           decimal.Decimal
	NightPremiumPay       decimal.Decimal
	HolidayPay            decimal.Decimal
	GrossPay              decimal.Decimal
	GeneratedBy           string
	Status                Status
	CreatedAt             time.Time
	UpdatedAt             time.Time

	// Joined fields
	Employee *EmployeeInfo
}

type EmployeeInfo struct {
	EmployeeCode   string
	FirstName      string
	LastName       string
	DepartmentName *string
}
