package overtime

import (
	"time"

	"github.com/shopspring/decimal"
)

// Rule names the payroll engine looks up. All six must be active for a run to proceed.
const (
	RuleStandardRate      = "Standard Rate"
	RuleStandardOvertime  = "Standard Overtime"
	RuleExcessiveOvertime = "Excessive Overtime"
	RuleNightPremium      = "Night Premium"
	RuleHolidayWork       = "Holiday Work"
	RuleRestDayWork       = "Rest Day Work"
)

var RequiredRules = []string{
	RuleStandardRate,
	RuleStandardOvertime,
	RuleExcessiveOvertime,
	RuleNightPremium,
	RuleHolidayWork,
	RuleRestDayWork,
}

// Rule is one tier or premium of the overtime law. Priority is stored for display
// ordering only and never changes how minutes are classified.
type Rule struct {
	ID               string
	Name             string
	Description      *string
	ThresholdMinutes *int
	MaxMinutes       *int
	Multiplier       decimal.Decimal
	Priority         int
	IsActive         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
