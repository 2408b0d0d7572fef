package payroll

import (
	"github.com/poncheo/poncheo-backend-go/internal/domain/overtime"
	"github.com/poncheo/poncheo-backend-go/internal/domain/payroll"
	"github.com/poncheo/poncheo-backend-go/internal/domain/timesheet"
	"github.com/shopspring/decimal"
)

const (
	DefaultThresholdMinutes = 2640 // 44h
	DefaultCeilingMinutes   = 4080 // 68h
)

var minutesPerHour = decimal.NewFromInt(60)

// Rates is the resolved overtime rule set for one payroll run.
type Rates struct {
	ThresholdMinutes int
	CeilingMinutes   int
	Overtime         decimal.Decimal
	Excessive        decimal.Decimal
	Night            decimal.Decimal
	Holiday          decimal.Decimal
	RestDay          decimal.Decimal
}

// RatesFromRules picks the six required rules by name. Priority is not consulted.
func RatesFromRules(rules []overtime.Rule) (Rates, error) {
	byName := make(map[string]overtime.Rule, len(rules))
	for _, r := range rules {
		byName[r.Name] = r
	}
	for _, name := range overtime.RequiredRules {
		if _, ok := byName[name]; !ok {
			return Rates{}, &payroll.RuleMissingError{Name: name}
		}
	}

	rates := Rates{
		ThresholdMinutes: DefaultThresholdMinutes,
		CeilingMinutes:   DefaultCeilingMinutes,
		Overtime:         byName[overtime.RuleStandardOvertime].Multiplier,
		Excessive:        byName[overtime.RuleExcessiveOvertime].Multiplier,
		Night:            byName[overtime.RuleNightPremium].Multiplier,
		Holiday:          byName[overtime.RuleHolidayWork].Multiplier,
		RestDay:          byName[overtime.RuleRestDayWork].Multiplier,
	}
	if t := byName[overtime.RuleStandardRate].ThresholdMinutes; t != nil && *t > 0 {
		rates.ThresholdMinutes = *t
	}
	if m := byName[overtime.RuleStandardOvertime].MaxMinutes; m != nil && *m > 0 {
		rates.CeilingMinutes = *m
	}
	rates.CeilingMinutes = max(rates.CeilingMinutes, rates.ThresholdMinutes)
	return rates, nil
}

// Totals are the period sums of an employee's daily timesheets.
type Totals struct {
	WorkedMinutes    int
	NightMinutes     int
	HolidayMinutes   int
	RestDayMinutes   int
	TardinessMinutes int
}

// TotalsOf sums rows. A day that is both a holiday and a rest day counts toward both premiums.
func TotalsOf(rows []timesheet.DailyTimesheet) Totals {
	var t Totals
	for _, r := range rows {
		t.WorkedMinutes += r.TotalWorkedMinutes
		t.NightMinutes += r.NightMinutes
		t.TardinessMinutes += r.TardinessMinutes
		if r.IsHoliday {
			t.HolidayMinutes += r.TotalWorkedMinutes
		}
		if r.IsRestDay {
			t.RestDayMinutes += r.TotalWorkedMinutes
		}
	}
	return t
}

// Breakdown is the classified minutes and rounded pay of one employee-period.
type Breakdown struct {
	RegularMinutes   int
	OvertimeMinutes  int
	ExcessiveMinutes int

	RegularPay      decimal.Decimal
	OvertimePay     decimal.Decimal
	NightPremiumPay decimal.Decimal
	HolidayPay      decimal.Decimal
	GrossPay        decimal.Decimal
}

// Compute classifies worked minutes into the three tiers and prices them along with
// the night, holiday and rest-day premiums. Each component is rounded to cents and
// gross is the sum of the rounded components.
func Compute(t Totals, hourlyRate decimal.Decimal, r Rates) Breakdown {
	b := Breakdown{
		RegularMinutes:   min(t.WorkedMinutes, r.ThresholdMinutes),
		OvertimeMinutes:  min(max(t.WorkedMinutes-r.ThresholdMinutes, 0), r.CeilingMinutes-r.ThresholdMinutes),
		ExcessiveMinutes: max(t.WorkedMinutes-r.CeilingMinutes, 0),
	}

	one := decimal.NewFromInt(1)
	b.RegularPay = pay(b.RegularMinutes, hourlyRate, one).Round(2)
	b.OvertimePay = pay(b.OvertimeMinutes, hourlyRate, r.Overtime).
		Add(pay(b.ExcessiveMinutes, hourlyRate, r.Excessive)).
		Round(2)
	b.NightPremiumPay = pay(t.NightMinutes, hourlyRate, r.Night.Sub(one)).Round(2)
	b.HolidayPay = pay(t.HolidayMinutes, hourlyRate, r.Holiday.Sub(one)).
		Add(pay(t.RestDayMinutes, hourlyRate, r.RestDay.Sub(one))).
		Round(2)
	b.GrossPay = b.RegularPay.Add(b.OvertimePay).Add(b.NightPremiumPay).Add(b.HolidayPay)
	return b
}

// pay is minutes * hourlyRate/60 * multiplier, dividing last to keep the product exact.
func pay(minutes int, hourlyRate, multiplier decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(int64(minutes)).Mul(hourlyRate).Mul(multiplier).Div(minutesPerHour)
}
