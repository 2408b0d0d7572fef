package fixtures

import (
	_ "embed"
	"fmt"
	"sync"
	"time"

	"github.com/poncheo/poncheo-backend-go/internal/domain/employee"
	"github.com/poncheo/poncheo-backend-go/internal/domain/holiday"
	"github.com/poncheo/poncheo-backend-go/internal/domain/overtime"
	"github.com/poncheo/poncheo-backend-go/internal/domain/schedule"
	"github.com/poncheo/poncheo-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

type defaults struct {
	ShiftTemplates []struct {
		Name               string `yaml:"name"`
		StartTime          string `yaml:"start_time"`
		EndTime            string `yaml:"end_time"`
		ShiftType          string `yaml:"shift_type"`
		BreakMinutes       int    `yaml:"break_minutes"`
		GracePeriodMinutes int    `yaml:"grace_period_minutes"`
	} `yaml:"shift_templates"`

	OvertimeRules []struct {
		Name             string `yaml:"name"`
		Description      string `yaml:"description"`
		ThresholdMinutes *int   `yaml:"threshold_minutes"`
		MaxMinutes       *int   `yaml:"max_minutes"`
		Multiplier       string `yaml:"multiplier"`
		Priority         int    `yaml:"priority"`
	} `yaml:"overtime_rules"`

	NationalHolidays []struct {
		Date string `yaml:"date"`
		Name string `yaml:"name"`
	} `yaml:"national_holidays"`

	DemoEmployees []DemoEmployee `yaml:"demo_employees"`
}

// DemoEmployee is a sample employee together with the shift name they work Monday to Friday.
type DemoEmployee struct {
	Code       string `yaml:"code"`
	FirstName  string `yaml:"first_name"`
	LastName   string `yaml:"last_name"`
	Department string `yaml:"department"`
	Role       string `yaml:"role"`
	HourlyRate string `yaml:"hourly_rate"`
	Shift      string `yaml:"shift"`
}

const corpusChristiName = "Corpus Christi"

var (
	loadOnce sync.Once
	loaded   defaults
	loadErr  error
)

func load() (defaults, error) {
	loadOnce.Do(func() {
		loadErr = yaml.Unmarshal(defaultsYAML, &loaded)
		if loadErr != nil {
			loadErr = fmt.Errorf("failed to parse fixtures: %w", loadErr)
		}
	})
	return loaded, loadErr
}

// GetDefaultShiftTemplates returns the standard day, afternoon, night and half-day shifts.
func GetDefaultShiftTemplates() ([]schedule.ShiftTemplate, error) {
	d, err := load()
	if err != nil {
		return nil, err
	}

	templates := make([]schedule.ShiftTemplate, 0, len(d.ShiftTemplates))
	for _, t := range d.ShiftTemplates {
		if !validator.IsValidTimeOfDay(t.StartTime) || !validator.IsValidTimeOfDay(t.EndTime) {
			return nil, fmt.Errorf("shift template %q: times must be HH:mm", t.Name)
		}
		templates = append(templates, schedule.ShiftTemplate{
			Name:               t.Name,
			StartTime:          t.StartTime,
			EndTime:            t.EndTime,
			BreakMinutes:       t.BreakMinutes,
			GracePeriodMinutes: t.GracePeriodMinutes,
			ShiftType:          schedule.ShiftType(t.ShiftType),
			IsActive:           true,
		})
	}
	return templates, nil
}

// GetDefaultOvertimeRules returns the six rules the payroll engine requires.
func GetDefaultOvertimeRules() ([]overtime.Rule, error) {
	d, err := load()
	if err != nil {
		return nil, err
	}

	rules := make([]overtime.Rule, 0, len(d.OvertimeRules))
	for _, r := range d.OvertimeRules {
		multiplier, err := decimal.NewFromString(r.Multiplier)
		if err != nil {
			return nil, fmt.Errorf("rule %q: invalid multiplier: %w", r.Name, err)
		}
		desc := r.Description
		rules = append(rules, overtime.Rule{
			Name:             r.Name,
			Description:      &desc,
			ThresholdMinutes: r.ThresholdMinutes,
			MaxMinutes:       r.MaxMinutes,
			Multiplier:       multiplier,
			Priority:         r.Priority,
			IsActive:         true,
		})
	}
	return rules, nil
}

// GetNationalHolidays returns the national holidays falling in year, ordered by date.
func GetNationalHolidays(year int) ([]holiday.Holiday, error) {
	d, err := load()
	if err != nil {
		return nil, err
	}

	corpus := CorpusChristi(year)
	holidays := make([]holiday.Holiday, 0, len(d.NationalHolidays)+1)
	inserted := false
	for _, h := range d.NationalHolidays {
		date, err := time.Parse("2006-01-02", fmt.Sprintf("%04d-%s", year, h.Date))
		if err != nil {
			return nil, fmt.Errorf("holiday %q: invalid date: %w", h.Name, err)
		}
		if !inserted && corpus.Before(date) {
			holidays = append(holidays, corpusChristiHoliday(corpus, year))
			inserted = true
		}
		holidays = append(holidays, holiday.Holiday{Date: date, Name: h.Name, IsRecurring: true})
	}
	if !inserted {
		holidays = append(holidays, corpusChristiHoliday(corpus, year))
	}
	return holidays, nil
}

func corpusChristiHoliday(date time.Time, year int) holiday.Holiday {
	y := year
	return holiday.Holiday{Date: date, Name: corpusChristiName, IsRecurring: false, Year: &y}
}

// GetDemoEmployees returns sample staff for local environments.
func GetDemoEmployees() ([]DemoEmployee, error) {
	d, err := load()
	if err != nil {
		return nil, err
	}
	return d.DemoEmployees, nil
}

// ToEmployee converts the fixture into an active employee.
func (d DemoEmployee) ToEmployee() (employee.Employee, error) {
	if !validator.IsValidEmployeeCode(d.Code) {
		return employee.Employee{}, fmt.Errorf("employee %q: invalid employee code", d.Code)
	}
	rate, err := decimal.NewFromString(d.HourlyRate)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("employee %s: invalid hourly rate: %w", d.Code, err)
	}
	dept := d.Department
	return employee.Employee{
		EmployeeCode:   d.Code,
		FirstName:      d.FirstName,
		LastName:       d.LastName,
		DepartmentName: &dept,
		HourlyRate:     rate,
		Role:           employee.Role(d.Role),
		IsActive:       true,
	}, nil
}
