package schedule

import (
	"time"

	"github.com/poncheo/poncheo-backend-go/internal/pkg/timecalc"
)

type ShiftType string

const (
	ShiftTypeDiurna   ShiftType = "DIURNA"   // day shift
	ShiftTypeNocturna ShiftType = "NOCTURNA" // night shift
	ShiftTypeMixta    ShiftType = "MIXTA"    // mixed shift
)

var ShiftTypeValues = []string{
	string(ShiftTypeDiurna),
	string(ShiftTypeNocturna),
	string(ShiftTypeMixta),
}

// DefaultBreakMinutes applies when a punch has no shift template to read the break from.
const DefaultBreakMinutes = 60

type ShiftTemplate struct {
	ID                 string
	Name               string
	StartTime          string // HH:mm
	EndTime            string // HH:mm, earlier than StartTime when the shift crosses midnight
	BreakMinutes       int
	GracePeriodMinutes int
	ShiftType          ShiftType
	IsActive           bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Bounds parses the template's start and end times.
func (t ShiftTemplate) Bounds() (start, end timecalc.TimeOfDay, err error) {
	start, err = timecalc.ParseTimeOfDay(t.StartTime)
	if err != nil {
		return start, end, err
	}
	end, err = timecalc.ParseTimeOfDay(t.EndTime)
	return start, end, err
}

// ScheduledStart is the instant the shift begins on date.
func (t ShiftTemplate) ScheduledStart(date time.Time) (time.Time, error) {
	start, err := timecalc.ParseTimeOfDay(t.StartTime)
	if err != nil {
		return time.Time{}, err
	}
	return start.On(date), nil
}

// ScheduledEnd is the instant the shift starting on date ends, next day for overnight shifts.
func (t ShiftTemplate) ScheduledEnd(date time.Time) (time.Time, error) {
	start, end, err := t.Bounds()
	if err != nil {
		return time.Time{}, err
	}
	return timecalc.ShiftEnd(date, start, end), nil
}

// ShiftAssignment binds one employee to one template on one calendar date.
type ShiftAssignment struct {
	ID              string
	EmployeeID      string
	Date            time.Time
	ShiftTemplateID string
	CreatedAt       time.Time
}

type AssignmentWithTemplate struct {
	Assignment ShiftAssignment
	Template   ShiftTemplate
}
