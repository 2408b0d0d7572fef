package timesheet

import "time"

type Status string

const (
	StatusDraft    Status = "DRAFT"
	StatusApproved Status = "APPROVED"
)

// DailyTimesheet aggregates one employee's terminal punches for one shift date.
// It is derived data: recomputing from the same punches yields the same row.
type DailyTimesheet struct {
	ID                 string
	EmployeeID         string
	Date               time.Time
	TotalWorkedMinutes int
	RegularMinutes     int
	NightMinutes       int
	TardinessMinutes   int
	IsHoliday          bool
	IsRestDay          bool
	Status             Status
}

// SameFigures reports whether two rows carry identical aggregates.
func (d DailyTimesheet) SameFigures(o DailyTimesheet) bool {
	return d.EmployeeID == o.EmployeeID &&
		d.Date.Equal(o.Date) &&
		d.TotalWorkedMinutes == o.TotalWorkedMinutes &&
		d.RegularMinutes == o.RegularMinutes &&
		d.NightMinutes == o.NightMinutes &&
		d.TardinessMinutes == o.TardinessMinutes &&
		d.IsHoliday == o.IsHoliday &&
		d.IsRestDay == o.IsRestDay
}
