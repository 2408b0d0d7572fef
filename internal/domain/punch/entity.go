package punch

import "time"

type Status string

const (
	StatusOpen       Status = "OPEN"
	StatusClosed     Status = "CLOSED"
	StatusAutoClosed Status = "AUTO_CLOSED"
	StatusCorrected  Status = "CORRECTED"
)

var StatusValues = []string{
	string(StatusOpen),
	string(StatusClosed),
	string(StatusAutoClosed),
	string(StatusCorrected),
}

// IsTerminal reports whether a punch in this status has a clock-out and counts toward timesheets.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusClosed, StatusAutoClosed, StatusCorrected:
		return true
	case StatusOpen:
		return false
	default:
		return false
	}
}

// CanTransitionTo reports whether the lifecycle allows moving from s to next.
// OPEN -> CLOSED | AUTO_CLOSED, CLOSED | AUTO_CLOSED -> CORRECTED.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusOpen:
		return next == StatusClosed || next == StatusAutoClosed
	case StatusClosed, StatusAutoClosed:
		return next == StatusCorrected
	case StatusCorrected:
		return false
	default:
		return false
	}
}

type Punch struct {
	ID                string
	EmployeeID        string
	ShiftAssignmentID *string
	ClockIn           time.Time
	ClockOut          *time.Time
	Status            Status
	WorkedMinutes     *int
	TardinessMinutes  int
	IsAutoCompleted   bool
	Notes             *string
	CreatedAt         time.Time
	UpdatedAt         time.Time

	// Joined fields
	ShiftDate *time.Time
}

// Closure is the data written when an OPEN punch is closed by the employee or by auto-close.
type Closure struct {
	PunchID         string
	ClockOut        time.Time
	WorkedMinutes   int
	Status          Status
	IsAutoCompleted bool
	Notes           *string
}

// Amendment is the data written when an approved correction replaces a punch's times.
type Amendment struct {
	PunchID       string
	ClockIn       time.Time
	ClockOut      *time.Time
	WorkedMinutes *int
}

const AutoCloseNote = "Auto-closed by system. Employee did not clock out."
