package correction

import "time"

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

var StatusValues = []string{
	string(StatusPending),
	string(StatusApproved),
	string(StatusRejected),
}

// Correction is an employee's request to replace a punch's times. At most one exists per punch.
type Correction struct {
	ID                string
	PunchID           string
	RequestedBy       string
	Reason            string
	OriginalClockIn   time.Time
	OriginalClockOut  *time.Time
	CorrectedClockIn  time.Time
	CorrectedClockOut *time.Time
	Status            Status
	CreatedAt         time.Time
	UpdatedAt         time.Time

	// Joined fields
	Approval *Approval
}

// Approval records a supervisor decision. Rows are append-only.
type Approval struct {
	ID           string
	CorrectionID string
	SupervisorID string
	Decision     Status
	Comments     *string
	CreatedAt    time.Time
}
