package punch

import "errors"

var (
	ErrPunchAlreadyOpen    = errors.New("employee already has an open punch")
	ErrNoShiftAssigned     = errors.New("no shift assigned for today")
	ErrPunchNotFound       = errors.New("punch not found")
	ErrPunchNotOpen        = errors.New("punch is no longer open")
	ErrPunchNotCorrectable = errors.New("punch cannot be corrected in its current status")
	ErrUnauthorized        = errors.New("unauthorized to access this punch")
)
