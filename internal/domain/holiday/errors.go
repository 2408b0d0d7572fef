package holiday

import "errors"

var (
	ErrHolidayExists = errors.New("a holiday already exists on this date")
	ErrInvalidYear   = errors.New("year must be between 1900 and 2200")
)
