package auth

import "errors"

var (
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrSupervisorRequired = errors.New("supervisor access required")
	ErrInvalidCronSecret  = errors.New("invalid cron secret")
)
