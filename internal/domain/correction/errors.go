package correction

import "errors"

var (
	ErrCorrectionNotFound        = errors.New("correction not found")
	ErrCorrectionExists          = errors.New("a correction already exists for this punch")
	ErrCorrectionAlreadyReviewed = errors.New("this correction has already been reviewed")
	ErrNotPunchOwner             = errors.New("you can only request corrections for your own punches")
	ErrUnauthorized              = errors.New("you can only access your own correction requests")
)
