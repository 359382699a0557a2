package quiz

import "errors"

var (
	ErrNotFound             = errors.New("not found")
	ErrForbidden            = errors.New("forbidden")
	ErrAttemptLimitExceeded = errors.New("attempt limit exceeded")
	ErrTimeLimitExceeded    = errors.New("time limit exceeded")
	ErrInvalidState         = errors.New("attempt is not in progress")
	ErrValidation           = errors.New("invalid input")
)
