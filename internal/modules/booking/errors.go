package booking

import "errors"

var (
	ErrValidation     = errors.New("validation error")
	ErrPastDate       = errors.New("booking date is in the past")
	ErrWeekend        = errors.New("booking date falls on a weekend")
	ErrInvalidSlot    = errors.New("time slot is not in the catalog")
	ErrSlotTaken      = errors.New("time slot is already taken")
	ErrAlreadyDecided = errors.New("booking status is already decided")
	ErrForbidden      = errors.New("forbidden")
	ErrNotFound       = errors.New("booking not found")
)
