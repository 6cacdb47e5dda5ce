package report

import "errors"

var (
	ErrNotFound        = errors.New("report not found")
	ErrBookingNotFound = errors.New("booking not found")
	ErrNotApproved     = errors.New("booking is not approved")
	ErrForbidden       = errors.New("forbidden")
	ErrFileMissing     = errors.New("report file is missing")
)
