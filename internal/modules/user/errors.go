package user

import "errors"

var (
	ErrValidation = errors.New("validation error")
	ErrEmailTaken = errors.New("email already used by another user")
	ErrPhoneTaken = errors.New("phone already used by another user")
	ErrForbidden  = errors.New("forbidden")
	ErrNotFound   = errors.New("user not found")
)
