package auth

import "errors"

var (
	ErrEmailExists     = errors.New("email already registered")
	ErrPhoneExists     = errors.New("phone already registered")
	ErrEmailNotFound   = errors.New("email not found")
	ErrInvalidPassword = errors.New("invalid password")
)
