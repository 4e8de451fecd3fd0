package user

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyTaken  = errors.New("email is already registered")
	ErrMobileAlreadyTaken = errors.New("mobile number is already registered")
)
