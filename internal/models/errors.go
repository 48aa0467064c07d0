package models

import "errors"

var (
	ErrJobNotFound        = errors.New("job posting not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrTokenNotFound      = errors.New("token not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("action is unauthorized")
)
