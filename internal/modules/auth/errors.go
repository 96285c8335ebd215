package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters long")
	ErrInvalidResetToken  = errors.New("password reset token is invalid or has expired")
	ErrPasswordMismatch   = errors.New("passwords do not match")
)
