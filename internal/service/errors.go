package service

import "errors"

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthenticated    = errors.New("login required")
	ErrUserNotFound       = errors.New("user not found")
	ErrCafeNotFound       = errors.New("cafe not found")
	ErrReviewNotFound     = errors.New("review not found")
	ErrDuplicateCafe      = errors.New("a cafe with the same name, address or link already exists")
	ErrEmptyValue         = errors.New("value must not be empty")
	ErrValueTooLong       = errors.New("value is too long")
)
